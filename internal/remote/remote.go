// Package remote carries playback commands from outside the control loop,
// such as MPRIS media keys, into it.
package remote

import "time"

type Action int

const (
	PlayPause Action = iota
	Play
	Pause
	Stop
	Next
	Previous
	Seek        // relative, by Offset
	SetPosition // absolute, to Offset
	CycleLoop
)

func (a Action) String() string {
	switch a {
	case PlayPause:
		return "play_pause"
	case Play:
		return "play"
	case Pause:
		return "pause"
	case Stop:
		return "stop"
	case Next:
		return "next"
	case Previous:
		return "previous"
	case Seek:
		return "seek"
	case SetPosition:
		return "set_position"
	case CycleLoop:
		return "cycle_loop"
	default:
		return "unknown"
	}
}

type Command struct {
	Action Action
	Offset time.Duration
}

// Queue is a bounded command channel. Send never blocks: when the control
// loop lags, new commands are dropped.
type Queue struct {
	ch chan Command
}

func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Command, size)}
}

// Send reports whether the command was queued.
func (q *Queue) Send(c Command) bool {
	select {
	case q.ch <- c:
		return true
	default:
		return false
	}
}

func (q *Queue) Commands() <-chan Command { return q.ch }
