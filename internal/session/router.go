package session

import (
	"github.com/llehouerou/wavecast/internal/downloads"
	"github.com/llehouerou/wavecast/internal/errmsg"
	"github.com/llehouerou/wavecast/internal/lyrics"
	"github.com/llehouerou/wavecast/internal/player"
	"github.com/llehouerou/wavecast/internal/remote"
)

// Sources are the channels the Router drains. Nil channels are skipped.
type Sources struct {
	Backend   <-chan player.Event
	Downloads <-chan downloads.Progress
	Lyrics    <-chan lyrics.Result
	Commands  <-chan remote.Command
	SinkErrs  <-chan error
	Stderr    <-chan string
}

// Router moves background results into the controller. It runs on the
// control loop, so the controller never sees concurrent calls.
type Router struct {
	c   *Controller
	src Sources
}

func NewRouter(c *Controller, src Sources) *Router {
	return &Router{c: c, src: src}
}

// Drain applies everything queued at this instant without waiting for more,
// in arrival order per channel. It reports whether anything was applied;
// the redraw flag is left to the handlers.
func (r *Router) Drain() bool {
	c := r.c
	n := drain(r.src.Backend, c.HandleEvent)
	n += drain(c.Loopback(), c.HandleEvent)
	n += drain(r.src.Downloads, c.OnDownloadProgress)
	n += drain(r.src.Lyrics, func(res lyrics.Result) { c.ApplyLyrics(res) })
	n += drain(r.src.Commands, c.HandleCommand)
	n += drain(r.src.SinkErrs, func(err error) {
		c.SetNotice(errmsg.Format(errmsg.OpScrobble, err))
	})
	n += drain(r.src.Stderr, c.SetNotice)
	return n > 0
}

// drain reads at most len(ch) values so a busy producer cannot hold the
// control loop.
func drain[T any](ch <-chan T, apply func(T)) int {
	if ch == nil {
		return 0
	}
	n := len(ch)
	applied := 0
	for range n {
		select {
		case v, ok := <-ch:
			if !ok {
				return applied
			}
			apply(v)
			applied++
		default:
			return applied
		}
	}
	return applied
}
