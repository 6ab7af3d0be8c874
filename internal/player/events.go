package player

import "time"

// Event is emitted by a Backend on its Events channel.
type Event interface {
	EventToken() Token
}

// Progress reports the playback position of the current track.
type Progress struct {
	Token    Token
	Position time.Duration
	Duration time.Duration
}

// TrackEnded is emitted once per Play, when the track runs out or is skipped.
type TrackEnded struct {
	Token   Token
	Skipped bool
}

// Error reports a failure that happened after Play returned.
type Error struct {
	Token Token
	Err   error
}

func (e Progress) EventToken() Token   { return e.Token }
func (e TrackEnded) EventToken() Token { return e.Token }
func (e Error) EventToken() Token      { return e.Token }
