package sink

import (
	"fmt"
	"time"

	"github.com/llehouerou/wavecast/internal/playlist"
)

// Recorder is a Sink that logs every call, for tests.
type Recorder struct {
	Calls []string
	Err   error
}

func (r *Recorder) AddAndPlay(t playlist.Track) error {
	r.Calls = append(r.Calls, "add_and_play "+t.Identity())
	return r.Err
}

func (r *Recorder) Resume(pos time.Duration) error {
	r.Calls = append(r.Calls, fmt.Sprintf("resume %s", pos))
	return r.Err
}

func (r *Recorder) Pause() error {
	r.Calls = append(r.Calls, "pause")
	return r.Err
}

func (r *Recorder) Update(t playlist.Track) error {
	r.Calls = append(r.Calls, "update "+t.Identity())
	return r.Err
}

func (r *Recorder) Stop() error {
	r.Calls = append(r.Calls, "stop")
	return r.Err
}

var _ Sink = (*Recorder)(nil)
