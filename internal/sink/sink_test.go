package sink

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/wavecast/internal/playlist"
)

func TestJoin_Empty(t *testing.T) {
	assert.Nil(t, Join())
	assert.Nil(t, Join(nil, nil))
}

func TestJoin_Single(t *testing.T) {
	r := &Recorder{}
	assert.Same(t, r, Join(nil, r))
}

func TestJoin_FansOutAndJoinsErrors(t *testing.T) {
	errA := errors.New("mpris down")
	a := &Recorder{Err: errA}
	b := &Recorder{}
	s := Join(a, b)

	err := s.AddAndPlay(playlist.Track{Key: "k"})
	_ = s.Resume(3 * time.Second)

	assert.ErrorIs(t, err, errA)
	assert.Equal(t, []string{"add_and_play k", "resume 3s"}, b.Calls)
	assert.Equal(t, a.Calls, b.Calls, "a failing sink must not stop the others")
	assert.NoError(t, Join(b, &Recorder{}).Pause())
}
