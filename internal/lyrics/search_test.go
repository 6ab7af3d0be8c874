package lyrics

import (
	"context"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/wavecast/internal/playlist"
)

type blockingFetcher struct {
	release chan struct{}
	seen    chan string
}

func (f *blockingFetcher) Fetch(ctx context.Context, t playlist.Track) FetchResult {
	f.seen <- t.Identity()
	select {
	case <-f.release:
	case <-ctx.Done():
	}
	return FetchResult{Source: FromNotFound}
}

func TestSearcher_KeepsLatestPendingRequest(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := &blockingFetcher{release: make(chan struct{}), seen: make(chan string, 8)}
		s := NewSearcher(f)

		s.Search(playlist.Track{Key: "first"})
		assert.Equal(t, "first", <-f.seen)

		// worker busy: only the last of these survives
		s.Search(playlist.Track{Key: "second"})
		s.Search(playlist.Track{Key: "third"})

		f.release <- struct{}{}
		assert.Equal(t, "first", (<-s.Results()).TrackKey)
		assert.Equal(t, "third", <-f.seen)
		f.release <- struct{}{}
		assert.Equal(t, "third", (<-s.Results()).TrackKey)

		s.Close()
	})
}

func TestSearcher_CloseWhileFetching(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := &blockingFetcher{release: make(chan struct{}), seen: make(chan string, 1)}
		s := NewSearcher(f)
		s.Search(playlist.Track{Key: "x"})
		<-f.seen

		s.Close()
	})
}
