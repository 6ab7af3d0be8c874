package lyrics

import (
	"context"
	"sync"

	"github.com/llehouerou/wavecast/internal/playlist"
)

// Fetcher is what Searcher runs; *Source implements it.
type Fetcher interface {
	Fetch(ctx context.Context, t playlist.Track) FetchResult
}

// Result is a finished search for the track identified by TrackKey.
type Result struct {
	TrackKey string
	FetchResult
}

// Searcher runs lyric lookups on one background goroutine. Only the most
// recent request is kept while a lookup is running.
type Searcher struct {
	fetcher  Fetcher
	requests chan playlist.Track
	results  chan Result
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewSearcher(f Fetcher) *Searcher {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Searcher{
		fetcher:  f,
		requests: make(chan playlist.Track, 1),
		results:  make(chan Result, 4),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.wg.Add(1)
	go s.loop()
	return s
}

// Results delivers finished lookups. Callers must check TrackKey against the
// current track.
func (s *Searcher) Results() <-chan Result { return s.results }

// Search requests lyrics for t without blocking, replacing any request that
// has not started yet.
func (s *Searcher) Search(t playlist.Track) {
	for {
		select {
		case s.requests <- t:
			return
		default:
		}
		select {
		case <-s.requests:
		default:
		}
	}
}

// Close stops the worker and waits for it.
func (s *Searcher) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Searcher) loop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case t := <-s.requests:
			res := Result{TrackKey: t.Identity(), FetchResult: s.fetcher.Fetch(s.ctx, t)}
			select {
			case s.results <- res:
			case <-s.ctx.Done():
				return
			}
		}
	}
}
