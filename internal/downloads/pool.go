package downloads

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const progressBuffer = 64

// Fetcher downloads one job, reporting byte counts through report, and
// returns the final file path.
type Fetcher interface {
	Fetch(ctx context.Context, job Job, report func(read, total int64)) (string, error)
}

// Pool runs jobs on a fixed number of workers in submission order.
//
// Submit never blocks: the queue is unbounded. At most `workers` jobs are in
// progress at once. Every job reaches exactly one terminal state, Done or
// Failed, and failed jobs are not retried.
type Pool struct {
	fetcher Fetcher
	tracker *Tracker
	events  chan Progress

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Job
	closed bool
	wg     sync.WaitGroup
}

// NewPool starts workers goroutines. workers below 1 is treated as 1.
func NewPool(workers int, fetcher Fetcher) *Pool {
	workers = max(workers, 1)
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		fetcher: fetcher,
		tracker: NewTracker(),
		events:  make(chan Progress, progressBuffer),
		ctx:     ctx,
		cancel:  cancel,
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	go func() {
		p.wg.Wait()
		close(p.events)
	}()

	log.Debug().Int("workers", workers).Msg("download pool started")
	return p
}

// Progress returns the channel of progress updates. It is closed once the
// pool has shut down and every terminal update was delivered.
func (p *Pool) Progress() <-chan Progress { return p.events }

func (p *Pool) Tracker() *Tracker { return p.tracker }

// Submit queues job and returns its id.
func (p *Pool) Submit(job Job) (string, error) {
	if job.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("job id: %w", err)
		}
		job.ID = id.String()
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return "", ErrPoolClosed
	}
	p.queue = append(p.queue, job)
	p.tracker.Set(Progress{Job: job, Status: StatusQueued})
	p.mu.Unlock()

	p.cond.Signal()
	return job.ID, nil
}

// Close stops accepting jobs. Jobs already running finish; jobs still queued
// are failed with ErrPoolClosed. Close does not wait.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	pending := p.queue
	p.queue = nil
	// keeps the events channel open until the failures are published
	p.wg.Add(1)
	p.mu.Unlock()
	p.cond.Broadcast()

	go func() {
		defer p.wg.Done()
		for _, job := range pending {
			p.publish(Progress{Job: job, Status: StatusFailed, Err: ErrPoolClosed})
		}
	}()
}

// Shutdown closes the pool and waits for the workers. When ctx expires first,
// running fetches are cancelled and ctx's error is returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.Close()
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}

func (p *Pool) next() (Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}
	if len(p.queue) == 0 {
		return Job{}, false
	}
	job := p.queue[0]
	p.queue = p.queue[1:]
	return job, true
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		job, ok := p.next()
		if !ok {
			return
		}
		p.run(job)
	}
}

func (p *Pool) run(job Job) {
	p.publish(Progress{Job: job, Status: StatusInProgress})

	path, err := p.fetcher.Fetch(p.ctx, job, func(read, total int64) {
		p.report(Progress{Job: job, Status: StatusInProgress, BytesRead: read, TotalBytes: total})
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			err = ErrPoolClosed
		}
		log.Warn().Err(err).Str("url", job.URL).Msg("download failed")
		p.publish(Progress{Job: job, Status: StatusFailed, Err: err})
		return
	}

	last, _ := p.tracker.Get(job.ID)
	log.Info().Str("path", path).Msg("download finished")
	p.publish(Progress{
		Job:        job,
		Status:     StatusDone,
		BytesRead:  last.BytesRead,
		TotalBytes: last.TotalBytes,
		Path:       path,
	})
}

// report records an intermediate update; the channel send is dropped when
// the consumer lags since the tracker already holds the value.
func (p *Pool) report(pr Progress) {
	p.tracker.Set(pr)
	select {
	case p.events <- pr:
	default:
	}
}

// publish records a status change and always delivers it, unless the pool is
// being torn down.
func (p *Pool) publish(pr Progress) {
	p.tracker.Set(pr)
	select {
	case p.events <- pr:
	case <-p.ctx.Done():
	}
}
