// Package downloads runs podcast episode downloads on a fixed pool of workers.
package downloads

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// ErrPoolClosed is returned by Submit after Close, and reported for jobs
// that were still queued when the pool closed.
var ErrPoolClosed = errors.New("download pool closed")

// Status is the lifecycle of one job. Done and Failed are terminal.
type Status int

const (
	StatusQueued Status = iota
	StatusInProgress
	StatusDone
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusInProgress:
		return "downloading"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsFinished reports whether s is terminal.
func (s Status) IsFinished() bool {
	return s == StatusDone || s == StatusFailed
}

// Job describes one episode to fetch.
type Job struct {
	ID         string // assigned by Submit when empty
	EpisodeKey string // identity of the episode, used as the track key
	Title      string
	URL        string
	Dir        string // destination directory
	Enqueue    bool   // add to the play queue once done
}

// Progress is the latest known state of a job.
type Progress struct {
	Job        Job
	Status     Status
	BytesRead  int64
	TotalBytes int64 // 0 when the server sent no length
	Path       string
	Err        error
}

// Percent returns completion in 0-100, or -1 when the size is unknown.
func (p Progress) Percent() float64 {
	if p.Status == StatusDone {
		return 100
	}
	if p.TotalBytes <= 0 {
		return -1
	}
	return float64(p.BytesRead) / float64(p.TotalBytes) * 100
}

// String renders a one-line summary for the downloads panel.
func (p Progress) String() string {
	switch p.Status {
	case StatusInProgress:
		if p.TotalBytes > 0 {
			return fmt.Sprintf("%s %s/%s (%.0f%%)", p.Job.Title,
				humanize.Bytes(uint64(p.BytesRead)), humanize.Bytes(uint64(p.TotalBytes)), p.Percent())
		}
		return fmt.Sprintf("%s %s", p.Job.Title, humanize.Bytes(uint64(p.BytesRead)))
	case StatusFailed:
		return fmt.Sprintf("%s failed: %v", p.Job.Title, p.Err)
	default:
		return fmt.Sprintf("%s %s", p.Job.Title, p.Status)
	}
}
