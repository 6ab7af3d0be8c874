package downloads

import (
	"sync"
)

// Tracker is the shared progress table. Workers write whole entries; the UI
// reads snapshots.
type Tracker struct {
	mu      sync.RWMutex
	entries map[string]Progress
	order   []string
}

func NewTracker() *Tracker {
	return &Tracker{entries: make(map[string]Progress)}
}

// Set replaces the entry for p.Job.ID.
func (t *Tracker) Set(p Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[p.Job.ID]; !ok {
		t.order = append(t.order, p.Job.ID)
	}
	t.entries[p.Job.ID] = p
}

func (t *Tracker) Get(id string) (Progress, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.entries[id]
	return p, ok
}

// Snapshot returns all entries in submission order.
func (t *Tracker) Snapshot() []Progress {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Progress, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.entries[id])
	}
	return out
}

// Count returns how many entries are in status s.
func (t *Tracker) Count(s Status) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, p := range t.entries {
		if p.Status == s {
			n++
		}
	}
	return n
}

// Prune drops finished entries.
func (t *Tracker) Prune() {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.order[:0]
	for _, id := range t.order {
		if t.entries[id].Status.IsFinished() {
			delete(t.entries, id)
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept
}
