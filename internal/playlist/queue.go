package playlist

import "time"

// Queue wraps a Playlist with a playback cursor and a loop mode.
//
// The cursor is -1 when playback is stopped, otherwise a valid index.
// An empty queue is always stopped.
type Queue struct {
	tracks       []Track
	currentIndex int // -1 if nothing playing
	resumeIndex  int // where Start begins after a Stop
	loop         LoopMode
}

// NewQueue creates a new empty, stopped queue.
func NewQueue() *Queue {
	return &Queue{
		tracks:       make([]Track, 0),
		currentIndex: -1,
	}
}

// Current returns the currently playing track, or nil if none.
func (q *Queue) Current() *Track {
	return q.track(q.currentIndex)
}

// CurrentIndex returns the index of the currently playing track (-1 if none).
func (q *Queue) CurrentIndex() int {
	return q.currentIndex
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// IsStopped reports whether the cursor is unset.
func (q *Queue) IsStopped() bool {
	return q.currentIndex < 0
}

func (q *Queue) LoopMode() LoopMode { return q.loop }

func (q *Queue) SetLoopMode(m LoopMode) { q.loop = m }

// Start places the cursor on the resume index (0 unless a Stop remembered
// another one) and returns the track to play. Returns nil on an empty queue.
func (q *Queue) Start() *Track {
	if q.IsEmpty() {
		q.currentIndex = -1
		return nil
	}
	if q.resumeIndex < 0 || q.resumeIndex >= len(q.tracks) {
		q.resumeIndex = 0
	}
	q.currentIndex = q.resumeIndex
	return q.Current()
}

// Stop clears the cursor, remembering it for the next Start.
func (q *Queue) Stop() {
	if q.currentIndex >= 0 {
		q.resumeIndex = q.currentIndex
	}
	q.currentIndex = -1
}

// HandleAdvance moves the cursor after the current track ended.
// With LoopNone the queue stops once the last track is done.
func (q *Queue) HandleAdvance() *Track {
	if q.IsStopped() || q.IsEmpty() {
		return nil
	}
	n := len(q.tracks)
	switch q.loop {
	case LoopSingle:
	case LoopQueue:
		q.currentIndex = (q.currentIndex + 1) % n
	default:
		if q.currentIndex+1 >= n {
			q.currentIndex = -1
			q.resumeIndex = 0
			return nil
		}
		q.currentIndex++
	}
	return q.Current()
}

// HandlePrevious moves the cursor one step back, wrapping from the first
// track to the last one.
func (q *Queue) HandlePrevious() *Track {
	if q.IsEmpty() {
		return nil
	}
	if q.currentIndex <= 0 {
		q.currentIndex = len(q.tracks) - 1
	} else {
		q.currentIndex--
	}
	return q.Current()
}

// JumpTo sets the current index to the specified position.
// Returns the track at that position, or nil if invalid.
func (q *Queue) JumpTo(index int) *Track {
	if index < 0 || index >= len(q.tracks) {
		return nil
	}
	q.currentIndex = index
	return q.Current()
}

// Add appends tracks to the queue without changing playback.
func (q *Queue) Add(tracks ...Track) {
	q.tracks = append(q.tracks, tracks...)
}

// Replace clears the queue and adds tracks. The cursor is left stopped on
// resumeIndex so the next Start picks it up.
func (q *Queue) Replace(resumeIndex int, tracks ...Track) {
	q.tracks = append(q.tracks[:0], tracks...)
	q.currentIndex = -1
	q.resumeIndex = resumeIndex
}

// RemoveAt removes the track at index and shifts both the cursor and the
// resume index so they keep pointing at the same track. Returns false if
// index is out of range.
func (q *Queue) RemoveAt(index int) bool {
	if index < 0 || index >= len(q.tracks) {
		return false
	}
	q.tracks = append(q.tracks[:index], q.tracks[index+1:]...)
	q.currentIndex = shiftAfterRemove(q.currentIndex, index, len(q.tracks))
	if q.resumeIndex >= 0 {
		q.resumeIndex = max(shiftAfterRemove(q.resumeIndex, index, len(q.tracks)), 0)
	}
	return true
}

// shiftAfterRemove maps a cursor across the removal of index from a list now
// n long. -1 stays -1; a cursor on the removed last track moves back one.
func shiftAfterRemove(cursor, index, n int) int {
	switch {
	case cursor > index:
		return cursor - 1
	case cursor == index && cursor >= n:
		return n - 1
	}
	return cursor
}

// SetDuration fills in a duration learned during playback.
func (q *Queue) SetDuration(index int, d time.Duration) {
	if t := q.track(index); t != nil {
		t.Duration = d
	}
}

// Tracks returns a copy of the queued tracks.
func (q *Queue) Tracks() []Track {
	out := make([]Track, len(q.tracks))
	copy(out, q.tracks)
	return out
}

// Len returns the number of tracks in the queue.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// ResumeIndex returns the index Start would begin from.
func (q *Queue) ResumeIndex() int {
	if q.currentIndex >= 0 {
		return q.currentIndex
	}
	return q.resumeIndex
}

func (q *Queue) track(index int) *Track {
	if index < 0 || index >= len(q.tracks) {
		return nil
	}
	return &q.tracks[index]
}
