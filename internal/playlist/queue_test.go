// internal/playlist/queue_test.go
//
//nolint:goconst // test file with repeated string literals
package playlist

import (
	"fmt"
	"testing"
)

func threeTracks() *Queue {
	q := NewQueue()
	q.Add(
		Track{Path: "/track0.mp3"},
		Track{Path: "/track1.mp3"},
		Track{Path: "/track2.mp3"},
	)
	return q
}

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if !q.IsStopped() || !q.IsEmpty() {
		t.Error("new queue should be empty and stopped")
	}
	if q.Current() != nil {
		t.Error("Current() should be nil for empty queue")
	}
}

func TestQueue_Start_Empty(t *testing.T) {
	q := NewQueue()

	if q.Start() != nil {
		t.Error("Start on empty queue should return nil")
	}
	if !q.IsStopped() {
		t.Error("empty queue must stay stopped")
	}
}

func TestQueue_StartStopResumes(t *testing.T) {
	q := threeTracks()
	q.Start()
	q.JumpTo(2)

	q.Stop()
	if !q.IsStopped() {
		t.Fatal("Stop should clear the cursor")
	}
	if q.Current() != nil {
		t.Error("Current() should be nil after Stop")
	}

	track := q.Start()
	if track == nil || track.Path != "/track2.mp3" {
		t.Errorf("Start() after Stop = %v, want /track2.mp3", track)
	}
}

func TestQueue_HandleAdvance(t *testing.T) {
	tests := []struct {
		name      string
		loop      LoopMode
		from      int
		wantIndex int
	}{
		{"none middle", LoopNone, 0, 1},
		{"none past end stops", LoopNone, 2, -1},
		{"single stays", LoopSingle, 1, 1},
		{"single at end stays", LoopSingle, 2, 2},
		{"queue middle", LoopQueue, 1, 2},
		{"queue wraps", LoopQueue, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := threeTracks()
			q.SetLoopMode(tt.loop)
			q.JumpTo(tt.from)

			q.HandleAdvance()

			if q.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantIndex)
			}
		})
	}
}

func TestQueue_HandleAdvance_NoneRestartsFromTop(t *testing.T) {
	q := threeTracks()
	q.JumpTo(2)

	q.HandleAdvance()
	track := q.Start()

	if track == nil || track.Path != "/track0.mp3" {
		t.Errorf("Start() after running off the end = %v, want /track0.mp3", track)
	}
}

func TestQueue_HandleAdvance_SingleElementQueueLoop(t *testing.T) {
	q := NewQueue()
	q.Add(Track{Path: "/only.mp3"})
	q.SetLoopMode(LoopQueue)
	q.Start()

	track := q.HandleAdvance()

	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
	if track == nil || track.Path != "/only.mp3" {
		t.Errorf("HandleAdvance() = %v, want /only.mp3", track)
	}
}

func TestQueue_HandleAdvance_Stopped(t *testing.T) {
	q := threeTracks()

	if q.HandleAdvance() != nil {
		t.Error("HandleAdvance on a stopped queue should return nil")
	}
	if !q.IsStopped() {
		t.Error("HandleAdvance must not start a stopped queue")
	}
}

func TestQueue_HandlePrevious(t *testing.T) {
	tests := []struct {
		name      string
		from      int
		wantIndex int
	}{
		{"middle", 1, 0},
		{"last", 2, 1},
		{"first wraps", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := threeTracks()
			q.JumpTo(tt.from)

			q.HandlePrevious()

			if q.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantIndex)
			}
		})
	}
}

func TestQueue_PreviousThenAdvanceRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		for start := range n {
			t.Run(fmt.Sprintf("len %d from %d", n, start), func(t *testing.T) {
				q := NewQueue()
				for i := range n {
					q.Add(Track{Path: fmt.Sprintf("/track%d.mp3", i)})
				}
				q.SetLoopMode(LoopQueue)
				q.JumpTo(start)

				q.HandlePrevious()
				q.HandleAdvance()

				if q.CurrentIndex() != start {
					t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), start)
				}
			})
		}
	}
}

func TestQueue_CursorInvariant(t *testing.T) {
	q := threeTracks()
	q.SetLoopMode(LoopQueue)
	q.Start()

	ops := []func(){
		func() { q.HandleAdvance() },
		func() { q.HandlePrevious() },
		func() { q.RemoveAt(0) },
		func() { q.HandleAdvance() },
		func() { q.RemoveAt(q.Len() - 1) },
		func() { q.HandlePrevious() },
		func() { q.RemoveAt(0) },
	}
	for i, op := range ops {
		op()
		idx := q.CurrentIndex()
		if idx != -1 && (idx < 0 || idx >= q.Len()) {
			t.Fatalf("after op %d: CurrentIndex() = %d with Len() = %d", i, idx, q.Len())
		}
		if q.IsEmpty() && idx != -1 {
			t.Fatalf("after op %d: empty queue has cursor %d", i, idx)
		}
	}
}

func TestQueue_Replace(t *testing.T) {
	q := threeTracks()
	q.Start()

	q.Replace(1, Track{Path: "/a.mp3"}, Track{Path: "/b.mp3"})

	if !q.IsStopped() {
		t.Error("Replace should leave the queue stopped")
	}
	if q.ResumeIndex() != 1 {
		t.Errorf("ResumeIndex() = %d, want 1", q.ResumeIndex())
	}
	if track := q.Start(); track == nil || track.Path != "/b.mp3" {
		t.Errorf("Start() = %v, want /b.mp3", track)
	}
}

func TestQueue_RemoveAt_AdjustsCursor(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		remove    int
		wantIndex int
	}{
		{"before current", 2, 0, 1},
		{"after current", 0, 2, 0},
		{"current middle", 1, 1, 1},
		{"current last", 2, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := threeTracks()
			q.JumpTo(tt.current)

			if !q.RemoveAt(tt.remove) {
				t.Fatal("RemoveAt returned false")
			}
			if q.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantIndex)
			}
		})
	}
}

func TestQueue_RemoveAt_KeepsResumeTrack(t *testing.T) {
	tests := []struct {
		name    string
		resume  int
		remove  int
		want    string
		wantLen int
	}{
		{"before resume", 1, 0, "/track1.mp3", 2},
		{"after resume", 1, 2, "/track1.mp3", 2},
		{"resume track itself", 1, 1, "/track2.mp3", 2},
		{"resume on removed last", 2, 2, "/track1.mp3", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := threeTracks()
			q.JumpTo(tt.resume)
			q.Stop()

			q.RemoveAt(tt.remove)
			track := q.Start()

			if q.Len() != tt.wantLen {
				t.Fatalf("Len() = %d, want %d", q.Len(), tt.wantLen)
			}
			if track == nil || track.Path != tt.want {
				t.Errorf("Start() after RemoveAt(%d) = %v, want %s", tt.remove, track, tt.want)
			}
		})
	}
}

func TestQueue_RemoveAt_InvalidIndex(t *testing.T) {
	q := NewQueue()
	q.Add(Track{Path: "/a.mp3"})

	for _, index := range []int{-1, 1, 10} {
		if q.RemoveAt(index) {
			t.Errorf("RemoveAt(%d) = true, want false", index)
		}
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

func TestQueue_TracksIsCopy(t *testing.T) {
	q := NewQueue()
	q.Add(Track{Path: "/a.mp3"})

	tracks := q.Tracks()
	tracks[0].Path = "/modified.mp3"

	if q.Tracks()[0].Path != "/a.mp3" {
		t.Error("modifying Tracks() result should not affect the queue")
	}
}

func TestQueue_RemoveAt_LastTrackEmptiesQueue(t *testing.T) {
	q := NewQueue()
	q.Add(Track{Path: "/only.mp3"})
	q.Start()

	q.RemoveAt(0)

	if !q.IsStopped() {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
}

func TestQueue_SetDuration(t *testing.T) {
	q := threeTracks()

	q.SetDuration(1, 42)
	q.SetDuration(9, 42)

	if q.Tracks()[1].Duration != 42 {
		t.Errorf("Duration = %v, want 42", q.Tracks()[1].Duration)
	}
}
