package remote

import "testing"

func TestQueue_SendDropsWhenFull(t *testing.T) {
	q := NewQueue(1)

	if !q.Send(Command{Action: Next}) {
		t.Fatal("first Send should succeed")
	}
	if q.Send(Command{Action: Previous}) {
		t.Error("Send on a full queue should drop")
	}
	if got := <-q.Commands(); got.Action != Next {
		t.Errorf("got %v, want next", got.Action)
	}
}
