package queue

import (
	"testing"

	"github.com/adite/labyrinth/internal/event"
)

func pending(id, task string) event.PendingEvent {
	return event.PendingEvent{ID: id, SourceTask: task}
}

func TestQueue_FIFOOrder(t *testing.T) {
	var q Queue
	q.Add(pending("1", "first"))
	q.Add(pending("2", "second"))
	q.Add(pending("3", "third"))

	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}
	head, ok := q.At(0)
	if !ok || head.SourceTask != "first" {
		t.Errorf("At(0) = %+v, want first", head)
	}
	tail, ok := q.At(2)
	if !ok || tail.SourceTask != "third" {
		t.Errorf("At(2) = %+v, want third", tail)
	}
}

func TestQueue_At_OutOfRange(t *testing.T) {
	var q Queue
	q.Add(pending("1", "only"))
	if _, ok := q.At(-1); ok {
		t.Error("At(-1) should not succeed")
	}
	if _, ok := q.At(1); ok {
		t.Error("At(1) should not succeed")
	}
}

func TestQueue_RemoveByID(t *testing.T) {
	var q Queue
	q.Add(pending("1", "first"))
	q.Add(pending("2", "second"))
	q.Add(pending("3", "third"))

	p, ok := q.Remove("2")
	if !ok || p.SourceTask != "second" {
		t.Fatalf("Remove(2) = %+v, %v", p, ok)
	}
	if q.Len() != 2 {
		t.Errorf("Len = %d, want 2", q.Len())
	}
	// Remaining order preserved.
	a, _ := q.At(0)
	b, _ := q.At(1)
	if a.ID != "1" || b.ID != "3" {
		t.Errorf("remaining = %q, %q, want 1, 3", a.ID, b.ID)
	}

	// Consumed exactly once: a second removal fails.
	if _, ok := q.Remove("2"); ok {
		t.Error("Remove(2) should fail after consumption")
	}
}

func TestQueue_AllReturnsCopy(t *testing.T) {
	var q Queue
	q.Add(pending("1", "first"))
	all := q.All()
	all[0].SourceTask = "mutated"
	got, _ := q.At(0)
	if got.SourceTask != "first" {
		t.Error("All() should not expose internal storage")
	}
}

func TestDeferralCounts(t *testing.T) {
	c := DeferralCounts{}

	if c.Get("task-1") != 0 {
		t.Error("untouched counter should read 0")
	}

	c.Increment("task-1")
	c.Increment("task-1")
	if got := c.Increment("task-1"); got != 3 {
		t.Errorf("Increment = %d, want 3", got)
	}

	c.Reset("task-1")
	if c.Get("task-1") != 0 {
		t.Errorf("Get after reset = %d, want 0", c.Get("task-1"))
	}
	// Key survives reset for observability.
	if _, ok := c["task-1"]; !ok {
		t.Error("reset should keep the key")
	}

	// Reset of an unknown id is a no-op and creates nothing.
	c.Reset("never-seen")
	if _, ok := c["never-seen"]; ok {
		t.Error("reset of unknown id should not create a key")
	}
}
