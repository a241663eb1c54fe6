package queue

import (
	"github.com/adite/labyrinth/internal/event"
)

// Queue is the FIFO of deferred failure events awaiting completion.
// Items are appended at the tail and consumed exactly once, by id;
// positional access is read-only so a stale index can never remove the
// wrong item.
type Queue struct {
	Items []event.PendingEvent `json:"items"`
}

// Add appends a pending event at the tail.
func (q *Queue) Add(p event.PendingEvent) {
	q.Items = append(q.Items, p)
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.Items)
}

// At returns the item at position i, oldest first.
func (q *Queue) At(i int) (event.PendingEvent, bool) {
	if i < 0 || i >= len(q.Items) {
		return event.PendingEvent{}, false
	}
	return q.Items[i], true
}

// All returns a copy of the queued items, oldest first.
func (q *Queue) All() []event.PendingEvent {
	out := make([]event.PendingEvent, len(q.Items))
	copy(out, q.Items)
	return out
}

// Remove takes the item with the given id out of the queue and returns
// it. Returns false when no such item is queued.
func (q *Queue) Remove(id string) (event.PendingEvent, bool) {
	for i, p := range q.Items {
		if p.ID == id {
			q.Items = append(q.Items[:i], q.Items[i+1:]...)
			return p, true
		}
	}
	return event.PendingEvent{}, false
}

// Clear drops all queued items.
func (q *Queue) Clear() {
	q.Items = nil
}
