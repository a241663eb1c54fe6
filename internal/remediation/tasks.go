package remediation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Task is an outbound item for the external task list.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewTask builds a task with a fresh id.
func NewTask(text string, now time.Time) Task {
	return Task{ID: uuid.New().String(), Text: text, CreatedAt: now}
}

// TaskSink receives synthesized remediation tasks. Implemented by the
// host's task list.
type TaskSink interface {
	AppendTask(ctx context.Context, task Task) error
}
