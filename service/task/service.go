package task

import (
	"context"
	"errors"

	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/messaging"
)

// ErrUnknownTask is returned when a task id is not (or no longer) queued.
var ErrUnknownTask = errors.New("unknown task")

// Service defines the task queue interface.
type Service interface {
	// Push queues a task token.
	Push(ctx context.Context, t *execution.Task) error
	// ForGroup lists pending tasks of a candidate group, oldest first.
	ForGroup(ctx context.Context, group string) ([]*execution.Task, error)
	Lookup(ctx context.Context, id string) (*execution.Task, error)
	// Remove takes a task off the queue; only one caller can win.
	Remove(ctx context.Context, id string) (*execution.Task, error)
	// RemoveInstance drops every task owned by instanceID.
	RemoveInstance(ctx context.Context, instanceID string) (int, error)
	Queue() messaging.Queue[Event]
}
