package task

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/polytechnice-si/5A-BPM-Demo/internal/logger"
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
)

// CompleteFunc completes a claimed task with the supplied variables.
type CompleteFunc func(ctx context.Context, taskID string, vars map[string]interface{}) error

// DecisionFunc returns the variables used to complete t.
type DecisionFunc func(t *execution.Task) map[string]interface{}

// AutoComplete starts a goroutine that polls group and completes every
// pending task with fn's variables. Call the returned stop or cancel ctx
// to exit.
func AutoComplete(ctx context.Context,
	svc Service,
	group string,
	complete CompleteFunc,
	fn DecisionFunc,
	interval time.Duration) (stop func()) {

	if interval <= 0 {
		interval = 20 * time.Millisecond
	}
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				tasks, _ := svc.ForGroup(ctx, group)
				for _, t := range tasks {
					if err := complete(ctx, t.ID, fn(t)); err != nil && !errors.Is(err, ErrUnknownTask) {
						logger.Default().Warn("auto complete failed", "task", t.ID, "error", err)
					}
				}
			}
		}
	}()
	return func() {
		close(done)
		<-exited
	}
}

// AutoDecide completes every task of group by setting variable to approved.
func AutoDecide(ctx context.Context,
	svc Service,
	group, variable string,
	approved bool,
	complete CompleteFunc,
	interval time.Duration) func() {
	return AutoComplete(ctx, svc, group, complete,
		func(*execution.Task) map[string]interface{} {
			return map[string]interface{}{variable: approved}
		}, interval)
}

// ListForGroup returns the tasks of group accepted by keep, in queue order.
func ListForGroup(ctx context.Context, svc Service, group string, keep func(*execution.Task) bool) ([]*execution.Task, error) {
	tasks, err := svc.ForGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	if keep == nil {
		return tasks, nil
	}
	out := make([]*execution.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Sort orders tasks by creation time, then id.
func Sort(tasks []*execution.Task) {
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Before(tasks[j]) })
}
