package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao/store"
	"github.com/polytechnice-si/5A-BPM-Demo/service/messaging"
	qmem "github.com/polytechnice-si/5A-BPM-Demo/service/messaging/memory"
	"github.com/polytechnice-si/5A-BPM-Demo/service/task"
)

type service struct {
	tasks       *store.MemoryStore[string, execution.Task]
	events      *qmem.Queue[task.Event]
	queueConfig qmem.Config
}

func taskKey(t *execution.Task) string { return t.ID }

// New creates an in-memory task queue
func New(options ...Option) task.Service {
	ret := &service{
		tasks:       store.NewMemoryStore[string, execution.Task](taskKey, (*execution.Task).Clone),
		queueConfig: qmem.EventConfig(),
	}
	for _, option := range options {
		option(ret)
	}
	ret.events = qmem.NewQueue[task.Event](ret.queueConfig)
	return ret
}

func (s *service) Push(ctx context.Context, t *execution.Task) error {
	if t == nil || t.ID == "" {
		return fmt.Errorf("push task: %w", dao.ErrInvalidID)
	}
	if err := s.tasks.Save(ctx, t); err != nil {
		return err
	}
	_ = s.events.Publish(ctx, &task.Event{Topic: task.TopicTaskCreated, Task: t.Clone()})
	return nil
}

func (s *service) ForGroup(_ context.Context, group string) ([]*execution.Task, error) {
	tasks := s.tasks.Filter(func(t *execution.Task) bool { return t.CandidateGroup == group })
	task.Sort(tasks)
	return tasks, nil
}

func (s *service) Lookup(ctx context.Context, id string) (*execution.Task, error) {
	t, err := s.tasks.Load(ctx, id)
	if errors.Is(err, dao.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", task.ErrUnknownTask, id)
	}
	return t, err
}

func (s *service) Remove(ctx context.Context, id string) (*execution.Task, error) {
	t, ok := s.tasks.Take(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", task.ErrUnknownTask, id)
	}
	_ = s.events.Publish(ctx, &task.Event{Topic: task.TopicTaskRemoved, Task: t.Clone()})
	return t, nil
}

func (s *service) RemoveInstance(ctx context.Context, instanceID string) (int, error) {
	owned := s.tasks.Filter(func(t *execution.Task) bool { return t.InstanceID == instanceID })
	removed := 0
	for _, t := range owned {
		if _, err := s.Remove(ctx, t.ID); err == nil {
			removed++
		}
	}
	return removed, nil
}

func (s *service) Queue() messaging.Queue[task.Event] { return s.events }

var _ task.Service = (*service)(nil)
