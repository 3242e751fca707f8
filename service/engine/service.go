package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/polytechnice-si/5A-BPM-Demo/internal/clock"
	"github.com/polytechnice-si/5A-BPM-Demo/internal/idgen"
	"github.com/polytechnice-si/5A-BPM-Demo/internal/logger"
	"github.com/polytechnice-si/5A-BPM-Demo/model"
	"github.com/polytechnice-si/5A-BPM-Demo/model/state"
	"github.com/polytechnice-si/5A-BPM-Demo/policy"
	"github.com/polytechnice-si/5A-BPM-Demo/progress"
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao"
	instmem "github.com/polytechnice-si/5A-BPM-Demo/service/dao/instance/memory"
	"github.com/polytechnice-si/5A-BPM-Demo/service/event"
	"github.com/polytechnice-si/5A-BPM-Demo/service/history"
	histmem "github.com/polytechnice-si/5A-BPM-Demo/service/history/memory"
	"github.com/polytechnice-si/5A-BPM-Demo/service/registry"
	"github.com/polytechnice-si/5A-BPM-Demo/service/task"
	taskmem "github.com/polytechnice-si/5A-BPM-Demo/service/task/memory"
	"github.com/polytechnice-si/5A-BPM-Demo/tracing"
)

// Service is the process engine. A single Service is shared by all actors;
// calls on different instances run in parallel.
type Service struct {
	config    Config
	registry  *registry.Service
	tasks     task.Service
	ledger    history.Ledger
	instances dao.Service[string, execution.Process]
	events    *event.Service
	listener  func(*event.Event[any])
	metrics   Metrics
	progress  *progress.Progress
	logger    *slog.Logger

	ids   idgen.Sequence
	locks *lockTable
}

// New creates an engine; collaborators not supplied by options default to
// in-memory implementations.
func New(options ...Option) (*Service, error) {
	s := &Service{
		config: DefaultConfig(),
		logger: logger.Default(),
		locks:  newLockTable(),
	}
	for _, opt := range options {
		opt(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.registry == nil {
		s.registry = registry.New()
	}
	if s.tasks == nil {
		s.tasks = taskmem.New()
	}
	if s.ledger == nil {
		s.ledger = histmem.New()
	}
	if s.instances == nil {
		s.instances = instmem.New()
	}
	if s.events == nil {
		s.events = event.New()
	}
	if s.metrics == nil {
		s.metrics = noMetrics{}
	}
	if s.progress == nil {
		s.progress = progress.New("engine", nil)
	}
	if s.listener != nil {
		s.events.SetListener(s.listener)
	}
	return s, nil
}

func (s *Service) Registry() *registry.Service { return s.registry }

func (s *Service) Tasks() task.Service { return s.tasks }

func (s *Service) Ledger() history.Ledger { return s.ledger }

func (s *Service) Events() *event.Service { return s.events }

func (s *Service) Progress() *progress.Progress { return s.progress }

// Start creates an instance of the definition registered under key and runs
// it to its first wait state or to completion.
func (s *Service) Start(ctx context.Context, key string, values map[string]interface{}) (id string, err error) {
	ctx, span := tracing.StartSpan(ctx, "engine.Start "+key, tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()

	definition, err := s.registry.Resolve(key)
	if err != nil {
		return "", err
	}
	variables, err := state.FromMap(values)
	if err != nil {
		return "", fmt.Errorf("start %s: %w", key, err)
	}
	id = s.ids.Next()
	span.WithAttributes(map[string]string{"definition.key": key, "instance.id": id})
	unlock := s.locks.lock(id)
	defer unlock()

	p := execution.NewProcess(id, key, definition.StartNode, variables, clock.Now())
	r := &run{}
	if err = s.advance(ctx, definition, p, definition.StartNode, r); err != nil {
		return "", err
	}
	if err = s.commit(ctx, nil, p, nil, r); err != nil {
		return "", err
	}
	s.logger.Debug("instance started", "instance", id, "definition", key, "node", p.CurrentNodeID)
	s.publishProcess(ctx, event.TypeInstanceStarted, p, "")
	s.metrics.InstanceStarted(key)
	s.track(ctx, progress.Delta{Started: 1})
	s.notify(ctx, p, nil, r)
	return id, nil
}

// CompleteTask merges values into the task's instance and resumes it. Of two
// concurrent completions of the same task exactly one succeeds; the other
// gets ErrUnknownTask.
func (s *Service) CompleteTask(ctx context.Context, taskID string, values map[string]interface{}) (err error) {
	ctx, span := tracing.StartSpan(ctx, "engine.CompleteTask", tracing.KindInternal)
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"task.id": taskID})

	variables, err := state.FromMap(values)
	if err != nil {
		return fmt.Errorf("complete task %s: %w", taskID, err)
	}
	t, err := s.tasks.Lookup(ctx, taskID)
	if err != nil {
		return err
	}
	unlock := s.locks.lock(t.InstanceID)
	defer unlock()
	if t, err = s.tasks.Lookup(ctx, taskID); err != nil {
		return err
	}
	if actor := policy.FromContext(ctx); !actor.CanComplete(t.CandidateGroup) {
		return fmt.Errorf("%w %s: %s not in %s", ErrNotCandidate, taskID, actor.Actor, t.CandidateGroup)
	}
	definition, err := s.registry.Resolve(t.DefinitionKey)
	if err != nil {
		return err
	}
	before, err := s.instances.Load(ctx, t.InstanceID)
	if err != nil {
		return fmt.Errorf("task %s: instance %s: %w", taskID, t.InstanceID, err)
	}
	node, ok := definition.Node(t.NodeID)
	userTask, isUserTask := node.(*model.UserTask)
	if !ok || !isUserTask || before.CurrentNodeID != t.NodeID || before.IsCompleted() {
		return fmt.Errorf("task %s does not match instance %s at %s", taskID, before.ID, before.CurrentNodeID)
	}

	p := before.Clone()
	p.Variables.Merge(variables)
	r := &run{}
	r.exit(p.ID, userTask, t.CreatedAt, clock.Now(), "")
	if err = s.advance(ctx, definition, p, userTask.Next, r); err != nil {
		return err
	}
	if err = s.commit(ctx, before, p, t, r); err != nil {
		return err
	}
	s.logger.Debug("task completed", "task", taskID, "instance", p.ID, "node", p.CurrentNodeID)
	s.notify(ctx, p, t, r)
	return nil
}

// commit applies a run: the completed task leaves the queue, the next task
// joins it, the instance is saved and the ledger batch recorded. Each step
// is undone when a later one fails.
func (s *Service) commit(ctx context.Context, before, after *execution.Process, done *execution.Task, r *run) (err error) {
	if done != nil {
		if _, err = s.tasks.Remove(ctx, done.ID); err != nil {
			return err
		}
		defer func() {
			if err != nil {
				s.undo("restore task", s.tasks.Push(ctx, done))
			}
		}()
	}
	if r.task != nil {
		if err = s.tasks.Push(ctx, r.task); err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_, rErr := s.tasks.Remove(ctx, r.task.ID)
				s.undo("drop task", rErr)
			}
		}()
	}
	if err = s.instances.Save(ctx, after); err != nil {
		return fmt.Errorf("save instance %s: %w", after.ID, err)
	}
	if err = s.ledger.Record(ctx, r.events...); err != nil {
		if before == nil {
			s.undo("delete instance", s.instances.Delete(ctx, after.ID))
		} else {
			s.undo("restore instance", s.instances.Save(ctx, before))
		}
		return fmt.Errorf("record instance %s: %w", after.ID, err)
	}
	return nil
}

func (s *Service) undo(step string, err error) {
	if err != nil {
		s.logger.Error("rollback failed", "step", step, "error", err)
	}
}

// notify publishes the outcome of a committed run.
func (s *Service) notify(ctx context.Context, p *execution.Process, done *execution.Task, r *run) {
	for _, activity := range r.closed {
		s.publishActivity(ctx, event.TypeActivityCompleted, activity, "")
	}
	for _, failure := range r.failures {
		s.logger.Warn("delegate failed", "instance", p.ID, "node", failure.NodeID, "error", failure.Annotation)
		s.publishActivity(ctx, event.TypeDelegateFailed, failure, failure.Annotation)
		s.metrics.DelegateFailed(failure.NodeID)
		s.track(ctx, progress.Delta{Failed: 1})
	}
	if done != nil {
		s.publishTask(ctx, event.TypeTaskCompleted, done)
		s.metrics.TaskCompleted(done.CandidateGroup, clock.Now().Sub(done.CreatedAt))
		s.track(ctx, progress.Delta{Pending: -1})
	}
	if r.task != nil {
		s.publishTask(ctx, event.TypeTaskCreated, r.task)
		s.metrics.TaskCreated(r.task.CandidateGroup)
		s.track(ctx, progress.Delta{Pending: 1})
	}
	if p.IsCompleted() {
		if _, err := s.tasks.RemoveInstance(ctx, p.ID); err != nil {
			s.logger.Warn("failed to drop tasks", "instance", p.ID, "error", err)
		}
		s.logger.Debug("instance completed", "instance", p.ID, "end", r.endNode)
		s.publishProcess(ctx, event.TypeInstanceCompleted, p, r.endNode)
		s.metrics.InstanceCompleted(p.DefinitionKey, r.endNode, p.FinishedAt.Sub(p.CreatedAt))
		s.track(ctx, progress.Delta{Completed: 1})
	}
}

func (s *Service) track(ctx context.Context, d progress.Delta) {
	s.progress.Update(d)
	progress.UpdateCtx(ctx, d)
}

func (s *Service) publishProcess(ctx context.Context, eventType string, p *execution.Process, nodeID string) {
	ectx := &event.Context{InstanceID: p.ID, DefinitionKey: p.DefinitionKey, NodeID: nodeID, EventType: eventType}
	if p.FinishedAt != nil {
		ectx.TimeTakenMs = p.FinishedAt.Sub(p.CreatedAt).Milliseconds()
	}
	s.publishErr(event.PublisherOf[*execution.Process](s.events).Publish(ctx, event.NewEvent(ectx, p.Clone())))
}

func (s *Service) publishTask(ctx context.Context, eventType string, t *execution.Task) {
	ectx := &event.Context{InstanceID: t.InstanceID, DefinitionKey: t.DefinitionKey, NodeID: t.NodeID, TaskID: t.ID, EventType: eventType}
	s.publishErr(event.PublisherOf[*execution.Task](s.events).Publish(ctx, event.NewEvent(ectx, t.Clone())))
}

func (s *Service) publishActivity(ctx context.Context, eventType string, a *execution.Activity, errText string) {
	ectx := &event.Context{InstanceID: a.InstanceID, NodeID: a.NodeID, EventType: eventType, Error: errText}
	if a.ExitedAt != nil {
		ectx.TimeTakenMs = a.ExitedAt.Sub(a.EnteredAt).Milliseconds()
	}
	s.publishErr(event.PublisherOf[*execution.Activity](s.events).Publish(ctx, event.NewEvent(ectx, a.Clone())))
}

func (s *Service) publishErr(err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Debug("event not published", "error", err)
	}
}

// Instances returns a snapshot of every instance ordered by id.
func (s *Service) Instances(ctx context.Context) ([]*execution.Process, error) {
	processes, err := s.instances.List(ctx)
	if err != nil {
		return nil, err
	}
	execution.SortByID(processes)
	return processes, nil
}

// Instance returns a snapshot of one instance.
func (s *Service) Instance(ctx context.Context, id string) (*execution.Process, error) {
	p, err := s.instances.Load(ctx, id)
	if errors.Is(err, dao.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstance, id)
	}
	return p, err
}

// Variables returns the variables of the instance owning taskID.
func (s *Service) Variables(ctx context.Context, taskID string) (state.Bag, error) {
	t, err := s.tasks.Lookup(ctx, taskID)
	if err != nil {
		return nil, err
	}
	p, err := s.Instance(ctx, t.InstanceID)
	if err != nil {
		return nil, err
	}
	return p.Variables, nil
}

// Close stops event listeners.
func (s *Service) Close() {
	s.events.Close()
	if dropped := s.events.Dropped(); dropped > 0 {
		s.logger.Warn("events dropped", "count", dropped)
	}
}
