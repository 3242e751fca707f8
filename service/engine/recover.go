package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/polytechnice-si/5A-BPM-Demo/internal/idgen"
	"github.com/polytechnice-si/5A-BPM-Demo/model"
	"github.com/polytechnice-si/5A-BPM-Demo/progress"
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/event"
	"github.com/polytechnice-si/5A-BPM-Demo/service/history"
)

// Recover picks up instances already present in the instance store. New ids
// continue after the highest stored one and every running instance gets its
// task token and open ledger entry back. Ledger entries of nodes visited
// before the restart are not restored.
func (s *Service) Recover(ctx context.Context) error {
	processes, err := s.instances.List(ctx)
	if err != nil {
		return fmt.Errorf("recover instances: %w", err)
	}
	for _, p := range processes {
		if n, err := strconv.ParseInt(p.ID, 10, 64); err == nil {
			s.ids.Seed(n)
		}
	}
	for _, p := range processes {
		if p.IsCompleted() {
			continue
		}
		if err = s.resume(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) resume(ctx context.Context, p *execution.Process) error {
	unlock := s.locks.lock(p.ID)
	defer unlock()

	definition, err := s.registry.Resolve(p.DefinitionKey)
	if err != nil {
		return fmt.Errorf("recover instance %s: %w", p.ID, err)
	}
	node, _ := definition.Node(p.CurrentNodeID)
	userTask, ok := node.(*model.UserTask)
	if !ok {
		return fmt.Errorf("recover instance %s: %w: node %q is not a user task", p.ID, model.ErrInvalidDefinition, p.CurrentNodeID)
	}
	pending, err := s.tasks.ForGroup(ctx, userTask.CandidateGroup)
	if err != nil {
		return err
	}
	for _, t := range pending {
		if t.InstanceID == p.ID {
			return nil
		}
	}

	t := &execution.Task{
		ID:             idgen.New(),
		InstanceID:     p.ID,
		DefinitionKey:  p.DefinitionKey,
		NodeID:         userTask.NodeID,
		Name:           userTask.Name,
		CandidateGroup: userTask.CandidateGroup,
		CreatedAt:      p.UpdatedAt,
	}
	if err = s.tasks.Push(ctx, t); err != nil {
		return fmt.Errorf("recover instance %s: %w", p.ID, err)
	}
	if err = s.ledger.Record(ctx, history.Enter(p.ID, userTask.NodeID, userTask.Kind(), p.UpdatedAt)); err != nil {
		_, rErr := s.tasks.Remove(ctx, t.ID)
		s.undo("drop task", rErr)
		return fmt.Errorf("recover instance %s: %w", p.ID, err)
	}
	s.logger.Info("instance resumed", "instance", p.ID, "node", p.CurrentNodeID, "task", t.ID)
	s.publishTask(ctx, event.TypeTaskCreated, t)
	s.metrics.InstanceStarted(p.DefinitionKey)
	s.metrics.TaskCreated(t.CandidateGroup)
	s.track(ctx, progress.Delta{Started: 1, Pending: 1})
	return nil
}
