package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/polytechnice-si/5A-BPM-Demo/internal/clock"
	"github.com/polytechnice-si/5A-BPM-Demo/internal/idgen"
	"github.com/polytechnice-si/5A-BPM-Demo/model"
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/history"
	"github.com/polytechnice-si/5A-BPM-Demo/tracing"
)

// run collects the changes of one engine call until they are committed.
type run struct {
	events   []history.Event
	closed   []*execution.Activity
	failures []*execution.Activity
	task     *execution.Task
	endNode  string
}

func (r *run) enter(instanceID string, n model.Node, at time.Time) {
	r.events = append(r.events, history.Enter(instanceID, n.ID(), n.Kind(), at))
}

func (r *run) exit(instanceID string, n model.Node, enteredAt, at time.Time, annotation string) *execution.Activity {
	e := history.Exit(instanceID, n.ID(), at)
	e.Annotation = annotation
	r.events = append(r.events, e)
	exitedAt := at
	activity := &execution.Activity{
		InstanceID: instanceID,
		NodeID:     n.ID(),
		NodeKind:   n.Kind(),
		EnteredAt:  enteredAt,
		ExitedAt:   &exitedAt,
		Annotation: annotation,
	}
	r.closed = append(r.closed, activity)
	return activity
}

// advance moves p from nodeID until it waits at a user task or completes.
func (s *Service) advance(ctx context.Context, definition *model.Definition, p *execution.Process, nodeID string, r *run) error {
	for steps := 0; ; steps++ {
		if steps >= s.config.MaxSteps {
			return fmt.Errorf("%w: instance %s after %d nodes", ErrStepLimit, p.ID, steps)
		}
		node, ok := definition.Node(nodeID)
		if !ok {
			return fmt.Errorf("%w %q: node %s not found", model.ErrInvalidDefinition, definition.Key, nodeID)
		}
		enteredAt := clock.Now()
		p.MoveTo(node.ID(), enteredAt)
		r.enter(p.ID, node, enteredAt)

		switch n := node.(type) {
		case *model.Start:
			r.exit(p.ID, n, enteredAt, clock.Now(), "")
			nodeID = n.Next
		case *model.ServiceTask:
			err := s.invoke(ctx, p, n)
			annotation := ""
			if err != nil {
				annotation = err.Error()
			}
			activity := r.exit(p.ID, n, enteredAt, clock.Now(), annotation)
			if err != nil {
				r.failures = append(r.failures, activity)
			}
			nodeID = n.Next
		case *model.Gateway:
			next, err := n.Branch(p.Variables)
			if err != nil {
				return fmt.Errorf("instance %s gateway %s: %w", p.ID, n.NodeID, err)
			}
			r.exit(p.ID, n, enteredAt, clock.Now(), "")
			nodeID = next
		case *model.UserTask:
			r.task = &execution.Task{
				ID:             idgen.New(),
				InstanceID:     p.ID,
				DefinitionKey:  p.DefinitionKey,
				NodeID:         n.NodeID,
				Name:           n.Name,
				CandidateGroup: n.CandidateGroup,
				CreatedAt:      enteredAt,
			}
			return nil
		case *model.End:
			exitedAt := clock.Now()
			r.exit(p.ID, n, enteredAt, exitedAt, "")
			p.Complete(exitedAt)
			r.endNode = n.NodeID
			return nil
		default:
			return fmt.Errorf("%w %q: unsupported node %T", model.ErrInvalidDefinition, definition.Key, node)
		}
	}
}

// invoke runs the delegate of n against a copy of the instance variables.
func (s *Service) invoke(ctx context.Context, p *execution.Process, n *model.ServiceTask) (err error) {
	ctx, span := tracing.StartSpan(ctx, "engine.delegate "+n.NodeID, tracing.KindInternal)
	span.WithAttributes(map[string]string{"instance.id": p.ID, "delegate": n.Delegate.Name()})
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			err = fmt.Errorf("%w %s: %w", ErrDelegateFailure, n.Delegate.Name(), err)
		}
		tracing.EndSpan(span, err)
	}()
	return n.Delegate.Execute(ctx, p.Variables.Clone())
}
