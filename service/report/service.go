// Package report turns the activity ledger into per-instance duration reports.
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/history"
)

// Activity is the time an instance spent on one node
type Activity struct {
	NodeID         string `json:"nodeId" yaml:"nodeId"`
	DurationMillis int64  `json:"durationMillis" yaml:"durationMillis"`
	Annotation     string `json:"annotation,omitempty" yaml:"annotation,omitempty"`
}

// Instance is the report of one process instance.
type Instance struct {
	ID         string      `json:"id" yaml:"id"`
	Status     string      `json:"status,omitempty" yaml:"status,omitempty"`
	Activities []*Activity `json:"activities" yaml:"activities"`
}

// Lister enumerates process instances in id order.
type Lister interface {
	Instances(ctx context.Context) ([]*execution.Process, error)
}

// Service builds reports from instances and the ledger.
type Service struct {
	instances Lister
	ledger    history.Ledger
}

func New(instances Lister, ledger history.Ledger) *Service {
	return &Service{instances: instances, ledger: ledger}
}

// Report returns one entry per instance with its closed activities in
// ledger order.
func (s *Service) Report(ctx context.Context) ([]*Instance, error) {
	processes, err := s.instances.Instances(ctx)
	if err != nil {
		return nil, err
	}
	ret := make([]*Instance, 0, len(processes))
	for _, p := range processes {
		activities, err := s.ledger.Activities(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("report instance %s: %w", p.ID, err)
		}
		instance := &Instance{ID: p.ID, Status: string(p.Status), Activities: make([]*Activity, 0, len(activities))}
		for _, activity := range activities {
			d, err := history.Duration(activity)
			if err != nil {
				return nil, err
			}
			instance.Activities = append(instance.Activities, &Activity{
				NodeID:         activity.NodeID,
				DurationMillis: d.Milliseconds(),
				Annotation:     activity.Annotation,
			})
		}
		ret = append(ret, instance)
	}
	return ret, nil
}

// Print writes reports in the console metrics format.
func Print(w io.Writer, reports []*Instance) error {
	for _, instance := range reports {
		if _, err := fmt.Fprintf(w, "Metrics for process instance %s\n", instance.ID); err != nil {
			return err
		}
		for _, activity := range instance.Activities {
			if _, err := fmt.Fprintf(w, "%s took %d milliseconds\n", activity.NodeID, activity.DurationMillis); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
