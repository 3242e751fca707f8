package bpm

import (
	"context"
	"io"

	"github.com/polytechnice-si/5A-BPM-Demo/model/state"
	"github.com/polytechnice-si/5A-BPM-Demo/policy"
	"github.com/polytechnice-si/5A-BPM-Demo/progress"
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/engine"
	"github.com/polytechnice-si/5A-BPM-Demo/service/history"
	"github.com/polytechnice-si/5A-BPM-Demo/service/report"
	"github.com/polytechnice-si/5A-BPM-Demo/service/task"
)

// Runtime is the actor-facing API: start requests, work the task queue,
// read metrics.
type Runtime struct {
	engine   *engine.Service
	tasks    task.Service
	ledger   history.Ledger
	reporter *report.Service
	policy   *policy.Config
}

// Start creates a process instance and returns its id.
func (r *Runtime) Start(ctx context.Context, key string, variables map[string]interface{}) (string, error) {
	return r.engine.Start(ctx, key, variables)
}

// CompleteTask completes a pending task. When ctx carries no policy the
// configured one applies.
func (r *Runtime) CompleteTask(ctx context.Context, taskID string, variables map[string]interface{}) error {
	if policy.FromContext(ctx) == nil && r.policy != nil {
		ctx = policy.WithPolicy(ctx, policy.FromConfig(r.policy))
	}
	return r.engine.CompleteTask(ctx, taskID, variables)
}

// TasksForGroup lists pending tasks of group, oldest first.
func (r *Runtime) TasksForGroup(ctx context.Context, group string) ([]*execution.Task, error) {
	return r.tasks.ForGroup(ctx, group)
}

// Variables returns the variables of the instance owning taskID.
func (r *Runtime) Variables(ctx context.Context, taskID string) (state.Bag, error) {
	return r.engine.Variables(ctx, taskID)
}

// Instances returns every instance ordered by id.
func (r *Runtime) Instances(ctx context.Context) ([]*execution.Process, error) {
	return r.engine.Instances(ctx)
}

// Instance returns a single instance snapshot.
func (r *Runtime) Instance(ctx context.Context, id string) (*execution.Process, error) {
	return r.engine.Instance(ctx, id)
}

// Activities returns the closed ledger entries of an instance.
func (r *Runtime) Activities(ctx context.Context, instanceID string) ([]*execution.Activity, error) {
	return r.ledger.Activities(ctx, instanceID)
}

func (r *Runtime) Report(ctx context.Context) ([]*report.Instance, error) {
	return r.reporter.Report(ctx)
}

// PrintReport writes the metrics of every instance to w.
func (r *Runtime) PrintReport(ctx context.Context, w io.Writer) error {
	reports, err := r.Report(ctx)
	if err != nil {
		return err
	}
	return report.Print(w, reports)
}

// Progress returns the engine counters.
func (r *Runtime) Progress() progress.Snapshot {
	return r.engine.Progress().Snapshot()
}

func (r *Runtime) Engine() *engine.Service {
	return r.engine
}

func (r *Runtime) Tasks() task.Service {
	return r.tasks
}
