package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/polytechnice-si/5A-BPM-Demo/model"
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
)

var (
	// ErrNoOpenEntry is returned when exiting a node that was never entered.
	ErrNoOpenEntry = errors.New("no open ledger entry")
	// ErrOpenEntry is returned when measuring an entry that has not exited.
	ErrOpenEntry = errors.New("ledger entry still open")
	// ErrClockSkew is returned when an entry exited before it was entered.
	ErrClockSkew = errors.New("clock skew")
)

// Op identifies a ledger event
type Op int

const (
	OpEnter Op = iota + 1
	OpExit
)

// Event is a single ledger mutation, applied in batches by Record.
type Event struct {
	Op         Op
	InstanceID string
	NodeID     string
	NodeKind   model.Kind
	At         time.Time
	// Annotation is attached to the entry closed by an OpExit event.
	Annotation string
}

func Enter(instanceID, nodeID string, kind model.Kind, at time.Time) Event {
	return Event{Op: OpEnter, InstanceID: instanceID, NodeID: nodeID, NodeKind: kind, At: at}
}

func Exit(instanceID, nodeID string, at time.Time) Event {
	return Event{Op: OpExit, InstanceID: instanceID, NodeID: nodeID, At: at}
}

// Ledger records activity timing per process instance.
type Ledger interface {
	RecordEnter(ctx context.Context, instanceID, nodeID string, at time.Time) error
	RecordExit(ctx context.Context, instanceID, nodeID string, at time.Time) error
	// Record applies events in order; either all of them take effect or none.
	Record(ctx context.Context, events ...Event) error
	// Activities returns closed entries ordered by exit time.
	Activities(ctx context.Context, instanceID string) ([]*execution.Activity, error)
	Instances(ctx context.Context) ([]string, error)
}

// Duration returns how long the entry's node was occupied.
func Duration(a *execution.Activity) (time.Duration, error) {
	if a.IsOpen() {
		return 0, fmt.Errorf("%w: %s/%s", ErrOpenEntry, a.InstanceID, a.NodeID)
	}
	d := a.ExitedAt.Sub(a.EnteredAt)
	if d < 0 {
		return 0, fmt.Errorf("%w: %s/%s exited %v before entering", ErrClockSkew, a.InstanceID, a.NodeID, -d)
	}
	return d, nil
}
