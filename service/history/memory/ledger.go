package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/history"
)

type ledger struct {
	mux     sync.RWMutex
	entries map[string][]*execution.Activity
	exitSeq int64
}

// New creates an in-memory ledger
func New() history.Ledger {
	return &ledger{entries: make(map[string][]*execution.Activity)}
}

func (l *ledger) RecordEnter(ctx context.Context, instanceID, nodeID string, at time.Time) error {
	return l.Record(ctx, history.Enter(instanceID, nodeID, "", at))
}

func (l *ledger) RecordExit(ctx context.Context, instanceID, nodeID string, at time.Time) error {
	return l.Record(ctx, history.Exit(instanceID, nodeID, at))
}

func (l *ledger) Record(_ context.Context, events ...history.Event) error {
	if len(events) == 0 {
		return nil
	}
	l.mux.Lock()
	defer l.mux.Unlock()

	staged := map[string][]*execution.Activity{}
	seq := l.exitSeq
	for _, event := range events {
		entries, ok := staged[event.InstanceID]
		if !ok {
			entries = cloneAll(l.entries[event.InstanceID])
		}
		switch event.Op {
		case history.OpEnter:
			entries = append(entries, &execution.Activity{
				InstanceID: event.InstanceID,
				NodeID:     event.NodeID,
				NodeKind:   event.NodeKind,
				EnteredAt:  event.At,
			})
		case history.OpExit:
			open := lastOpen(entries, event.NodeID)
			if open == nil {
				return fmt.Errorf("%w: instance %s node %s", history.ErrNoOpenEntry, event.InstanceID, event.NodeID)
			}
			exitedAt := event.At
			seq++
			open.ExitedAt = &exitedAt
			open.ExitSeq = seq
			open.Annotation = event.Annotation
		default:
			return fmt.Errorf("unsupported ledger op: %v", event.Op)
		}
		staged[event.InstanceID] = entries
	}
	for instanceID, entries := range staged {
		l.entries[instanceID] = entries
	}
	l.exitSeq = seq
	return nil
}

func (l *ledger) Activities(_ context.Context, instanceID string) ([]*execution.Activity, error) {
	l.mux.RLock()
	defer l.mux.RUnlock()
	var out []*execution.Activity
	for _, entry := range l.entries[instanceID] {
		if entry.IsOpen() {
			continue
		}
		out = append(out, entry.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.ExitedAt.Equal(*b.ExitedAt) {
			return a.ExitedAt.Before(*b.ExitedAt)
		}
		return a.ExitSeq < b.ExitSeq
	})
	return out, nil
}

func (l *ledger) Instances(_ context.Context) ([]string, error) {
	l.mux.RLock()
	defer l.mux.RUnlock()
	out := make([]string, 0, len(l.entries))
	for instanceID := range l.entries {
		out = append(out, instanceID)
	}
	sort.Slice(out, func(i, j int) bool { return execution.LessID(out[i], out[j]) })
	return out, nil
}

func lastOpen(entries []*execution.Activity, nodeID string) *execution.Activity {
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].NodeID == nodeID && entries[i].IsOpen() {
			return entries[i]
		}
	}
	return nil
}

func cloneAll(entries []*execution.Activity) []*execution.Activity {
	out := make([]*execution.Activity, len(entries))
	for i, entry := range entries {
		out[i] = entry.Clone()
	}
	return out
}
