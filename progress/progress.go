package progress

import (
	"context"
	"sync"
	"time"
)

// Delta is an incremental counter change emitted by the engine. Fields are
// signed so a single delta can both open and close work.
type Delta struct {
	Started   int
	Completed int
	Pending   int
	Failed    int
}

// Progress keeps aggregated counters. It is safe for concurrent use.
type Progress struct {
	Name      string
	StartedAt time.Time

	StartedInstances   int
	CompletedInstances int
	PendingTasks       int
	FailedDelegates    int

	mux      sync.Mutex
	onChange func(Snapshot)
}

// Snapshot is a read-only copy of the counters
type Snapshot struct {
	Name               string
	StartedAt          time.Time
	StartedInstances   int
	CompletedInstances int
	PendingTasks       int
	FailedDelegates    int
}

// Running returns the number of instances not yet completed.
func (s Snapshot) Running() int {
	return s.StartedInstances - s.CompletedInstances
}

// New creates a tracker; onChange may be nil.
func New(name string, onChange func(Snapshot)) *Progress {
	return &Progress{Name: name, StartedAt: time.Now(), onChange: onChange}
}

// Update applies d and invokes the OnChange callback outside the lock.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.StartedInstances += d.Started
	p.CompletedInstances += d.Completed
	p.PendingTasks += d.Pending
	p.FailedDelegates += d.Failed
	snapshot := p.snapshot()
	cb := p.onChange
	p.mux.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

func (p *Progress) snapshot() Snapshot {
	return Snapshot{
		Name:               p.Name,
		StartedAt:          p.StartedAt,
		StartedInstances:   p.StartedInstances,
		CompletedInstances: p.CompletedInstances,
		PendingTasks:       p.PendingTasks,
		FailedDelegates:    p.FailedDelegates,
	}
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() Snapshot {
	if p == nil {
		return Snapshot{}
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.snapshot()
}

// OnChange replaces the update callback. Passing nil disables it.
func (p *Progress) OnChange(cb func(Snapshot)) {
	if p == nil {
		return
	}
	p.mux.Lock()
	p.onChange = cb
	p.mux.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithTracker embeds p in ctx.
func WithTracker(ctx context.Context, p *Progress) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, trackerKey, p)
}

// FromContext extracts the tracker carried by ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies d to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
