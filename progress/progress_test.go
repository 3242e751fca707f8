package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestProgress_Update(t *testing.T) {
	var last Snapshot
	calls := 0
	p := New("holidayRequest", func(s Snapshot) {
		last = s
		calls++
	})
	p.Update(Delta{Started: 1, Pending: 1})
	p.Update(Delta{Pending: -1, Completed: 1})
	p.Update(Delta{Failed: 1})

	snapshot := p.Snapshot()
	assert.Equal(t, 1, snapshot.StartedInstances)
	assert.Equal(t, 1, snapshot.CompletedInstances)
	assert.Equal(t, 0, snapshot.PendingTasks)
	assert.Equal(t, 1, snapshot.FailedDelegates)
	assert.Equal(t, 0, snapshot.Running())
	assert.Equal(t, 3, calls)
	assert.Equal(t, snapshot, last)
}

func TestProgress_Concurrent(t *testing.T) {
	p := New("holidayRequest", nil)
	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			p.Update(Delta{Started: 1, Pending: 1})
			return nil
		})
	}
	assert.NoError(t, g.Wait())
	assert.Equal(t, 50, p.Snapshot().Running())
	assert.Equal(t, 50, p.Snapshot().PendingTasks)
}

func TestContext(t *testing.T) {
	var nilTracker *Progress
	assert.NotPanics(t, func() { nilTracker.Update(Delta{Started: 1}) })

	UpdateCtx(context.Background(), Delta{Started: 1})
	p := New("holidayRequest", nil)
	ctx := WithTracker(context.Background(), p)
	UpdateCtx(ctx, Delta{Started: 2})
	actual, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, 2, actual.Snapshot().StartedInstances)
}
