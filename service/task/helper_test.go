package task_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/task"
	"github.com/polytechnice-si/5A-BPM-Demo/service/task/memory"
)

func TestAutoDecide(t *testing.T) {
	testCases := []struct {
		description string
		approved    bool
	}{
		{description: "approve all", approved: true},
		{description: "reject all", approved: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := context.Background()
			svc := memory.New()
			now := time.Now()
			require.NoError(t, svc.Push(ctx, &execution.Task{ID: "t1", InstanceID: "1", CandidateGroup: "managers", CreatedAt: now}))
			require.NoError(t, svc.Push(ctx, &execution.Task{ID: "t2", InstanceID: "2", CandidateGroup: "managers", CreatedAt: now}))

			var mux sync.Mutex
			decided := map[string]interface{}{}
			complete := func(ctx context.Context, taskID string, vars map[string]interface{}) error {
				if _, err := svc.Remove(ctx, taskID); err != nil {
					return err
				}
				mux.Lock()
				decided[taskID] = vars["approved"]
				mux.Unlock()
				return nil
			}

			stop := task.AutoDecide(ctx, svc, "managers", "approved", testCase.approved, complete, 5*time.Millisecond)
			assert.Eventually(t, func() bool {
				mux.Lock()
				defer mux.Unlock()
				return len(decided) == 2
			}, time.Second, 5*time.Millisecond)
			stop()

			mux.Lock()
			defer mux.Unlock()
			assert.Equal(t, map[string]interface{}{"t1": testCase.approved, "t2": testCase.approved}, decided)
		})
	}
}

func TestListForGroup(t *testing.T) {
	ctx := context.Background()
	svc := memory.New()
	now := time.Now()
	require.NoError(t, svc.Push(ctx, &execution.Task{ID: "t1", InstanceID: "1", CandidateGroup: "managers", CreatedAt: now}))
	require.NoError(t, svc.Push(ctx, &execution.Task{ID: "t2", InstanceID: "2", CandidateGroup: "managers", CreatedAt: now.Add(time.Second)}))

	all, err := task.ListForGroup(ctx, svc, "managers", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := task.ListForGroup(ctx, svc, "managers", func(t *execution.Task) bool { return t.InstanceID == "2" })
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "t2", filtered[0].ID)
}
