package fs

import (
	"context"
	"testing"
	"time"

	"github.com/polytechnice-si/5A-BPM-Demo/model/state"
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	srv, err := New("mem://localhost/bpm/instances-test")
	require.NoError(t, err)

	empty, err := srv.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	running := execution.NewProcess("1", "holidayRequest", "approveTask", state.Bag{
		"employee":     state.String("Alice"),
		"nrOfHolidays": state.Int(5),
	}, now)
	done := execution.NewProcess("2", "holidayRequest", "approveEnd", state.Bag{"approved": state.Bool(true)}, now)
	done.Complete(now.Add(time.Minute))

	require.NoError(t, srv.Save(ctx, running))
	require.NoError(t, srv.Save(ctx, done))

	loaded, err := srv.Load(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, running.Variables, loaded.Variables)
	assert.Equal(t, execution.StatusRunning, loaded.Status)
	assert.True(t, running.CreatedAt.Equal(loaded.CreatedAt))

	all, err := srv.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "1", all[0].ID)

	completed, err := srv.List(ctx, dao.NewParameter(dao.ParamStatus, string(execution.StatusCompleted)))
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "2", completed[0].ID)

	require.NoError(t, srv.Delete(ctx, "2"))
	_, err = srv.Load(ctx, "2")
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.ErrorIs(t, srv.Delete(ctx, "2"), dao.ErrNotFound)

	_, err = New("")
	assert.Error(t, err)
}
