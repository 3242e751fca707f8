package bpm

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/polytechnice-si/5A-BPM-Demo/internal/clock"
	"github.com/polytechnice-si/5A-BPM-Demo/model/holiday"
	"github.com/polytechnice-si/5A-BPM-Demo/policy"
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
)

func TestService_HolidayRequest(t *testing.T) {
	testCases := []struct {
		description string
		approved    bool
		expectMail  string
		expectEnd   string
	}{
		{description: "approved", approved: true, expectEnd: holiday.NodeApproveEnd},
		{description: "rejected", approved: false, expectMail: "Sending rejection email for Alice\n", expectEnd: holiday.NodeRejectEnd},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := context.Background()
			mail := &bytes.Buffer{}
			srv, err := New(WithMailWriter(mail))
			require.NoError(t, err)
			defer srv.Shutdown(ctx)
			rt := srv.Runtime()

			id, err := rt.Start(ctx, holiday.Key, holiday.Variables("Alice", 5, "trip"))
			require.NoError(t, err)
			tasks, err := rt.TasksForGroup(ctx, holiday.GroupManagers)
			require.NoError(t, err)
			require.Len(t, tasks, 1)
			assert.Equal(t, id, tasks[0].InstanceID)

			vars, err := rt.Variables(ctx, tasks[0].ID)
			require.NoError(t, err)
			employee, _ := vars.String(holiday.VarEmployee)
			assert.Equal(t, "Alice", employee)

			require.NoError(t, rt.CompleteTask(ctx, tasks[0].ID, map[string]interface{}{holiday.VarApproved: testCase.approved}))
			instance, err := rt.Instance(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, execution.StatusCompleted, instance.Status)
			assert.Equal(t, testCase.expectEnd, instance.CurrentNodeID)
			assert.Equal(t, testCase.expectMail, mail.String())
			assert.Equal(t, 1, rt.Progress().CompletedInstances)
		})
	}
}

func TestService_PrintReport(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	previous := clock.NowFunc
	clock.NowFunc = clock.Stepper(base, time.Millisecond)
	defer func() { clock.NowFunc = previous }()

	srv, err := New(WithMailWriter(&bytes.Buffer{}))
	require.NoError(t, err)
	defer srv.Shutdown(ctx)
	rt := srv.Runtime()

	_, err = rt.Start(ctx, holiday.Key, holiday.Variables("Alice", 5, "trip"))
	require.NoError(t, err)
	_, err = rt.Start(ctx, holiday.Key, holiday.Variables("Bob", 2, "rest"))
	require.NoError(t, err)
	tasks, _ := rt.TasksForGroup(ctx, holiday.GroupManagers)
	require.Len(t, tasks, 2)
	require.NoError(t, rt.CompleteTask(ctx, tasks[0].ID, map[string]interface{}{holiday.VarApproved: false}))

	reports, err := rt.Report(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	var nodes []string
	for _, activity := range reports[0].Activities {
		nodes = append(nodes, activity.NodeID)
		assert.GreaterOrEqual(t, activity.DurationMillis, int64(0))
	}
	assert.Equal(t, []string{holiday.NodeStart, holiday.NodeApproval, holiday.NodeDecision, holiday.NodeRejectionMail, holiday.NodeRejectEnd}, nodes)
	require.Len(t, reports[1].Activities, 1)

	out := &bytes.Buffer{}
	require.NoError(t, rt.PrintReport(ctx, out))
	assert.True(t, strings.HasPrefix(out.String(), "Metrics for process instance 1\nstartEvent took "))
	assert.Contains(t, out.String(), "Metrics for process instance 2\n")
	assert.Contains(t, out.String(), "sendRejectionMail took ")
}

func TestService_ConfiguredPolicy(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Policy = &policy.Config{Mode: policy.ModeEnforce, Actor: "fozzie", Groups: []string{"employees"}}
	srv, err := New(WithConfig(cfg), WithMailWriter(&bytes.Buffer{}))
	require.NoError(t, err)
	defer srv.Shutdown(ctx)
	rt := srv.Runtime()

	_, err = rt.Start(ctx, holiday.Key, holiday.Variables("Alice", 5, "trip"))
	require.NoError(t, err)
	tasks, _ := rt.TasksForGroup(ctx, holiday.GroupManagers)
	require.Len(t, tasks, 1)
	assert.ErrorIs(t, rt.CompleteTask(ctx, tasks[0].ID, map[string]interface{}{holiday.VarApproved: true}), ErrNotCandidate)

	manager := policy.WithPolicy(ctx, &policy.Policy{Mode: policy.ModeEnforce, Actor: "kermit", Groups: []string{"managers"}})
	assert.NoError(t, rt.CompleteTask(manager, tasks[0].ID, map[string]interface{}{holiday.VarApproved: true}))
}

func TestService_FSStoreAndMetrics(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Store = StoreConfig{Kind: StoreFS, BaseURL: "mem://localhost/bpm/facade-instances"}
	cfg.Metrics.Enabled = true
	srv, err := New(WithConfig(cfg), WithMailWriter(&bytes.Buffer{}))
	require.NoError(t, err)
	defer srv.Shutdown(ctx)
	rt := srv.Runtime()

	id, err := rt.Start(ctx, holiday.Key, holiday.Variables("Alice", 5, "trip"))
	require.NoError(t, err)
	instance, err := rt.Instance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, holiday.NodeApproval, instance.CurrentNodeID)
	require.NotNil(t, srv.Collector())
	assert.Nil(t, srv.Exporter())

	_, err = rt.Start(ctx, "doesNotExist", nil)
	assert.ErrorIs(t, err, ErrUnknownDefinition)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Kind = "redis"
	_, err := New(WithConfig(cfg))
	assert.Error(t, err)
}

func TestService_FSStoreRestart(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Store = StoreConfig{Kind: StoreFS, BaseURL: "mem://localhost/bpm/restart-instances"}
	_ = afs.New().Delete(ctx, cfg.Store.BaseURL)

	first, err := New(WithConfig(cfg), WithMailWriter(&bytes.Buffer{}))
	require.NoError(t, err)
	aliceID, err := first.Runtime().Start(ctx, holiday.Key, holiday.Variables("Alice", 5, "trip"))
	require.NoError(t, err)
	require.NoError(t, first.Shutdown(ctx))

	mail := &bytes.Buffer{}
	second, err := New(WithConfig(cfg), WithMailWriter(mail))
	require.NoError(t, err)
	defer second.Shutdown(ctx)
	rt := second.Runtime()

	tasks, err := rt.TasksForGroup(ctx, holiday.GroupManagers)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, aliceID, tasks[0].InstanceID)

	bobID, err := rt.Start(ctx, holiday.Key, holiday.Variables("Bob", 2, "rest"))
	require.NoError(t, err)
	assert.NotEqual(t, aliceID, bobID)
	alice, err := rt.Instance(ctx, aliceID)
	require.NoError(t, err)
	employee, _ := alice.Variables.String(holiday.VarEmployee)
	assert.Equal(t, "Alice", employee)

	require.NoError(t, rt.CompleteTask(ctx, tasks[0].ID, map[string]interface{}{holiday.VarApproved: false}))
	assert.Equal(t, "Sending rejection email for Alice\n", mail.String())
	alice, err = rt.Instance(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, execution.StatusCompleted, alice.Status)
}
