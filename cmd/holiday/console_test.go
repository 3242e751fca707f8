package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bpm "github.com/polytechnice-si/5A-BPM-Demo"
)

func TestConsole_Run(t *testing.T) {
	testCases := []struct {
		description string
		input       []string
		expect      []string
		notExpect   []string
	}{
		{
			description: "manager with empty queue",
			input:       []string{"MANAGER", "STOP"},
			expect:      []string{"Acting as a team MANAGER", "Nothing to do!", "System Metrics"},
		},
		{
			description: "request approved",
			input:       []string{"EMPLOYEE", "Alice", "5", "trip", "MANAGER", "1", "y", "STOP"},
			expect: []string{
				"Process started, #1",
				"You have 1 tasks:",
				"1) Approve or reject request #1",
				"Alice wants 5 of holidays. Do you approve this? (y/n)",
				"Metrics for process instance 1",
				"approveEnd took ",
			},
			notExpect: []string{"Sending rejection email"},
		},
		{
			description: "request rejected",
			input:       []string{"EMPLOYEE", "Bob", "3", "rest", "MANAGER", "1", "n"},
			expect:      []string{"Process started, #1", "sendRejectionMail took ", "rejectEnd took "},
		},
		{
			description: "invalid input is reported",
			input:       []string{"EMPLOYEE", "Carol", "many", "MANAGER", "STOP"},
			expect:      []string{`Error: invalid number of holidays "many"`, "Nothing to do!"},
		},
		{
			description: "unknown role ends the session",
			input:       []string{"EMPLOYEE", "Dave", "1", "nap", "CEO", "MANAGER"},
			expect:      []string{"Process started, #1", "System Metrics", "Metrics for process instance 1"},
			notExpect:   []string{"Acting as a team MANAGER"},
		},
		{
			description: "role names are case sensitive",
			input:       []string{"manager", "MANAGER"},
			expect:      []string{"System Metrics"},
			notExpect:   []string{"Acting as a team MANAGER"},
		},
	}

	for _, testCase := range testCases {
		srv, err := bpm.New(bpm.WithMailWriter(&bytes.Buffer{}))
		require.NoError(t, err, testCase.description)
		out := &bytes.Buffer{}
		in := strings.NewReader(strings.Join(testCase.input, "\n") + "\n")
		require.NoError(t, newConsole(srv.Runtime(), in, out).run(context.Background()), testCase.description)
		for _, expect := range testCase.expect {
			assert.Contains(t, out.String(), expect, testCase.description)
		}
		for _, notExpect := range testCase.notExpect {
			assert.NotContains(t, out.String(), notExpect, testCase.description)
		}
		_ = srv.Shutdown(context.Background())
	}
}

func TestConsole_RunCancelled(t *testing.T) {
	srv, err := bpm.New(bpm.WithMailWriter(&bytes.Buffer{}))
	require.NoError(t, err)
	defer srv.Shutdown(context.Background())

	in, writer := io.Pipe()
	defer writer.Close()
	out := &bytes.Buffer{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newConsole(srv.Runtime(), in, out).run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "console did not stop after cancellation")
	}
	assert.Contains(t, out.String(), "System Metrics")
}
