package engine

import (
	"errors"

	"github.com/polytechnice-si/5A-BPM-Demo/service/task"
)

var (
	// ErrDelegateFailure wraps errors raised by service task delegates. It is
	// recorded on the ledger entry and never returned to callers.
	ErrDelegateFailure = errors.New("delegate failure")
	// ErrStepLimit is returned when a run visits more nodes than Config.MaxSteps.
	ErrStepLimit = errors.New("step limit exceeded")
	// ErrNotCandidate is returned when the acting policy excludes the task's group.
	ErrNotCandidate = errors.New("actor is not a candidate for task")
	// ErrUnknownInstance is returned when no instance has the given id.
	ErrUnknownInstance = errors.New("unknown process instance")
	// ErrUnknownTask is returned when a task id is not pending.
	ErrUnknownTask = task.ErrUnknownTask
)
