package bpm

import (
	"github.com/polytechnice-si/5A-BPM-Demo/model"
	"github.com/polytechnice-si/5A-BPM-Demo/model/state"
	"github.com/polytechnice-si/5A-BPM-Demo/service/engine"
	"github.com/polytechnice-si/5A-BPM-Demo/service/history"
	"github.com/polytechnice-si/5A-BPM-Demo/service/registry"
)

// Errors returned by the facade, comparable with errors.Is.
var (
	ErrDuplicateKey      = registry.ErrDuplicateKey
	ErrUnknownDefinition = registry.ErrUnknownDefinition
	ErrInvalidDefinition = model.ErrInvalidDefinition
	ErrUnknownTask       = engine.ErrUnknownTask
	ErrUnknownInstance   = engine.ErrUnknownInstance
	ErrMissingVariable   = state.ErrMissingVariable
	ErrUnsupportedType   = state.ErrUnsupportedType
	ErrNoOpenEntry       = history.ErrNoOpenEntry
	ErrClockSkew         = history.ErrClockSkew
	ErrDelegateFailure   = engine.ErrDelegateFailure
	ErrStepLimit         = engine.ErrStepLimit
	ErrNotCandidate      = engine.ErrNotCandidate
)
