package execution

import (
	"sort"
	"time"

	"github.com/polytechnice-si/5A-BPM-Demo/model/state"
)

// Process represents a process instance
type Process struct {
	ID            string     `json:"id"`
	DefinitionKey string     `json:"definitionKey"`
	CurrentNodeID string     `json:"currentNodeId"`
	Variables     state.Bag  `json:"variables"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	FinishedAt    *time.Time `json:"finishedAt,omitempty"`
}

// NewProcess creates a running instance positioned at startNode.
func NewProcess(id, definitionKey, startNode string, variables state.Bag, now time.Time) *Process {
	if variables == nil {
		variables = state.Bag{}
	}
	return &Process{
		ID:            id,
		DefinitionKey: definitionKey,
		CurrentNodeID: startNode,
		Variables:     variables,
		Status:        StatusRunning,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// MoveTo positions the token at nodeID
func (p *Process) MoveTo(nodeID string, now time.Time) {
	p.CurrentNodeID = nodeID
	p.UpdatedAt = now
}

// Complete marks the instance as completed
func (p *Process) Complete(now time.Time) {
	p.Status = StatusCompleted
	p.UpdatedAt = now
	p.FinishedAt = &now
}

// IsCompleted reports whether the instance reached an end node
func (p *Process) IsCompleted() bool {
	return p.Status.IsTerminal()
}

// Clone creates a deep copy so callers can mutate it without affecting the
// stored instance.
func (p *Process) Clone() *Process {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Variables = p.Variables.Clone()
	if p.FinishedAt != nil {
		finishedAt := *p.FinishedAt
		clone.FinishedAt = &finishedAt
	}
	return &clone
}

// SortByID orders instances by their numeric identifier.
func SortByID(processes []*Process) {
	sort.Slice(processes, func(i, j int) bool {
		return LessID(processes[i].ID, processes[j].ID)
	})
}

// LessID compares decimal instance ids numerically.
func LessID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
