package execution

import "time"

// Task is a pending user task awaiting a member of CandidateGroup.
type Task struct {
	ID             string    `json:"id"`
	InstanceID     string    `json:"instanceId"`
	DefinitionKey  string    `json:"definitionKey"`
	NodeID         string    `json:"nodeId"`
	Name           string    `json:"name,omitempty"`
	CandidateGroup string    `json:"candidateGroup"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Clone returns a copy of the task
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

// Before reports whether t is listed ahead of other: creation time ascending,
// ties broken by id.
func (t *Task) Before(other *Task) bool {
	if !t.CreatedAt.Equal(other.CreatedAt) {
		return t.CreatedAt.Before(other.CreatedAt)
	}
	return t.ID < other.ID
}
