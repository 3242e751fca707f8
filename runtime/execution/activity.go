package execution

import (
	"time"

	"github.com/polytechnice-si/5A-BPM-Demo/model"
)

// Activity is a ledger entry recording how long an instance occupied a node.
type Activity struct {
	InstanceID string     `json:"instanceId"`
	NodeID     string     `json:"nodeId"`
	NodeKind   model.Kind `json:"nodeKind,omitempty"`
	EnteredAt  time.Time  `json:"enteredAt"`
	ExitedAt   *time.Time `json:"exitedAt,omitempty"`
	Annotation string     `json:"annotation,omitempty"`
	// ExitSeq orders entries closed at the same instant.
	ExitSeq int64 `json:"-"`
}

// IsOpen reports whether the node has not been left yet
func (a *Activity) IsOpen() bool {
	return a.ExitedAt == nil
}

// Clone returns a copy of the entry
func (a *Activity) Clone() *Activity {
	if a == nil {
		return nil
	}
	clone := *a
	if a.ExitedAt != nil {
		exitedAt := *a.ExitedAt
		clone.ExitedAt = &exitedAt
	}
	return &clone
}
