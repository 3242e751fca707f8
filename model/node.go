package model

import (
	"context"

	"github.com/polytechnice-si/5A-BPM-Demo/model/state"
)

// Kind identifies a node variant
type Kind string

const (
	KindStart       Kind = "start"
	KindUserTask    Kind = "userTask"
	KindGateway     Kind = "gateway"
	KindServiceTask Kind = "serviceTask"
	KindEnd         Kind = "end"
)

// IsWaitState reports whether the engine stops at nodes of this kind until an
// external actor resumes the instance.
func (k Kind) IsWaitState() bool {
	return k == KindUserTask
}

type (
	// Node is the closed set of definition nodes. Only types declared in this
	// package implement it.
	Node interface {
		ID() string
		Kind() Kind
		// Outgoing lists every edge target, used for validation.
		Outgoing() []string
		node()
	}

	// Delegate is the side effect bound to a ServiceTask.
	Delegate interface {
		Name() string
		Execute(ctx context.Context, variables state.Reader) error
	}

	// Start is the entry point of a definition.
	Start struct {
		NodeID string `json:"id" yaml:"id"`
		Next   string `json:"next" yaml:"next"`
	}

	// UserTask waits for a member of CandidateGroup to complete it.
	UserTask struct {
		NodeID         string `json:"id" yaml:"id"`
		Name           string `json:"name,omitempty" yaml:"name,omitempty"`
		CandidateGroup string `json:"candidateGroup" yaml:"candidateGroup"`
		Next           string `json:"next" yaml:"next"`
	}

	// Gateway routes on the boolean process variable Variable.
	Gateway struct {
		NodeID    string `json:"id" yaml:"id"`
		Variable  string `json:"variable" yaml:"variable"`
		WhenTrue  string `json:"whenTrue" yaml:"whenTrue"`
		WhenFalse string `json:"whenFalse" yaml:"whenFalse"`
	}

	// ServiceTask runs Delegate synchronously and moves on.
	ServiceTask struct {
		NodeID   string   `json:"id" yaml:"id"`
		Delegate Delegate `json:"-" yaml:"-"`
		Next     string   `json:"next" yaml:"next"`
	}

	// End completes the instance.
	End struct {
		NodeID string `json:"id" yaml:"id"`
	}
)

func (n *Start) ID() string         { return n.NodeID }
func (n *Start) Kind() Kind         { return KindStart }
func (n *Start) Outgoing() []string { return []string{n.Next} }
func (n *Start) node()              {}

func (n *UserTask) ID() string         { return n.NodeID }
func (n *UserTask) Kind() Kind         { return KindUserTask }
func (n *UserTask) Outgoing() []string { return []string{n.Next} }
func (n *UserTask) node()              {}

func (n *Gateway) ID() string         { return n.NodeID }
func (n *Gateway) Kind() Kind         { return KindGateway }
func (n *Gateway) Outgoing() []string { return []string{n.WhenTrue, n.WhenFalse} }
func (n *Gateway) node()              {}

// Branch returns the edge selected by the gateway variable. It fails with
// state.ErrMissingVariable when the variable is absent or not a boolean.
func (n *Gateway) Branch(variables state.Reader) (string, error) {
	flag, err := variables.Bool(n.Variable)
	if err != nil {
		return "", err
	}
	if flag {
		return n.WhenTrue, nil
	}
	return n.WhenFalse, nil
}

func (n *ServiceTask) ID() string         { return n.NodeID }
func (n *ServiceTask) Kind() Kind         { return KindServiceTask }
func (n *ServiceTask) Outgoing() []string { return []string{n.Next} }
func (n *ServiceTask) node()              {}

func (n *End) ID() string         { return n.NodeID }
func (n *End) Kind() Kind         { return KindEnd }
func (n *End) Outgoing() []string { return nil }
func (n *End) node()              {}

// DelegateFunc adapts a plain function to Delegate.
type DelegateFunc struct {
	Label string
	Fn    func(ctx context.Context, variables state.Reader) error
}

func (d *DelegateFunc) Name() string { return d.Label }

func (d *DelegateFunc) Execute(ctx context.Context, variables state.Reader) error {
	if d.Fn == nil {
		return nil
	}
	return d.Fn(ctx, variables)
}
