package model

import (
	"errors"
	"fmt"
)

// ErrInvalidDefinition wraps every structural problem reported by Validate.
var ErrInvalidDefinition = errors.New("invalid process definition")

// Definition is an immutable process graph identified by Key.
type Definition struct {
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	StartNode   string `json:"startNode" yaml:"startNode"`
	Nodes       []Node `json:"-" yaml:"-"`
	index       map[string]Node
}

// Node returns the node with the given id.
func (d *Definition) Node(id string) (Node, bool) {
	if d.index == nil {
		for _, n := range d.Nodes {
			if n.ID() == id {
				return n, true
			}
		}
		return nil, false
	}
	n, ok := d.index[id]
	return n, ok
}

// Start returns the start node.
func (d *Definition) Start() Node {
	n, _ := d.Node(d.StartNode)
	return n
}

// NodeIDs returns node ids in declaration order.
func (d *Definition) NodeIDs() []string {
	ret := make([]string, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		ret = append(ret, n.ID())
	}
	return ret
}

// Validate performs a structural validation of the definition. The returned
// slice is empty when the definition is sound.
func (d *Definition) Validate() []error {
	var issues []error
	if d.Key == "" {
		issues = append(issues, fmt.Errorf("definition key is empty"))
	}
	if len(d.Nodes) == 0 {
		return append(issues, fmt.Errorf("definition %q has no nodes", d.Key))
	}

	seen := map[string]bool{}
	starts := 0
	for _, n := range d.Nodes {
		if n == nil {
			issues = append(issues, fmt.Errorf("definition %q has a nil node", d.Key))
			continue
		}
		if n.ID() == "" {
			issues = append(issues, fmt.Errorf("%v node without id", n.Kind()))
			continue
		}
		if seen[n.ID()] {
			issues = append(issues, fmt.Errorf("duplicate node id %s", n.ID()))
		}
		seen[n.ID()] = true
		if n.Kind() == KindStart {
			starts++
		}
	}
	if starts != 1 {
		issues = append(issues, fmt.Errorf("definition %q has %d start nodes, expected 1", d.Key, starts))
	}
	if d.StartNode == "" || !seen[d.StartNode] {
		issues = append(issues, fmt.Errorf("start node %q not found", d.StartNode))
	} else if n, _ := d.Node(d.StartNode); n != nil && n.Kind() != KindStart {
		issues = append(issues, fmt.Errorf("start node %q is a %v", d.StartNode, n.Kind()))
	}

	for _, n := range d.Nodes {
		if n == nil || n.ID() == "" {
			continue
		}
		switch actual := n.(type) {
		case *UserTask:
			if actual.CandidateGroup == "" {
				issues = append(issues, fmt.Errorf("user task %s has no candidate group", actual.NodeID))
			}
		case *Gateway:
			if actual.Variable == "" {
				issues = append(issues, fmt.Errorf("gateway %s has no condition variable", actual.NodeID))
			}
		case *ServiceTask:
			if actual.Delegate == nil {
				issues = append(issues, fmt.Errorf("service task %s has no delegate", actual.NodeID))
			}
		}
		for _, target := range n.Outgoing() {
			if target == "" {
				issues = append(issues, fmt.Errorf("node %s has an empty outgoing edge", n.ID()))
				continue
			}
			if !seen[target] {
				issues = append(issues, fmt.Errorf("node %s refers to unknown node %s", n.ID(), target))
			}
		}
	}
	return issues
}

// Builder assembles a Definition.
type Builder struct {
	def *Definition
}

// NewDefinition starts a builder for key.
func NewDefinition(key string) *Builder {
	return &Builder{def: &Definition{Key: key}}
}

// Named sets a human-readable name
func (b *Builder) Named(name string) *Builder {
	b.def.Name = name
	return b
}

// Start adds the start node
func (b *Builder) Start(id, next string) *Builder {
	b.def.StartNode = id
	return b.add(&Start{NodeID: id, Next: next})
}

// UserTask adds a human task routed to candidateGroup
func (b *Builder) UserTask(id, name, candidateGroup, next string) *Builder {
	return b.add(&UserTask{NodeID: id, Name: name, CandidateGroup: candidateGroup, Next: next})
}

// Gateway adds an exclusive gateway on a boolean variable
func (b *Builder) Gateway(id, variable, whenTrue, whenFalse string) *Builder {
	return b.add(&Gateway{NodeID: id, Variable: variable, WhenTrue: whenTrue, WhenFalse: whenFalse})
}

// ServiceTask adds an automated step invoking delegate
func (b *Builder) ServiceTask(id string, delegate Delegate, next string) *Builder {
	return b.add(&ServiceTask{NodeID: id, Delegate: delegate, Next: next})
}

// End adds an end node
func (b *Builder) End(id string) *Builder {
	return b.add(&End{NodeID: id})
}

func (b *Builder) add(n Node) *Builder {
	b.def.Nodes = append(b.def.Nodes, n)
	return b
}

// Build validates and returns the definition. The builder must not be used
// afterwards.
func (b *Builder) Build() (*Definition, error) {
	def := b.def
	if issues := def.Validate(); len(issues) > 0 {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidDefinition, def.Key, errors.Join(issues...))
	}
	def.index = make(map[string]Node, len(def.Nodes))
	for _, n := range def.Nodes {
		def.index[n.ID()] = n
	}
	return def, nil
}
