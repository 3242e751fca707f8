package policy

import (
	"context"
	"strings"
)

// Enforcement modes recognised by the engine.
const (
	ModeAuto    = "auto"    // no membership check (default)
	ModeEnforce = "enforce" // actor must belong to the task's candidate group
	ModeDeny    = "deny"    // refuse every completion
)

// Policy describes who is acting. A nil *Policy means no check.
type Policy struct {
	Mode   string
	Actor  string
	Groups []string
}

// Config is the serialisable form of a Policy.
type Config struct {
	Mode   string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	Actor  string   `json:"actor,omitempty" yaml:"actor,omitempty"`
	Groups []string `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{Mode: p.Mode, Actor: p.Actor, Groups: append([]string(nil), p.Groups...)}
}

// FromConfig converts a stored Config back to a Policy.
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{Mode: c.Mode, Actor: c.Actor, Groups: append([]string(nil), c.Groups...)}
}

// CanComplete reports whether the actor may complete a task offered to
// candidateGroup. Group names match case-insensitively.
func (p *Policy) CanComplete(candidateGroup string) bool {
	if p == nil {
		return true
	}
	switch strings.ToLower(p.Mode) {
	case ModeDeny:
		return false
	case ModeEnforce:
		for _, g := range p.Groups {
			if strings.EqualFold(g, candidateGroup) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy, or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
