package engine

import "fmt"

const defaultMaxSteps = 1000

// Config represents engine configuration
type Config struct {
	// MaxSteps caps the nodes visited by one Start or CompleteTask call.
	MaxSteps int `json:"maxSteps,omitempty" yaml:"maxSteps,omitempty"`
}

// DefaultConfig returns the default engine configuration
func DefaultConfig() Config {
	return Config{MaxSteps: defaultMaxSteps}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.MaxSteps <= 0 {
		return fmt.Errorf("engine: maxSteps must be positive, got %d", c.MaxSteps)
	}
	return nil
}
