package engine

import "time"

// Metrics receives engine activity after every successful commit.
type Metrics interface {
	InstanceStarted(definition string)
	InstanceCompleted(definition, endNode string, elapsed time.Duration)
	TaskCreated(group string)
	TaskCompleted(group string, waited time.Duration)
	DelegateFailed(nodeID string)
}

type noMetrics struct{}

func (noMetrics) InstanceStarted(string)                          {}
func (noMetrics) InstanceCompleted(string, string, time.Duration) {}
func (noMetrics) TaskCreated(string)                              {}
func (noMetrics) TaskCompleted(string, time.Duration)             {}
func (noMetrics) DelegateFailed(string)                           {}
