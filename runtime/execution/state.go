package execution

// Status represents the lifecycle state of a process instance
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
)

// IsTerminal reports whether the instance accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}
