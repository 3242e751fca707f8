package event

import "time"

// Event types emitted by the engine.
const (
	TypeInstanceStarted   = "instance.started"
	TypeInstanceCompleted = "instance.completed"
	TypeTaskCreated       = "task.created"
	TypeTaskCompleted     = "task.completed"
	TypeActivityCompleted = "activity.completed"
	TypeDelegateFailed    = "delegate.failed"
)

type Context struct {
	InstanceID    string `json:"instanceId"`
	DefinitionKey string `json:"definitionKey,omitempty"`
	NodeID        string `json:"nodeId,omitempty"`
	TaskID        string `json:"taskId,omitempty"`
	EventType     string `json:"eventType"`
	TimeTakenMs   int64  `json:"timeTakenMs,omitempty"`
	Error         string `json:"error,omitempty"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}

// Type returns the event type or an empty string.
func (e *Event[T]) Type() string {
	if e == nil || e.Context == nil {
		return ""
	}
	return e.Context.EventType
}
