package task

import "github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"

// Event topics published on Service.Queue
const (
	TopicTaskCreated = "task.created"
	TopicTaskRemoved = "task.removed"
)

// Event envelope for task queue changes.
type Event struct {
	Topic string          `json:"topic"`
	Task  *execution.Task `json:"task"`
}
