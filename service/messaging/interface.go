// Package messaging defines the queue abstraction carrying engine events and
// task queue notifications.
package messaging

import "context"

// Queue carries payloads of type T between the engine and its listeners.
type Queue[T any] interface {
	// Publish enqueues a copy of t.
	Publish(ctx context.Context, t *T) error

	// Consume waits for the next message or until ctx is done.
	Consume(ctx context.Context) (Message[T], error)
}

// Message is a delivered payload awaiting acknowledgement.
type Message[T any] interface {
	T() *T

	Ack() error

	// Nack rejects the message; the queue decides whether to redeliver.
	Nack(err error) error
}

// Stats is implemented by queues that may discard messages.
type Stats interface {
	Dropped() int64
}
