// Package pubsub fans typed events out to subscribers and bridges them into
// the Bubble Tea update loop.
package pubsub

import "time"

// EventType says what happened.
type EventType string

const (
	// ChangedEvent reports new content, e.g. a rewritten save file.
	ChangedEvent EventType = "changed"
	// RemovedEvent reports that the subject went away.
	RemovedEvent EventType = "removed"
	// ErrorEvent carries a failure from the publisher.
	ErrorEvent EventType = "error"
)

// Event is one published event.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
