package ecs

import "github.com/milk9111/slicerman/ecs/component"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventSliced carries a SlicedEvent.
	EventSliced = "sliced"
	// EventMissed carries a MissedEvent.
	EventMissed = "missed"
)

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// SlicedEvent reports an entity hit by a slice probe.
type SlicedEvent struct {
	Entity Entity
	Kind   component.EnemyKind
	X, Y   float64
}

// MissedEvent reports an active entity that fell off the bottom of the screen.
type MissedEvent struct {
	Entity Entity
	Kind   component.EnemyKind
	X      float64
}
