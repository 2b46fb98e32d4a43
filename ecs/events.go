package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventBounce = "bounce"

// BounceAxis identifies which edges a sprite reflected off during a tick.
type BounceAxis uint8

const (
	BounceX BounceAxis = 1 << iota
	BounceY
)

// BounceEvent is emitted when a sprite reflects off the viewport edge.
type BounceEvent struct {
	Entity Entity
	Axis   BounceAxis
}

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

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
