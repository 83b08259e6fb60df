package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventTriggerEnter carries a TriggerEnterEvent.
	EventTriggerEnter = "trigger_enter"
	// EventSessionEnded carries a SessionEndedEvent.
	EventSessionEnded = "session_ended"
)

// TriggerEnterEvent is emitted when a body starts overlapping a trigger volume.
type TriggerEnterEvent struct {
	Trigger Entity
	Other   Entity
}

// SessionEndedEvent is emitted once when the session countdown expires.
type SessionEndedEvent struct {
	Score int
}

// EventQueue is a simple FIFO queue. Events pushed during a tick are visible
// to every later system of the same tick and dropped at the end of it.
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

// Each visits queued events of the given type without consuming them.
func (q *EventQueue) Each(eventType string, fn func(Event)) {
	if q == nil || fn == nil {
		return
	}
	for _, evt := range q.items {
		if evt.Type == eventType {
			fn(evt)
		}
	}
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
