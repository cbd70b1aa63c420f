package debate

import "time"

// EventType identifies an orchestration stream event.
type EventType string

const (
	EventParticipants  EventType = "participants"
	EventDebateMessage EventType = "debate_message"
	EventMessage       EventType = "message"
	EventError         EventType = "error"
	EventConclusion    EventType = "conclusion"
	EventStatus        EventType = "status"
)

// Event is a single orchestration stream event.
type Event struct {
	Type EventType
	Data any
}

// EventFunc receives orchestration events. It is invoked synchronously;
// a nil EventFunc is valid and drops all events.
type EventFunc func(Event)

func (fn EventFunc) emit(ev Event) {
	if fn != nil {
		fn(ev)
	}
}

// Activity is a lightweight human-readable activity line.
type Activity struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Agent     string    `json:"agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorData describes a non-fatal round-local failure.
type ErrorData struct {
	Error string `json:"error"`
}
