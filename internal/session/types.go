// Package session holds the session envelope, its status state machine,
// the in-memory store, and the orchestrator that drives a session
// through the debate lifecycle.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/lorenzotomasdiez/debate-arena/internal/debate"
)

// Status is the session lifecycle state. complete and error are
// terminal: no transition leaves them.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusDebating   Status = "debating"
	StatusFinalizing Status = "finalizing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusError
}

// Session is the long-lived envelope for one debate. Sessions live in
// memory only and are never deleted within the process lifetime.
type Session struct {
	ID                  string               `json:"id"`
	Topic               string               `json:"topic"`
	Status              Status               `json:"status"`
	Contexts            []debate.Context     `json:"contexts,omitempty"`
	Messages            []debate.Activity    `json:"messages"`
	Participants        []debate.RosterEntry `json:"participants,omitempty"`
	Debate              []debate.Message     `json:"debate,omitempty"`
	Conclusion          string               `json:"conclusion,omitempty"`
	ConclusionAgentRole string               `json:"conclusionAgentRole,omitempty"`
	ConclusionAgent     string               `json:"conclusionAgent,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// New creates an idle session for a topic.
func New(topic string, contexts []debate.Context) *Session {
	now := time.Now()
	return &Session{
		ID:        "session-" + uuid.NewString(),
		Topic:     topic,
		Status:    StatusIdle,
		Contexts:  contexts,
		Messages:  []debate.Activity{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// snapshot copies the session, including its slices, so readers never
// share backing arrays with the orchestrator's live copy.
func (s *Session) snapshot() *Session {
	out := *s
	out.Contexts = make([]debate.Context, len(s.Contexts))
	copy(out.Contexts, s.Contexts)
	out.Messages = make([]debate.Activity, len(s.Messages))
	copy(out.Messages, s.Messages)
	out.Participants = make([]debate.RosterEntry, len(s.Participants))
	copy(out.Participants, s.Participants)
	out.Debate = make([]debate.Message, len(s.Debate))
	copy(out.Debate, s.Debate)
	return &out
}

// StatusData is the payload of status events.
type StatusData struct {
	Status Status `json:"status"`
}

// ConclusionData is the payload of conclusion events.
type ConclusionData struct {
	Conclusion string `json:"conclusion"`
}
