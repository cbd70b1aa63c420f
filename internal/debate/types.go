package debate

import (
	"context"
	"time"

	"github.com/lorenzotomasdiez/debate-arena/internal/openrouter"
	"github.com/lorenzotomasdiez/debate-arena/internal/persona"
)

// RoundType labels one phase of the debate. The set is closed and the
// order is significant.
type RoundType string

const (
	RoundPitch      RoundType = "pitch"
	RoundCrossFire  RoundType = "cross_fire"
	RoundStressTest RoundType = "stress_test"
	RoundSteelMan   RoundType = "steel_man"
	RoundConsensus  RoundType = "consensus"
)

// Number returns the 1-based round number for a round type.
func (r RoundType) Number() int {
	switch r {
	case RoundPitch:
		return 1
	case RoundCrossFire:
		return 2
	case RoundStressTest:
		return 3
	case RoundSteelMan:
		return 4
	case RoundConsensus:
		return 5
	}
	return 0
}

// Position is a derived stance extracted from message content.
type Position string

const (
	PositionFor     Position = "for"
	PositionAgainst Position = "against"
	PositionNeutral Position = "neutral"
	PositionMixed   Position = "mixed"
)

// Message is the atomic unit of debate output. Messages are append-only:
// produced by exactly one round executor call and never mutated afterward.
type Message struct {
	ID              string    `json:"id"`
	Role            string    `json:"role"`
	PersonaID       string    `json:"personaId,omitempty"`
	Agent           string    `json:"agent"`
	Round           RoundType `json:"round"`
	RoundNumber     int       `json:"roundNumber"`
	Target          string    `json:"target,omitempty"`
	Content         string    `json:"content"`
	Position        Position  `json:"position,omitempty"`
	KeyPoints       []string  `json:"keyPoints,omitempty"`
	Revisions       string    `json:"revisions,omitempty"`
	ConfidenceScore *int      `json:"confidenceScore,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Participant is a persona bound to a concrete provider for one session.
type Participant struct {
	Persona    persona.Persona
	ProviderID string
	Agent      string
	IsWildcard bool
}

// RosterEntry is the participant snapshot sent to stream consumers.
type RosterEntry struct {
	PersonaID   string `json:"personaId"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	ProviderID  string `json:"providerId"`
	Agent       string `json:"agent"`
	IsWildcard  bool   `json:"isWildcard"`
}

// RosterEntry converts a participant to its wire snapshot.
func (p Participant) RosterEntry() RosterEntry {
	return RosterEntry{
		PersonaID:   p.Persona.ID,
		Name:        p.Persona.Name,
		Role:        p.Persona.Role,
		Description: p.Persona.Description,
		ProviderID:  p.ProviderID,
		Agent:       p.Agent,
		IsWildcard:  p.IsWildcard,
	}
}

// Context is a background snippet fed into the debate.
type Context struct {
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Snippet string `json:"snippet"`
}

// Gateway sends role-tagged messages to a named provider and returns the
// generated text. Implementations classify transport/API failures; the
// engine performs a single Send per call and never retries.
type Gateway interface {
	Send(ctx context.Context, providerID string, messages []openrouter.Message, temperature float64) (string, error)
}

// Result holds the complete output of a debate run.
type Result struct {
	Messages     []Message
	Participants []RosterEntry
}
