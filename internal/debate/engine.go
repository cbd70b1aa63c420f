package debate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lorenzotomasdiez/debate-arena/internal/persona"
	"github.com/lorenzotomasdiez/debate-arena/internal/provider"
	"github.com/lorenzotomasdiez/debate-arena/internal/seed"
)

const defaultTemperature = 0.7

// Engine orchestrates a five-round multi-persona debate. A single Engine
// is safe to reuse across sessions: all per-session state lives in Run.
type Engine struct {
	gateway Gateway
	ids     IDSource
	logger  *zap.Logger
}

// NewEngine creates a debate engine backed by the given gateway.
func NewEngine(gateway Gateway) *Engine {
	return &Engine{
		gateway: gateway,
		ids:     UUIDSource{},
		logger:  zap.NewNop(),
	}
}

// SetIDSource replaces the message id generator.
func (e *Engine) SetIDSource(ids IDSource) {
	e.ids = ids
}

// SetLogger sets the structured logger.
func (e *Engine) SetLogger(logger *zap.Logger) {
	e.logger = logger
}

func assignParticipant(sessionID string, p persona.Persona, isWildcard bool) Participant {
	providerID := provider.ResolveForPersona(p, sessionID)
	return Participant{
		Persona:    p,
		ProviderID: providerID,
		Agent:      provider.AgentLabel(p.Name, providerID),
		IsWildcard: isWildcard,
	}
}

// AssignParticipants selects the session's personas and binds each to a
// provider. Deterministic per session id.
func AssignParticipants(sessionID string) (core []Participant, wildcard Participant, err error) {
	sel, err := persona.SelectParticipants(sessionID)
	if err != nil {
		return nil, Participant{}, err
	}
	core = make([]Participant, len(sel.Core))
	for i, p := range sel.Core {
		core[i] = assignParticipant(sessionID, p, false)
	}
	return core, assignParticipant(sessionID, sel.Wildcard, true), nil
}

// Run executes the full debate in fixed round order and returns the
// accumulated transcript plus the participant roster. Round-local call
// failures are absorbed; only selection failures abort the debate.
func (e *Engine) Run(ctx context.Context, sessionID, topic string, contexts []Context, onEvent EventFunc) (*Result, error) {
	e.logger.Info("starting debate arena",
		zap.String("session_id", sessionID),
		zap.String("topic", truncate(topic, 50)))

	core, wildcard, err := AssignParticipants(sessionID)
	if err != nil {
		return nil, fmt.Errorf("debate: %w", err)
	}
	all := make([]Participant, 0, len(core)+1)
	all = append(all, core...)
	all = append(all, wildcard)

	roster := make([]RosterEntry, len(all))
	for i, p := range all {
		roster[i] = p.RosterEntry()
	}
	onEvent.emit(Event{Type: EventParticipants, Data: roster})

	roles := make([]string, len(core))
	for i, p := range core {
		roles[i] = p.Persona.Role
	}
	onEvent.emit(Event{Type: EventMessage, Data: Activity{
		Role:      "System",
		Content:   "Selected participants: " + strings.Join(roles, ", "),
		Timestamp: time.Now(),
	}})

	var transcript []Message

	// Round 1: The Pitch
	pitchMessages := e.runPitchRound(ctx, topic, contexts, core, onEvent)
	transcript = append(transcript, pitchMessages...)

	// Round 2: Cross-Fire (wildcard enters)
	crossFireRng := seed.New(sessionID + ":crossfire")
	transcript = append(transcript, e.runCrossFireRound(ctx, topic, core, wildcard, pitchMessages, crossFireRng, onEvent)...)

	// Round 3: Stress Test
	transcript = append(transcript, e.runStressTestRound(ctx, topic, all, onEvent)...)

	// Round 4: Steel Man
	transcript = append(transcript, e.runSteelManRound(ctx, topic, all, onEvent)...)

	// Round 5: Consensus (only round that sees the whole transcript)
	transcript = append(transcript, e.runConsensusRound(ctx, topic, all, transcript, onEvent)...)

	e.logger.Info("debate arena complete",
		zap.String("session_id", sessionID),
		zap.Int("message_count", len(transcript)))

	return &Result{Messages: transcript, Participants: roster}, nil
}

func (e *Engine) newMessage(p Participant, round RoundType, target, content string) Message {
	return Message{
		ID:          e.ids.NextID(),
		Role:        p.Persona.Role,
		PersonaID:   p.Persona.ID,
		Agent:       p.Agent,
		Round:       round,
		RoundNumber: round.Number(),
		Target:      target,
		Content:     content,
		Timestamp:   time.Now(),
	}
}
