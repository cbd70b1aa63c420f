package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lorenzotomasdiez/debate-arena/internal/debate"
	"github.com/lorenzotomasdiez/debate-arena/internal/provider"
)

// Wire name used instead of "error" so stream consumers can tell
// orchestration failures apart from transport errors.
const wireOrchestratorError = "orchestrator_error"

// Orchestrator drives a session end to end: debate, then conclusion
// synthesis, translating engine events into session-state updates and
// stream publishes.
type Orchestrator struct {
	engine  *debate.Engine
	gateway debate.Gateway
	store   Store
	logger  *zap.Logger

	// Serializes event application per orchestrator: parallel rounds
	// emit from multiple goroutines, but session mutation and fan-out
	// must happen one event at a time.
	mu sync.Mutex
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(engine *debate.Engine, gateway debate.Gateway, store Store) *Orchestrator {
	return &Orchestrator{
		engine:  engine,
		gateway: gateway,
		store:   store,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the structured logger.
func (o *Orchestrator) SetLogger(logger *zap.Logger) {
	o.logger = logger
}

// Run executes the full lifecycle for an existing session:
// idle -> debating -> finalizing -> complete, or error on a fatal
// failure. Round-local failures inside the engine are absorbed there
// and only surface as error events.
func (o *Orchestrator) Run(ctx context.Context, sessionID string) {
	sess, ok := o.store.Get(sessionID)
	if !ok {
		o.logger.Error("session not found", zap.String("session_id", sessionID))
		return
	}

	o.logger.Info("starting orchestration", zap.String("session_id", sessionID))
	onEvent := func(ev debate.Event) {
		o.apply(sessionID, ev)
	}

	o.apply(sessionID, statusEvent(StatusDebating))
	result, err := o.engine.Run(ctx, sessionID, sess.Topic, sess.Contexts, onEvent)
	if err != nil {
		o.fail(sessionID, err)
		return
	}

	o.apply(sessionID, statusEvent(StatusFinalizing))
	conclusion, err := o.synthesizeConclusion(ctx, sess.Topic, result.Messages)
	if err != nil {
		o.fail(sessionID, err)
		return
	}

	o.apply(sessionID, debate.Event{Type: debate.EventConclusion, Data: ConclusionData{Conclusion: conclusion}})
	o.apply(sessionID, statusEvent(StatusComplete))
	o.logger.Info("orchestration complete", zap.String("session_id", sessionID))
}

func statusEvent(s Status) debate.Event {
	return debate.Event{Type: debate.EventStatus, Data: StatusData{Status: s}}
}

// fail marks the session failed and emits the terminal events. Only
// selection and synthesis failures reach here; everything else is
// absorbed round-locally.
func (o *Orchestrator) fail(sessionID string, err error) {
	o.logger.Error("orchestration failed",
		zap.String("session_id", sessionID),
		zap.Error(err))
	o.apply(sessionID, debate.Event{Type: debate.EventError, Data: debate.ErrorData{Error: err.Error()}})
	o.apply(sessionID, statusEvent(StatusError))
}

// apply folds one event into the stored session, then publishes it to
// stream subscribers. Terminal status events are followed by a
// "complete" signal.
func (o *Orchestrator) apply(sessionID string, ev debate.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.store.Get(sessionID)
	if !ok {
		o.logger.Warn("session missing while applying event",
			zap.String("session_id", sessionID),
			zap.String("event", string(ev.Type)))
		return
	}

	switch ev.Type {
	case debate.EventStatus:
		if data, ok := ev.Data.(StatusData); ok && !sess.Status.Terminal() {
			sess.Status = data.Status
		}
	case debate.EventParticipants:
		if data, ok := ev.Data.([]debate.RosterEntry); ok {
			sess.Participants = data
		}
	case debate.EventDebateMessage:
		if data, ok := ev.Data.(debate.Message); ok {
			sess.Debate = append(sess.Debate, data)
		}
	case debate.EventMessage:
		if data, ok := ev.Data.(debate.Activity); ok {
			sess.Messages = append(sess.Messages, data)
		}
	case debate.EventConclusion:
		if data, ok := ev.Data.(ConclusionData); ok {
			sess.Conclusion = data.Conclusion
			sess.ConclusionAgentRole = "Final Synthesizer"
			sess.ConclusionAgent = provider.RoleDisplayLabel("Final Synthesizer")
		}
	case debate.EventError:
		// Non-fatal failures leave the session body untouched; they
		// only reach subscribers.
	}
	sess.UpdatedAt = time.Now()
	o.store.Put(sess)

	wireName := string(ev.Type)
	if ev.Type == debate.EventError {
		wireName = wireOrchestratorError
	}
	o.store.Publish(sessionID, wireName, ev.Data)

	if ev.Type == debate.EventStatus && sess.Status.Terminal() {
		o.store.Publish(sessionID, "complete", StatusData{Status: sess.Status})
	}
}
