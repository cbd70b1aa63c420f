package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/lorenzotomasdiez/debate-arena/internal/debate"
	"github.com/lorenzotomasdiez/debate-arena/internal/openrouter"
)

// fakeGateway returns a canned response and records calls. failWhen, if
// set, makes matching calls fail.
type fakeGateway struct {
	mu       sync.Mutex
	response string
	failWhen func(providerID string, msgs []openrouter.Message) bool
	calls    [][]openrouter.Message
}

func (g *fakeGateway) Send(_ context.Context, providerID string, msgs []openrouter.Message, _ float64) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, msgs)
	g.mu.Unlock()

	if g.failWhen != nil && g.failWhen(providerID, msgs) {
		return "", errors.New("gateway down")
	}
	if g.response != "" {
		return g.response, nil
	}
	return "I support this direction.", nil
}

func isSynthesisCall(msgs []openrouter.Message) bool {
	return len(msgs) > 0 && strings.Contains(msgs[0].Content, "Final Synthesizer")
}

type publishedEvent struct {
	name string
	data any
}

func setup(gw debate.Gateway) (*Orchestrator, *MemoryStore, *Session) {
	store := NewMemoryStore()
	sess := New("should we rewrite the billing system?", nil)
	store.Put(sess)

	engine := debate.NewEngine(gw)
	engine.SetIDSource(&debate.CounterSource{})
	return NewOrchestrator(engine, gw, store), store, sess
}

func TestOrchestratorHappyPath(t *testing.T) {
	gw := &fakeGateway{response: "I agree. This holds up.\nScore: 80"}
	orch, store, sess := setup(gw)

	var mu sync.Mutex
	var events []publishedEvent
	store.Subscribe(sess.ID, func(name string, data any) {
		mu.Lock()
		events = append(events, publishedEvent{name: name, data: data})
		mu.Unlock()
	})

	orch.Run(context.Background(), sess.ID)

	got, _ := store.Get(sess.ID)
	if got.Status != StatusComplete {
		t.Fatalf("expected complete, got %s", got.Status)
	}
	if got.Conclusion == "" {
		t.Error("expected a conclusion")
	}
	if got.ConclusionAgentRole != "Final Synthesizer" {
		t.Errorf("unexpected conclusion role %q", got.ConclusionAgentRole)
	}
	if got.ConclusionAgent == "" {
		t.Error("expected a conclusion agent label")
	}
	if len(got.Participants) != 4 {
		t.Errorf("expected 4 participants, got %d", len(got.Participants))
	}
	if len(got.Debate) != 17 {
		t.Errorf("expected 17 transcript messages, got %d", len(got.Debate))
	}
	if len(got.Messages) == 0 {
		t.Error("expected activity messages")
	}

	// Status events arrive in lifecycle order, and "complete" follows
	// the terminal status.
	var statuses []Status
	sawComplete := false
	for _, ev := range events {
		switch ev.name {
		case "status":
			statuses = append(statuses, ev.data.(StatusData).Status)
		case "complete":
			sawComplete = true
		case "orchestrator_error":
			t.Errorf("unexpected error event: %v", ev.data)
		}
	}
	want := []Status{StatusDebating, StatusFinalizing, StatusComplete}
	if len(statuses) != len(want) {
		t.Fatalf("expected statuses %v, got %v", want, statuses)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Fatalf("expected statuses %v, got %v", want, statuses)
		}
	}
	if !sawComplete {
		t.Error("expected a complete publish after the terminal status")
	}
	if events[len(events)-1].name != "complete" {
		t.Errorf("expected complete to be the last publish, got %q", events[len(events)-1].name)
	}
}

func TestOrchestratorSynthesisFailureIsFatal(t *testing.T) {
	gw := &fakeGateway{
		failWhen: func(_ string, msgs []openrouter.Message) bool {
			return isSynthesisCall(msgs)
		},
	}
	orch, store, sess := setup(gw)

	var mu sync.Mutex
	var events []publishedEvent
	store.Subscribe(sess.ID, func(name string, data any) {
		mu.Lock()
		events = append(events, publishedEvent{name: name, data: data})
		mu.Unlock()
	})

	orch.Run(context.Background(), sess.ID)

	got, _ := store.Get(sess.ID)
	if got.Status != StatusError {
		t.Fatalf("expected error status, got %s", got.Status)
	}
	if got.Conclusion != "" {
		t.Error("expected no conclusion after a failed synthesis")
	}

	sawError, sawComplete := false, false
	for _, ev := range events {
		switch ev.name {
		case "orchestrator_error":
			sawError = true
			data := ev.data.(debate.ErrorData)
			if !strings.Contains(data.Error, "conclusion synthesis") {
				t.Errorf("unexpected error payload %q", data.Error)
			}
		case "complete":
			sawComplete = true
		}
	}
	if !sawError {
		t.Error("expected an orchestrator_error publish")
	}
	if !sawComplete {
		t.Error("expected a complete publish after the error status")
	}
}

func TestOrchestratorTerminalStatusIsAbsorbing(t *testing.T) {
	gw := &fakeGateway{response: "Fine.\nScore: 70"}
	orch, store, sess := setup(gw)

	orch.Run(context.Background(), sess.ID)

	orch.apply(sess.ID, statusEvent(StatusDebating))
	got, _ := store.Get(sess.ID)
	if got.Status != StatusComplete {
		t.Errorf("terminal status was overwritten to %s", got.Status)
	}
}

func TestOrchestratorMissingSession(t *testing.T) {
	gw := &fakeGateway{}
	orch, _, _ := setup(gw)

	// Must not panic or call the gateway.
	orch.Run(context.Background(), "session-unknown")
	if len(gw.calls) != 0 {
		t.Errorf("expected no gateway calls, got %d", len(gw.calls))
	}
}

func TestBuildConclusionRecapGroupsByRound(t *testing.T) {
	messages := []debate.Message{
		{Round: debate.RoundConsensus, Role: "The Analyst", Position: debate.PositionFor, Content: "Final word."},
		{Round: debate.RoundPitch, Role: "The Visionary", Position: debate.PositionFor, Content: "Opening pitch."},
		{Round: debate.RoundCrossFire, Role: "The Devil's Advocate", Target: "The Visionary", Content: "Challenge."},
	}

	recap := buildConclusionRecap(messages)

	pitchIdx := strings.Index(recap, "PITCH:")
	crossIdx := strings.Index(recap, "CROSS_FIRE:")
	consensusIdx := strings.Index(recap, "CONSENSUS:")
	if pitchIdx == -1 || crossIdx == -1 || consensusIdx == -1 {
		t.Fatalf("missing round headers in recap:\n%s", recap)
	}
	if !(pitchIdx < crossIdx && crossIdx < consensusIdx) {
		t.Error("rounds are not in debate order")
	}
	if !strings.Contains(recap, "- The Visionary (for): Opening pitch....") {
		t.Errorf("unexpected pitch line in recap:\n%s", recap)
	}
	if !strings.Contains(recap, "- The Devil's Advocate (The Visionary): Challenge....") {
		t.Errorf("target label not used when position is empty:\n%s", recap)
	}
}

func TestBuildConclusionRecapTruncatesContent(t *testing.T) {
	long := strings.Repeat("x", 300)
	recap := buildConclusionRecap([]debate.Message{
		{Round: debate.RoundPitch, Role: "The Analyst", Position: debate.PositionNeutral, Content: long},
	})
	if strings.Contains(recap, long) {
		t.Error("expected content to be truncated")
	}
	if !strings.Contains(recap, strings.Repeat("x", 200)+"...") {
		t.Error("expected 200-char prefix with ellipsis")
	}
}
