package debate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lorenzotomasdiez/debate-arena/internal/openrouter"
	"github.com/lorenzotomasdiez/debate-arena/internal/provider"
	"github.com/lorenzotomasdiez/debate-arena/internal/seed"
)

// runPitchRound has every core participant deliver an opening pitch
// concurrently. A failed call is substituted with a visible error
// message so the transcript stays complete.
func (e *Engine) runPitchRound(ctx context.Context, topic string, contexts []Context, participants []Participant, onEvent EventFunc) []Message {
	e.logger.Info("starting round", zap.String("round", string(RoundPitch)))

	contextsText := ""
	if len(contexts) > 0 {
		contextsText = formatContexts(contexts)
	}

	results := make([]Message, len(participants))
	var wg sync.WaitGroup
	for i, p := range participants {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			msgs := []openrouter.Message{
				{Role: "system", Content: pitchSystemPrompt(p.Persona.Agenda, topic)},
				{Role: "user", Content: pitchUserPrompt(topic, contextsText)},
			}
			content, err := e.gateway.Send(ctx, p.ProviderID, msgs, defaultTemperature)
			if err != nil {
				e.logger.Warn("pitch failed",
					zap.String("role", p.Persona.Role),
					zap.Error(err))
				onEvent.emit(Event{Type: EventError, Data: ErrorData{
					Error: fmt.Sprintf("%s pitch failed: %v", p.Persona.Role, err),
				}})
				results[i] = e.newMessage(p, RoundPitch, "all", fmt.Sprintf("[Error: Could not generate pitch. %v]", err))
				return
			}

			m := e.newMessage(p, RoundPitch, "all", content)
			m.Position = ExtractPosition(content)
			m.KeyPoints = ExtractKeyPoints(content)
			results[i] = m

			onEvent.emit(Event{Type: EventDebateMessage, Data: m})
			onEvent.emit(Event{Type: EventMessage, Data: Activity{
				Role:      p.Persona.Role,
				Content:   "Pitch delivered",
				Agent:     p.Agent,
				Timestamp: m.Timestamp,
			}})
		}()
	}
	wg.Wait()

	e.logger.Info("pitch round complete")
	return results
}

// runCrossFireRound picks one core participant as a target and has the
// wildcard challenge them, then the target respond. Target resolution
// failure yields an empty round, not an error.
func (e *Engine) runCrossFireRound(ctx context.Context, topic string, core []Participant, wildcard Participant, pitchMessages []Message, rng *seed.Rand, onEvent EventFunc) []Message {
	e.logger.Info("starting round", zap.String("round", string(RoundCrossFire)))

	if len(core) == 0 {
		e.logger.Error("no participants available for cross-fire")
		return nil
	}

	target := core[rng.Intn(len(core))]
	var targetPitch *Message
	for i := range pitchMessages {
		if pitchMessages[i].PersonaID == target.Persona.ID {
			targetPitch = &pitchMessages[i]
			break
		}
	}
	if targetPitch == nil {
		e.logger.Error("target pitch not found for cross-fire",
			zap.String("target", target.Persona.ID))
		return nil
	}

	challengeMsgs := []openrouter.Message{
		{Role: "system", Content: wildcardChallengeSystemPrompt(wildcard.Persona.Agenda, target.Persona.Role)},
		{Role: "user", Content: wildcardChallengeUserPrompt(topic, target.Persona.Role, targetPitch.Content)},
	}
	challengeContent, err := e.gateway.Send(ctx, wildcard.ProviderID, challengeMsgs, defaultTemperature)
	if err != nil {
		e.logger.Warn("wildcard challenge failed", zap.Error(err))
		onEvent.emit(Event{Type: EventError, Data: ErrorData{
			Error: fmt.Sprintf("%s challenge failed: %v", wildcard.Persona.Role, err),
		}})
		return nil
	}

	challenge := e.newMessage(wildcard, RoundCrossFire, target.Persona.Role, challengeContent)
	onEvent.emit(Event{Type: EventDebateMessage, Data: challenge})
	onEvent.emit(Event{Type: EventMessage, Data: Activity{
		Role:      wildcard.Persona.Role,
		Content:   "Wildcard challenge!",
		Agent:     wildcard.Agent,
		Timestamp: time.Now(),
	}})
	out := []Message{challenge}

	responseMsgs := []openrouter.Message{
		{Role: "system", Content: crossFireResponseSystemPrompt(target.Persona.Agenda, wildcard.Persona.Role)},
		{Role: "user", Content: crossFireResponseUserPrompt(wildcard.Persona.Role, challenge.Content)},
	}
	responseContent, err := e.gateway.Send(ctx, target.ProviderID, responseMsgs, defaultTemperature)
	if err != nil {
		e.logger.Warn("cross-fire response failed", zap.Error(err))
		onEvent.emit(Event{Type: EventError, Data: ErrorData{
			Error: fmt.Sprintf("%s cross-fire response failed: %v", target.Persona.Role, err),
		}})
		return out
	}

	response := e.newMessage(target, RoundCrossFire, wildcard.Persona.Role, responseContent)
	onEvent.emit(Event{Type: EventDebateMessage, Data: response})
	return append(out, response)
}

// runStressTestRound has the moderator pose a failure scenario, then all
// participants respond to it concurrently. Moderator failure falls back
// to a fixed scenario rather than failing the round.
func (e *Engine) runStressTestRound(ctx context.Context, topic string, participants []Participant, onEvent EventFunc) []Message {
	e.logger.Info("starting round", zap.String("round", string(RoundStressTest)))

	moderatorMsgs := []openrouter.Message{
		{Role: "system", Content: moderatorScenarioSystemPrompt},
		{Role: "user", Content: moderatorScenarioUserPrompt(topic)},
	}
	scenario, err := e.gateway.Send(ctx, provider.ResolveForRole("Moderator"), moderatorMsgs, defaultTemperature)
	if err != nil {
		e.logger.Warn("stress test scenario generation failed", zap.Error(err))
		scenario = fallbackScenario
	} else {
		onEvent.emit(Event{Type: EventMessage, Data: Activity{
			Role:      "Moderator",
			Content:   "Stress Test Scenario: " + scenario,
			Agent:     provider.RoleDisplayLabel("Moderator"),
			Timestamp: time.Now(),
		}})
	}

	return e.runParallel(ctx, participants, RoundStressTest, "Moderator", onEvent, func(p Participant) []openrouter.Message {
		return []openrouter.Message{
			{Role: "system", Content: stressResponseSystemPrompt(p.Persona.Agenda)},
			{Role: "user", Content: stressResponseUserPrompt(scenario)},
		}
	}, func(m *Message) {
		m.Content = fmt.Sprintf("[Re: %s] %s", scenario, m.Content)
	})
}

// runSteelManRound has every participant articulate the strongest
// version of the opposing argument, concurrently.
func (e *Engine) runSteelManRound(ctx context.Context, topic string, participants []Participant, onEvent EventFunc) []Message {
	e.logger.Info("starting round", zap.String("round", string(RoundSteelMan)))

	return e.runParallel(ctx, participants, RoundSteelMan, "all", onEvent, func(p Participant) []openrouter.Message {
		return []openrouter.Message{
			{Role: "system", Content: steelManSystemPrompt(p.Persona.Agenda)},
			{Role: "user", Content: steelManUserPrompt(topic)},
		}
	}, nil)
}

// runConsensusRound collects each participant's closing statement and
// confidence score, given a recap of the recent transcript.
func (e *Engine) runConsensusRound(ctx context.Context, topic string, participants []Participant, allPrevious []Message, onEvent EventFunc) []Message {
	e.logger.Info("starting round", zap.String("round", string(RoundConsensus)))

	recap := consensusRecap(allPrevious)

	return e.runParallel(ctx, participants, RoundConsensus, "all", onEvent, func(p Participant) []openrouter.Message {
		return []openrouter.Message{
			{Role: "system", Content: consensusSystemPrompt(p.Persona.Agenda)},
			{Role: "user", Content: consensusUserPrompt(topic, recap)},
		}
	}, func(m *Message) {
		content, score := ParseConsensus(m.Content)
		m.Content = content
		m.ConfidenceScore = &score
	})
}

// runParallel issues one gateway call per participant concurrently and
// collects the successful messages in call-issue order. Failed calls are
// dropped from the round after emitting an error event.
func (e *Engine) runParallel(ctx context.Context, participants []Participant, round RoundType, target string, onEvent EventFunc, buildMsgs func(Participant) []openrouter.Message, finalize func(*Message)) []Message {
	results := make([]*Message, len(participants))
	var wg sync.WaitGroup
	for i, p := range participants {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			content, err := e.gateway.Send(ctx, p.ProviderID, buildMsgs(p), defaultTemperature)
			if err != nil {
				e.logger.Warn("round call failed",
					zap.String("round", string(round)),
					zap.String("role", p.Persona.Role),
					zap.Error(err))
				onEvent.emit(Event{Type: EventError, Data: ErrorData{
					Error: fmt.Sprintf("%s %s failed: %v", p.Persona.Role, round, err),
				}})
				return
			}

			m := e.newMessage(p, round, target, content)
			if finalize != nil {
				finalize(&m)
			}
			results[i] = &m

			onEvent.emit(Event{Type: EventDebateMessage, Data: m})
			if round == RoundConsensus && m.ConfidenceScore != nil {
				onEvent.emit(Event{Type: EventMessage, Data: Activity{
					Role:      p.Persona.Role,
					Content:   fmt.Sprintf("Final verdict given (Confidence: %d%%)", *m.ConfidenceScore),
					Agent:     p.Agent,
					Timestamp: time.Now(),
				}})
			}
		}()
	}
	wg.Wait()

	out := make([]Message, 0, len(results))
	for _, m := range results {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}
