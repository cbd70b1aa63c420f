package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/lorenzotomasdiez/debate-arena/internal/debate"
	"github.com/lorenzotomasdiez/debate-arena/internal/openrouter"
	"github.com/lorenzotomasdiez/debate-arena/internal/provider"
)

const conclusionSystemPrompt = "You are the Final Synthesizer. Review the full debate and produce a balanced, multi-paragraph conclusion covering: the synthesis of the strongest arguments, where the participants agreed and disagreed, and what remains uncertain."

var recapRoundOrder = []debate.RoundType{
	debate.RoundPitch,
	debate.RoundCrossFire,
	debate.RoundStressTest,
	debate.RoundSteelMan,
	debate.RoundConsensus,
}

// buildConclusionRecap groups the transcript by round type and formats
// each message as "role (position|target): first 200 chars...".
func buildConclusionRecap(messages []debate.Message) string {
	byRound := make(map[debate.RoundType][]debate.Message)
	for _, m := range messages {
		byRound[m.Round] = append(byRound[m.Round], m)
	}

	var sections []string
	for _, round := range recapRoundOrder {
		roundMessages := byRound[round]
		if len(roundMessages) == 0 {
			continue
		}
		lines := []string{strings.ToUpper(string(round)) + ":"}
		for _, m := range roundMessages {
			label := string(m.Position)
			if label == "" {
				label = m.Target
			}
			content := m.Content
			if len(content) > 200 {
				content = content[:200]
			}
			lines = append(lines, fmt.Sprintf("- %s (%s): %s...", m.Role, label, content))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	return strings.Join(sections, "\n\n")
}

// synthesizeConclusion asks the Final Synthesizer for the closing
// conclusion. Failure here is fatal to the session, unlike round-level
// failures.
func (o *Orchestrator) synthesizeConclusion(ctx context.Context, topic string, messages []debate.Message) (string, error) {
	msgs := []openrouter.Message{
		{Role: "system", Content: conclusionSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Debate Topic: %s\n\nDebate recap:\n%s\n\nProvide the final conclusion (3-5 paragraphs).", topic, buildConclusionRecap(messages))},
	}

	conclusion, err := o.gateway.Send(ctx, provider.ResolveForRole("Final Synthesizer"), msgs, 0.7)
	if err != nil {
		return "", fmt.Errorf("session: conclusion synthesis: %w", err)
	}
	return conclusion, nil
}
