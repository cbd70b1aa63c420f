package debate

import (
	"fmt"
	"strings"
)

func formatContexts(contexts []Context) string {
	lines := make([]string, len(contexts))
	for i, c := range contexts {
		url := ""
		if c.URL != "" {
			url = fmt.Sprintf(" (%s)", c.URL)
		}
		lines[i] = fmt.Sprintf("%d. %s%s\n   %s", i+1, c.Title, url, c.Snippet)
	}
	return strings.Join(lines, "\n\n")
}

func pitchSystemPrompt(agenda, topic string) string {
	return fmt.Sprintf("%s\n\nYou are participating in a debate about: %q\n\nMake a high-impact elevator pitch for your perspective. Hook the audience immediately.\n\nBe extremely concise (max 100 words).", agenda, topic)
}

func pitchUserPrompt(topic, contextsText string) string {
	if contextsText != "" {
		return fmt.Sprintf("Debate Topic: %s\n\nContext:\n%s", topic, contextsText)
	}
	return fmt.Sprintf("Debate Topic: %s\n\nProvide your opening pitch.", topic)
}

func wildcardChallengeSystemPrompt(agenda, targetRole string) string {
	return fmt.Sprintf("%s\n\nYou are the WILDCARD entering the debate. Challenge the %s's perspective with a completely new angle.\n\nBe concise and provocative (max 75 words).", agenda, targetRole)
}

func wildcardChallengeUserPrompt(topic, targetRole, pitchContent string) string {
	return fmt.Sprintf("Debate Topic: %q\n\n%s's Pitch: %q\n\nChallenge them!", topic, targetRole, pitchContent)
}

func crossFireResponseSystemPrompt(agenda, wildcardRole string) string {
	return fmt.Sprintf("%s\n\nA Wildcard (%s) has challenged you. Respond immediately and defend your ground.\n\nFlash message (max 50 words).", agenda, wildcardRole)
}

func crossFireResponseUserPrompt(wildcardRole, challengeContent string) string {
	return fmt.Sprintf("Challenge from %s: %q\n\nRespond!", wildcardRole, challengeContent)
}

const moderatorScenarioSystemPrompt = "You are the Debate Moderator. Generate a specific, challenging hypothetical failure scenario related to the topic. Force the debaters to apply their abstract ideas to a concrete problem."

func moderatorScenarioUserPrompt(topic string) string {
	return fmt.Sprintf("Topic: %s\n\nGenerate a 'Stress Test' scenario (max 2 sentences).", topic)
}

// Used when the moderator call fails; the round continues regardless.
const fallbackScenario = "Imagine this approach fails catastrophically in 5 years. Why?"

func stressResponseSystemPrompt(agenda string) string {
	return fmt.Sprintf("%s\n\nThe Moderator has posed a Stress Test scenario. Explain how your perspective handles this specific failure mode.\n\nBe realistic (max 100 words).", agenda)
}

func stressResponseUserPrompt(scenario string) string {
	return fmt.Sprintf("Scenario: %q\n\nYour message?", scenario)
}

func steelManSystemPrompt(agenda string) string {
	return fmt.Sprintf("%s\n\nNow, articulate the STRONGEST version of the opposing argument. Demonstrate intellectual honesty.\n\nStart with 'The strongest argument against my view is...'\n\n(Max 100 words).", agenda)
}

func steelManUserPrompt(topic string) string {
	return fmt.Sprintf("Topic: %s\n\nSteel-man the opposition.", topic)
}

func consensusSystemPrompt(agenda string) string {
	return fmt.Sprintf("%s\n\nFinal verdict. Give your closing statement and a Confidence Score (0-100%%) in the proposed path forward.\n\nFormat:\nStatement: [Your text]\nScore: [0-100]", agenda)
}

func consensusUserPrompt(topic, recap string) string {
	if recap == "" {
		recap = "(none)"
	}
	return fmt.Sprintf("Topic: %s\n\nRecent debate messages:\n%s\n\nProvide your final verdict and confidence score.", topic, recap)
}

// consensusRecap summarizes the last 12 messages of the debate so far.
func consensusRecap(messages []Message) string {
	start := len(messages) - 12
	if start < 0 {
		start = 0
	}
	var lines []string
	for _, m := range messages[start:] {
		lines = append(lines, fmt.Sprintf("- [R%d] %s: %s...", m.RoundNumber, m.Role, truncate(m.Content, 200)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
