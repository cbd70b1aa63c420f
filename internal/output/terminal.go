package output

import (
	"fmt"
	"strings"

	"github.com/lorenzotomasdiez/debate-arena/internal/debate"
)

const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	AnsiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// Colorize wraps s with an ANSI color code and reset.
func Colorize(color, s string) string { return color + s + ansiReset }

// Bold wraps s with ANSI bold and reset.
func Bold(s string) string { return ansiBold + s + ansiReset }

// RoundTitle renders a round identifier for humans, e.g. "Cross Fire".
func RoundTitle(round debate.RoundType) string {
	words := strings.Split(string(round), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// PrintRoster prints the selected participants.
func PrintRoster(roster []debate.RosterEntry) {
	fmt.Printf("\n%s\n", Bold("Participants:"))
	for _, p := range roster {
		marker := " "
		if p.IsWildcard {
			marker = Colorize(AnsiMagenta, "*")
		}
		fmt.Printf("  %s %s %s\n", marker, Bold(p.Role), Colorize(ansiCyan, p.Agent))
	}
	fmt.Println()
}

// PrintRoundHeader prints a round transition banner.
func PrintRoundHeader(round debate.RoundType) {
	banner := fmt.Sprintf("=== Round %d: %s ===", round.Number(), RoundTitle(round))
	fmt.Printf("\n%s\n\n", Colorize(ansiBold+ansiCyan, banner))
}

// PrintMessage prints a formatted transcript message to stdout.
func PrintMessage(msg debate.Message) {
	label := msg.Role
	switch {
	case msg.Position != "":
		label += " " + Colorize(positionColor(msg.Position), "["+string(msg.Position)+"]")
	case msg.Target != "":
		label += " " + Colorize(AnsiMagenta, "-> "+msg.Target)
	}
	fmt.Printf("%s %s: %s\n\n",
		Colorize(ansiYellow, fmt.Sprintf("[R%d]", msg.RoundNumber)),
		Bold(label),
		msg.Content,
	)
	if msg.ConfidenceScore != nil {
		fmt.Printf("  %s\n\n", Colorize(ansiYellow, fmt.Sprintf("Confidence: %d/100", *msg.ConfidenceScore)))
	}
}

// PrintActivity prints a system notice.
func PrintActivity(a debate.Activity) {
	fmt.Printf("%s %s\n", Colorize(AnsiMagenta, "*"), a.Content)
}

// PrintConclusion prints the final synthesis.
func PrintConclusion(agent, conclusion string) {
	fmt.Printf("\n%s\n\n", Colorize(ansiBold+ansiGreen, "=== Conclusion ("+agent+") ==="))
	fmt.Printf("%s\n", conclusion)
}

func positionColor(p debate.Position) string {
	switch p {
	case debate.PositionFor:
		return ansiGreen
	case debate.PositionAgainst:
		return ansiRed
	default:
		return ansiYellow
	}
}
