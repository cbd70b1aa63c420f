package debate

import (
	"regexp"
	"strconv"
	"strings"
)

// Phrase lists tested in priority order: the first list containing a
// matching phrase wins.
var positionPhrases = []struct {
	phrases  []string
	position Position
}{
	{[]string{"strongly support", "strongly for"}, PositionFor},
	{[]string{"strongly against", "oppose"}, PositionAgainst},
	{[]string{"mixed", "both sides"}, PositionMixed},
	{[]string{"neutral", "uncertain"}, PositionNeutral},
	{[]string{"support", "agree"}, PositionFor},
	{[]string{"disagree", "against"}, PositionAgainst},
}

// ExtractPosition derives a for/against/neutral/mixed stance from free
// text. Pure function; defaults to neutral when nothing matches.
func ExtractPosition(content string) Position {
	lower := strings.ToLower(content)
	for _, group := range positionPhrases {
		for _, phrase := range group.phrases {
			if strings.Contains(lower, phrase) {
				return group.position
			}
		}
	}
	return PositionNeutral
}

var keyPointPrefix = regexp.MustCompile(`^(\d+\.|\*|-)\s+`)

// ExtractKeyPoints keeps numbered or bulleted lines whose stripped text
// is strictly between 10 and 200 characters, capped at 5 points in
// source order.
func ExtractKeyPoints(content string) []string {
	var points []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !keyPointPrefix.MatchString(trimmed) {
			continue
		}
		point := strings.TrimSpace(keyPointPrefix.ReplaceAllString(trimmed, ""))
		if len(point) > 10 && len(point) < 200 {
			points = append(points, point)
		}
		if len(points) == 5 {
			break
		}
	}
	return points
}

var revisionMarkers = []string{
	"i now agree",
	"i concede",
	"my position has shifted",
	"i've changed my mind",
	"i have changed my mind",
	"i was wrong",
}

// ExtractRevision scans for revision marker phrases and returns the
// enclosing sentence of the first match, or "" when none is found.
func ExtractRevision(content string) string {
	lower := strings.ToLower(content)
	for _, marker := range revisionMarkers {
		idx := strings.Index(lower, marker)
		if idx < 0 {
			continue
		}
		start := strings.LastIndex(lower[:idx], ".") + 1
		end := strings.Index(lower[idx:], ".")
		if end < 0 {
			end = len(content)
		} else {
			end += idx
		}
		return strings.TrimSpace(content[start:end])
	}
	return ""
}

var scoreRe = regexp.MustCompile(`(?i)Score:\s*(\d+)`)

// ParseConsensus extracts the confidence score from a final-verdict
// message and returns the content with the Score line and a leading
// Statement label stripped. Absent or unparsable scores default to 50;
// parsed scores are clamped into [0, 100].
func ParseConsensus(raw string) (content string, score int) {
	score = 50
	content = raw
	if loc := scoreRe.FindStringSubmatchIndex(raw); loc != nil {
		if n, err := strconv.Atoi(raw[loc[2]:loc[3]]); err == nil {
			score = n
		}
		content = raw[:loc[0]] + raw[loc[1]:]
	}
	content = strings.Replace(content, "Statement:", "", 1)
	content = strings.TrimSpace(content)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return content, score
}
