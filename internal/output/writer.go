package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/lorenzotomasdiez/debate-arena/internal/debate"
	"github.com/lorenzotomasdiez/debate-arena/internal/session"
)

const maxSlugLen = 50

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug converts a topic into a filesystem-friendly slug.
func GenerateSlug(topic string) string {
	slug := strings.ToLower(topic)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	return slug
}

// CreateOutputDir creates a timestamped directory under base for one
// debate's artifacts.
func CreateOutputDir(base, slug string) (string, error) {
	dir := filepath.Join(base, fmt.Sprintf("%s-%s", slug, time.Now().Format("20060102-150405")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("output: creating directory: %w", err)
	}
	return dir, nil
}

// Writer persists debate artifacts to an output directory.
type Writer struct {
	dir  string
	logs []string
}

// NewWriter creates a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteJSON writes the full session as session.json.
func (w *Writer) WriteJSON(sess *session.Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("output: marshaling session: %w", err)
	}
	return os.WriteFile(filepath.Join(w.dir, "session.json"), data, 0o644)
}

// WriteMarkdown writes a human-readable report.md.
func (w *Writer) WriteMarkdown(sess *session.Session) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Debate Report: %s\n\n", sess.Topic)
	fmt.Fprintf(&b, "Status: %s\n\n", sess.Status)

	if len(sess.Participants) > 0 {
		b.WriteString("## Participants\n\n")
		for _, p := range sess.Participants {
			marker := ""
			if p.IsWildcard {
				marker = " (wildcard)"
			}
			fmt.Fprintf(&b, "- %s%s, %s\n", p.Role, marker, p.Agent)
		}
		b.WriteString("\n")
	}

	var lastRound debate.RoundType
	for _, msg := range sess.Debate {
		if msg.Round != lastRound {
			fmt.Fprintf(&b, "## Round %d: %s\n\n", msg.RoundNumber, RoundTitle(msg.Round))
			lastRound = msg.Round
		}
		label := msg.Role
		if msg.Position != "" {
			label += fmt.Sprintf(" [%s]", msg.Position)
		}
		fmt.Fprintf(&b, "**%s** (%s)\n\n%s\n\n", label, msg.Agent, msg.Content)
		if msg.ConfidenceScore != nil {
			fmt.Fprintf(&b, "Confidence: %d/100\n\n", *msg.ConfidenceScore)
		}
	}

	if sess.Conclusion != "" {
		b.WriteString("## Conclusion\n\n")
		if sess.ConclusionAgent != "" {
			fmt.Fprintf(&b, "_%s_\n\n", sess.ConclusionAgent)
		}
		fmt.Fprintf(&b, "%s\n", sess.Conclusion)
	}

	return os.WriteFile(filepath.Join(w.dir, "report.md"), []byte(b.String()), 0o644)
}

// Log buffers one log line for WriteLog.
func (w *Writer) Log(line string) {
	w.logs = append(w.logs, fmt.Sprintf("[%s] %s", time.Now().Format(time.RFC3339), line))
}

// WriteLog flushes buffered log lines to debate.log.
func (w *Writer) WriteLog() error {
	content := strings.Join(w.logs, "\n") + "\n"
	return os.WriteFile(filepath.Join(w.dir, "debate.log"), []byte(content), 0o644)
}
