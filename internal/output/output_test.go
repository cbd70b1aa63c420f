package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/lorenzotomasdiez/debate-arena/internal/debate"
	"github.com/lorenzotomasdiez/debate-arena/internal/session"
)

func TestGenerateSlug(t *testing.T) {
	got := GenerateSlug("Should we adopt Event Sourcing?!")
	want := "should-we-adopt-event-sourcing"
	if got != want {
		t.Errorf("GenerateSlug() = %q, want %q", got, want)
	}
}

func TestGenerateSlugMaxLength(t *testing.T) {
	long := strings.Repeat("word ", 20) // 100 chars
	got := GenerateSlug(long)
	if len(got) > 50 {
		t.Errorf("GenerateSlug() length = %d, want <= 50", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("GenerateSlug() = %q, trailing dash after truncation", got)
	}
}

func TestRoundTitle(t *testing.T) {
	cases := map[debate.RoundType]string{
		debate.RoundPitch:      "Pitch",
		debate.RoundCrossFire:  "Cross Fire",
		debate.RoundStressTest: "Stress Test",
		debate.RoundSteelMan:   "Steel Man",
		debate.RoundConsensus:  "Consensus",
	}
	for round, want := range cases {
		if got := RoundTitle(round); got != want {
			t.Errorf("RoundTitle(%s) = %q, want %q", round, got, want)
		}
	}
}

func TestCreateOutputDir(t *testing.T) {
	base := t.TempDir()
	slug := "test-topic"

	dir, err := CreateOutputDir(base, slug)
	if err != nil {
		t.Fatalf("CreateOutputDir() error = %v", err)
	}

	if !strings.Contains(dir, slug) {
		t.Errorf("dir %q does not contain slug %q", dir, slug)
	}

	pattern := regexp.MustCompile(`test-topic-\d{8}-\d{6}$`)
	if !pattern.MatchString(filepath.Base(dir)) {
		t.Errorf("dir base %q does not match expected pattern", filepath.Base(dir))
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("directory does not exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("path is not a directory")
	}
}

func testSession() *session.Session {
	score := 85
	sess := session.New("Should we adopt event sourcing?", nil)
	sess.Status = session.StatusComplete
	sess.Participants = []debate.RosterEntry{
		{PersonaID: "visionary", Role: "The Visionary", Agent: "The Visionary (GPT 4o)"},
		{PersonaID: "devil_advocate", Role: "The Devil's Advocate", Agent: "The Devil's Advocate (Grok Beta)", IsWildcard: true},
	}
	sess.Debate = []debate.Message{
		{ID: "debate-1", Role: "The Visionary", Agent: "The Visionary (GPT 4o)", Round: debate.RoundPitch, RoundNumber: 1, Content: "We should do this.", Position: debate.PositionFor},
		{ID: "debate-2", Role: "The Visionary", Agent: "The Visionary (GPT 4o)", Round: debate.RoundConsensus, RoundNumber: 5, Content: "Final verdict.", Position: debate.PositionFor, ConfidenceScore: &score},
	}
	sess.Conclusion = "The panel leans in favor."
	sess.ConclusionAgent = "GPT 4o"
	return sess
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	if err := w.WriteJSON(testSession()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("reading session.json: %v", err)
	}

	var got session.Session
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if got.Topic != "Should we adopt event sourcing?" {
		t.Errorf("Topic = %q", got.Topic)
	}
	if len(got.Debate) != 2 {
		t.Errorf("Debate length = %d, want 2", len(got.Debate))
	}
}

func TestWriteMarkdown(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	if err := w.WriteMarkdown(testSession()); err != nil {
		t.Fatalf("WriteMarkdown() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.md"))
	if err != nil {
		t.Fatalf("reading report.md: %v", err)
	}

	content := string(data)
	checks := []string{
		"Should we adopt event sourcing?",
		"The Visionary",
		"(wildcard)",
		"Round 1: Pitch",
		"Round 5: Consensus",
		"Confidence: 85/100",
		"The panel leans in favor.",
	}
	for _, check := range checks {
		if !strings.Contains(content, check) {
			t.Errorf("report.md does not contain %q", check)
		}
	}
}

func TestWriteLog(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	w.Log("round 1 started")
	w.Log("wildcard challenge issued")

	if err := w.WriteLog(); err != nil {
		t.Fatalf("WriteLog() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "debate.log"))
	if err != nil {
		t.Fatalf("reading debate.log: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "round 1 started") {
		t.Error("debate.log missing log entry")
	}
	if !strings.Contains(content, "wildcard challenge issued") {
		t.Error("debate.log missing log entry")
	}
}
