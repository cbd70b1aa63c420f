package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzotomasdiez/debate-arena/internal/debate"
	"github.com/lorenzotomasdiez/debate-arena/internal/httpapi"
	"github.com/lorenzotomasdiez/debate-arena/internal/session"
)

func newTestHandler() (*httpapi.Handler, *session.MemoryStore, *[]string) {
	store := session.NewMemoryStore()
	started := []string{}
	h := httpapi.NewHandler(store, func(sessionID string) {
		started = append(started, sessionID)
	})
	return h, store, &started
}

func TestCreateSession(t *testing.T) {
	e := echo.New()
	h, store, started := newTestHandler()

	body := `{"topic":"Should we rewrite the billing system in a new language?"}`
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateSession(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		SessionID string `json:"sessionId"`
		Status    string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.SessionID, "session-"))
	assert.Equal(t, "idle", resp.Status)

	sess, ok := store.Get(resp.SessionID)
	require.True(t, ok)
	assert.Equal(t, "Should we rewrite the billing system in a new language?", sess.Topic)

	require.Len(t, *started, 1)
	assert.Equal(t, resp.SessionID, (*started)[0])
}

func TestCreateSessionWithContexts(t *testing.T) {
	e := echo.New()
	h, store, _ := newTestHandler()

	body := `{"topic":"Should we adopt event sourcing?","contexts":[{"title":"Prior art","url":"https://example.com","snippet":"A write-up."}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateSession(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	sess, ok := store.Get(resp.SessionID)
	require.True(t, ok)
	require.Len(t, sess.Contexts, 1)
	assert.Equal(t, "Prior art", sess.Contexts[0].Title)
}

func TestCreateSessionValidation(t *testing.T) {
	e := echo.New()
	h, _, started := newTestHandler()

	cases := []struct {
		name string
		body string
	}{
		{"too short", `{"topic":"short"}`},
		{"too long", `{"topic":"` + strings.Repeat("x", 1001) + `"}`},
		{"missing topic", `{}`},
		{"malformed json", `{"topic":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, h.CreateSession(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Empty(t, *started, "validation failures must not start orchestration")
}

func TestGetSession(t *testing.T) {
	e := echo.New()
	h, store, _ := newTestHandler()

	sess := session.New("Should we adopt a monorepo layout?", nil)
	store.Put(sess)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+sess.ID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues(sess.ID)

	require.NoError(t, h.GetSession(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got session.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Topic, got.Topic)
	assert.Equal(t, session.StatusIdle, got.Status)
}

func TestGetSessionNotFound(t *testing.T) {
	e := echo.New()
	h, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/session-unknown", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("session-unknown")

	require.NoError(t, h.GetSession(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIndex(t *testing.T) {
	e := echo.New()
	h, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Index(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "POST /api/sessions")
}

func TestStreamNotFound(t *testing.T) {
	e := echo.New()
	h, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/session-unknown/stream", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("session-unknown")

	require.NoError(t, h.StreamSession(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStreamReplaysSnapshot(t *testing.T) {
	e := echo.New()
	h, store, _ := newTestHandler()

	sess := session.New("Should we adopt a service mesh?", []debate.Context{{Title: "Prior art", Snippet: "A write-up."}})
	sess.Status = session.StatusComplete
	sess.Participants = []debate.RosterEntry{{PersonaID: "visionary", Role: "The Visionary"}}
	sess.Debate = []debate.Message{{ID: "debate-1", Role: "The Visionary", Round: debate.RoundPitch, Content: "Opening pitch."}}
	sess.Conclusion = "The panel leans in favor."
	store.Put(sess)

	// The request context is already canceled, so the handler returns
	// right after the replay.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+sess.ID+"/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues(sess.ID)

	require.NoError(t, h.StreamSession(c))
	assert.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: status\ndata: {\"status\":\"complete\"}")
	assert.Contains(t, body, "event: contexts\n")
	assert.Contains(t, body, "event: participants\n")
	assert.Contains(t, body, "event: debate_message\n")
	assert.Contains(t, body, "Opening pitch.")
	assert.Contains(t, body, "event: conclusion\ndata: {\"conclusion\":\"The panel leans in favor.\"}")
}

// signalStore closes subscribed once a stream subscriber is registered,
// so tests can publish live events without racing the handler.
type signalStore struct {
	*session.MemoryStore
	subscribed chan struct{}
}

func (s *signalStore) Subscribe(id string, fn session.SubscriberFunc) func() {
	unsubscribe := s.MemoryStore.Subscribe(id, fn)
	close(s.subscribed)
	return unsubscribe
}

func TestStreamForwardsLiveEvents(t *testing.T) {
	e := echo.New()
	store := &signalStore{MemoryStore: session.NewMemoryStore(), subscribed: make(chan struct{})}
	h := httpapi.NewHandler(store, nil)

	sess := session.New("Should we adopt a service mesh?", nil)
	store.Put(sess)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+sess.ID+"/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues(sess.ID)

	done := make(chan error, 1)
	go func() { done <- h.StreamSession(c) }()

	select {
	case <-store.subscribed:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never subscribed")
	}

	store.Publish(sess.ID, "status", session.StatusData{Status: session.StatusDebating})
	store.Publish(sess.ID, "orchestrator_error", debate.ErrorData{Error: "gateway down"})
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after disconnect")
	}

	body := rec.Body.String()
	assert.Contains(t, body, "event: status\ndata: {\"status\":\"debating\"}")
	assert.Contains(t, body, "event: orchestrator_error\ndata: {\"error\":\"gateway down\"}")
}
