package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lorenzotomasdiez/debate-arena/internal/session"
)

// sseWriter serializes event frames onto one response. Live events are
// published from orchestrator goroutines while the snapshot replay runs
// on the request goroutine, so every write takes the lock.
type sseWriter struct {
	mu  sync.Mutex
	res *echo.Response
}

func (w *sseWriter) send(event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.res, "event: %s\ndata: %s\n\n", event, payload)
	w.res.Flush()
}

// StreamSession streams session events over SSE. The response opens
// with a snapshot replay of everything the session already holds, then
// forwards live events until the client disconnects.
// GET /api/sessions/:session_id/stream
func (h *Handler) StreamSession(c echo.Context) error {
	sessionID := c.Param("session_id")
	sess, ok := h.store.Get(sessionID)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	w := &sseWriter{res: res}

	w.send("status", session.StatusData{Status: sess.Status})
	if len(sess.Contexts) > 0 {
		w.send("contexts", sess.Contexts)
	}
	if len(sess.Participants) > 0 {
		w.send("participants", sess.Participants)
	}
	for _, msg := range sess.Debate {
		w.send("debate_message", msg)
	}
	if sess.Conclusion != "" {
		w.send("conclusion", session.ConclusionData{Conclusion: sess.Conclusion})
	}

	unsubscribe := h.store.Subscribe(sessionID, w.send)
	defer unsubscribe()

	h.logger.Info("stream opened", zap.String("session_id", sessionID))
	<-c.Request().Context().Done()
	h.logger.Info("stream closed", zap.String("session_id", sessionID))
	return nil
}
