package httpapi

import (
	"net/http"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lorenzotomasdiez/debate-arena/internal/debate"
	"github.com/lorenzotomasdiez/debate-arena/internal/session"
)

const (
	topicMinLen = 10
	topicMaxLen = 1000
)

type createSessionRequest struct {
	Topic    string           `json:"topic"`
	Contexts []debate.Context `json:"contexts"`
}

type createSessionResponse struct {
	SessionID string         `json:"sessionId"`
	Status    session.Status `json:"status"`
}

// CreateSession creates an idle session and starts orchestration in the
// background. The 201 response never waits for the debate.
// POST /api/sessions
func (h *Handler) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if n := utf8.RuneCountInString(req.Topic); n < topicMinLen {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "topic must be at least 10 characters"})
	} else if n > topicMaxLen {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "topic must be at most 1000 characters"})
	}

	sess := session.New(req.Topic, req.Contexts)
	h.store.Put(sess)
	h.logger.Info("session created",
		zap.String("session_id", sess.ID),
		zap.Int("contexts", len(req.Contexts)))

	err := c.JSON(http.StatusCreated, createSessionResponse{SessionID: sess.ID, Status: sess.Status})
	if h.start != nil {
		h.start(sess.ID)
	}
	return err
}

// GetSession returns the current session snapshot.
// GET /api/sessions/:session_id
func (h *Handler) GetSession(c echo.Context) error {
	sess, ok := h.store.Get(c.Param("session_id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}
	return c.JSON(http.StatusOK, sess)
}
