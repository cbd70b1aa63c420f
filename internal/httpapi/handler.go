// Package httpapi provides the HTTP surface for the debate arena:
// session creation, snapshot reads, and the SSE event stream.
package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lorenzotomasdiez/debate-arena/internal/session"
)

// StartFunc launches orchestration for a freshly created session. The
// server wires it to the orchestrator; tests substitute a recorder.
type StartFunc func(sessionID string)

// Handler handles HTTP requests.
type Handler struct {
	store  session.Store
	start  StartFunc
	logger *zap.Logger
}

// NewHandler creates a new handler.
func NewHandler(store session.Store, start StartFunc) *Handler {
	return &Handler{
		store:  store,
		start:  start,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the structured logger.
func (h *Handler) SetLogger(logger *zap.Logger) {
	h.logger = logger
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/sessions", h.CreateSession)
	e.GET("/api/sessions/:session_id", h.GetSession)
	e.GET("/api/sessions/:session_id/stream", h.StreamSession)

	e.GET("/", h.Index)
	e.GET("/health", h.Health)
}

// Index describes the API.
func (h *Handler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"name":    "Debate Arena API",
		"version": "0.1.0",
		"status":  "running",
		"endpoints": map[string]any{
			"health": "GET /health",
			"sessions": map[string]string{
				"create": "POST /api/sessions",
				"get":    "GET /api/sessions/:session_id",
				"stream": "GET /api/sessions/:session_id/stream",
			},
		},
	})
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
