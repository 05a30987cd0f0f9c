package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/session"
	"github.com/Jeet1511/EliteZero/internal/web/sse"
)

// SessionHandler streams a live game to spectators
type SessionHandler struct {
	sessions   *session.Store
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions *session.Store, hubManager *sse.HubManager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, hubManager: hubManager, logger: logger}
}

// Events handles GET /sessions/{id}/events
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	sess, err := h.sessions.GetSession(r.Context(), id)
	if errors.Is(err, model.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load session", slog.String("session_id", string(id)), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if sess.State == model.SessionFinished {
		http.Error(w, "Game is over", http.StatusGone)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, r.RemoteAddr)
}
