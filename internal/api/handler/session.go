package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Jeet1511/EliteZero/internal/api/response"
	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/play"
	"github.com/Jeet1511/EliteZero/internal/services/session"
)

// SessionHandler exposes live sessions to operators
type SessionHandler struct {
	sessions *session.Store
	play     *play.Controller
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Store, controller *play.Controller) *SessionHandler {
	return &SessionHandler{sessions: sessions, play: controller}
}

// List handles GET /sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.sessions.ListSessions(r.Context())
	out := make([]response.Session, len(list))
	for i, s := range list {
		out[i] = response.SessionFromModel(s)
	}
	response.JSON(w, http.StatusOK, out)
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	s, err := h.sessions.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// End handles DELETE /sessions/{id}
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	if err := h.play.ForceEnd(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
