package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Jeet1511/EliteZero/internal/api/request"
	"github.com/Jeet1511/EliteZero/internal/api/response"
	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/stats"
	"github.com/Jeet1511/EliteZero/internal/storage"
)

// achievementsMaxAge is how long clients may cache the fixed achievement list
const achievementsMaxAge = 5 * time.Minute

// StatsHandler serves stats, leaderboards and achievements
type StatsHandler struct {
	engine  *stats.Engine
	history storage.HistoryStore
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(engine *stats.Engine, history storage.HistoryStore) *StatsHandler {
	return &StatsHandler{engine: engine, history: history}
}

// GetUser handles GET /stats/{userID}
func (h *StatsHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := model.PlayerID(mux.Vars(r)["userID"])

	u, err := h.engine.GetStats(userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserStatsFromModel(u))
}

// GetMatches handles GET /stats/{userID}/matches
func (h *StatsHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID := model.PlayerID(mux.Vars(r)["userID"])

	limit, err := request.ParseLimit(r, 10)
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	recs, err := h.history.RecentMatches(r.Context(), userID, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchesFromModel(recs))
}

// GetLeaderboard handles GET /leaderboard
func (h *StatsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	q, err := request.ParseLeaderboardQuery(r)
	if err != nil {
		if errors.Is(err, request.ErrBadLimit) {
			err = NewInvalidRequestError(err.Error())
		}
		WriteError(w, err)
		return
	}

	if q.Game == "" {
		entries := h.engine.OverallLeaderboard(q.Limit)
		response.JSON(w, http.StatusOK, response.LeaderboardFromModel("", "Points", entries))
		return
	}

	entries, err := h.engine.Leaderboard(q.Game, q.Limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(q.Game, stats.ValueLabel(q.Game), entries))
}

// ListAchievements handles GET /achievements
func (h *StatsHandler) ListAchievements(w http.ResponseWriter, _ *http.Request) {
	response.CachedJSON(w, http.StatusOK, response.AchievementsFromModel(h.engine.Achievements()), achievementsMaxAge)
}

// Flush handles POST /stats/flush
func (h *StatsHandler) Flush(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Flush(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
