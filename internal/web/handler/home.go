package handler

import (
	"log/slog"
	"net/http"

	"github.com/gosimple/slug"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/stats"
	"github.com/Jeet1511/EliteZero/internal/web/templates/layout"
	"github.com/Jeet1511/EliteZero/internal/web/templates/pages"
)

// boardSize is how many rows each leaderboard table shows
const boardSize = 10

// HomeHandler handles the leaderboard page
type HomeHandler struct {
	stats  *stats.Engine
	logger *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(engine *stats.Engine, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{stats: engine, logger: logger}
}

// Home renders the overall leaderboard and one board per game
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.LeaderboardData{
		PageData: layout.PageData{Title: "Leaderboard"},
		Overall: pages.Board{
			Anchor:     "overall",
			Title:      "Overall",
			ValueLabel: "Points",
			Entries:    h.stats.OverallLeaderboard(boardSize),
		},
	}
	for _, g := range model.AllGameTypes() {
		entries, err := h.stats.Leaderboard(g, boardSize)
		if err != nil {
			h.logger.Error("failed to rank game", slog.String("game_type", string(g)), slog.String("error", err.Error()))
			continue
		}
		info := g.Info()
		data.Games = append(data.Games, pages.Board{
			Anchor:     slug.Make(info.Name),
			Title:      info.Icon + " " + info.Name,
			ValueLabel: stats.ValueLabel(g),
			Entries:    entries,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Leaderboard(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
