package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Jeet1511/EliteZero/internal/api/handler"
	"github.com/Jeet1511/EliteZero/internal/api/middleware"
	"github.com/Jeet1511/EliteZero/internal/services/play"
	"github.com/Jeet1511/EliteZero/internal/services/session"
	"github.com/Jeet1511/EliteZero/internal/services/stats"
	"github.com/Jeet1511/EliteZero/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	StatsEngine *stats.Engine
	History     storage.HistoryStore
	Sessions    *session.Store
	Play        *play.Controller
	// AdminTokenHash is the bcrypt hash guarding operator routes.
	// Empty disables them.
	AdminTokenHash string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	statsHandler := handler.NewStatsHandler(cfg.StatsEngine, cfg.History)
	sessionHandler := handler.NewSessionHandler(cfg.Sessions, cfg.Play)

	api := r.PathPrefix("/api/v1").Subrouter()
	// Logging is outermost so recovered panics are logged with their 500
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Recovery(cfg.Logger))

	// Public read-only routes
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/stats/{userID}", statsHandler.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/stats/{userID}/matches", statsHandler.GetMatches).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", statsHandler.GetLeaderboard).Methods(http.MethodGet)
	api.HandleFunc("/achievements", statsHandler.ListAchievements).Methods(http.MethodGet)

	// Operator routes
	admin := api.NewRoute().Subrouter()
	admin.Use(middleware.AdminAuth(cfg.AdminTokenHash))
	admin.HandleFunc("/stats/flush", statsHandler.Flush).Methods(http.MethodPost)
	admin.HandleFunc("/sessions", sessionHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/sessions/{id}", sessionHandler.End).Methods(http.MethodDelete)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
