package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Jeet1511/EliteZero/internal/services/session"
	"github.com/Jeet1511/EliteZero/internal/services/stats"
	"github.com/Jeet1511/EliteZero/internal/web/handler"
	"github.com/Jeet1511/EliteZero/internal/web/middleware"
	"github.com/Jeet1511/EliteZero/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	StatsEngine *stats.Engine
	Sessions    *session.Store
	HubManager  *sse.HubManager
	StaticDir   string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Logging is outermost so recovered panics are logged with their 500
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	// Create SSE hub manager if not provided
	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler(cfg.StatsEngine, cfg.Logger)
	sessionHandler := handler.NewSessionHandler(cfg.Sessions, hubManager, cfg.Logger)

	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/events", sessionHandler.Events).Methods(http.MethodGet)

	return r
}
