package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Jeet1511/EliteZero/internal/dependencies/clock"
	"github.com/Jeet1511/EliteZero/internal/dependencies/random"
	"github.com/Jeet1511/EliteZero/internal/events"
	"github.com/Jeet1511/EliteZero/internal/scheduler"
	"github.com/Jeet1511/EliteZero/internal/services/chatbot"
	"github.com/Jeet1511/EliteZero/internal/services/games"
	"github.com/Jeet1511/EliteZero/internal/services/opponent"
	"github.com/Jeet1511/EliteZero/internal/services/play"
	"github.com/Jeet1511/EliteZero/internal/services/session"
	"github.com/Jeet1511/EliteZero/internal/services/stats"
	"github.com/Jeet1511/EliteZero/internal/storage"
	"github.com/Jeet1511/EliteZero/internal/storage/file"
	"github.com/Jeet1511/EliteZero/internal/storage/memory"
	"github.com/Jeet1511/EliteZero/internal/storage/postgres"
	redisstorage "github.com/Jeet1511/EliteZero/internal/storage/redis"
	"github.com/Jeet1511/EliteZero/internal/storage/snapshot"
	"github.com/Jeet1511/EliteZero/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Stats   storage.StatsStore
	History storage.HistoryStore

	// External dependencies
	Clock     clock.Clock
	Random    random.Random
	Publisher events.Publisher

	// Services
	Opponent    *opponent.Engine
	Registry    *games.Registry
	Sessions    *session.Store
	StatsEngine *stats.Engine
	Play        *play.Controller
	Chatbot     *chatbot.Bot
	HubManager  *sse.HubManager

	closers []func() error
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the stats backend ("memory", "file" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// StatsFile is the JSON snapshot path (required if StorageType is "file")
	StatsFile string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Snapshot mirrors every stats save to a bucket (optional)
	Snapshot *snapshot.Config
	// Postgres archives finished matches (optional). Without it matches are
	// archived in the stats backend when it supports history, else in memory.
	Postgres *postgres.Config
	// Kafka publishes game events (optional)
	Kafka *events.Config
	// OpenAI enables AI chat mode when APIKey is set
	OpenAI chatbot.OpenAIConfig
	// Session overrides the session store timings (optional)
	Session session.Config
}

// New creates a new application with all dependencies wired and the stats
// table loaded
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var closers []func() error
	fail := func(err error) (*App, error) {
		for _, c := range closers {
			_ = c()
		}
		return nil, err
	}

	var (
		statsStore storage.StatsStore
		history    storage.HistoryStore
	)
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}
	switch storageType {
	case StorageTypeMemory:
		mem := memory.New()
		statsStore, history = mem, mem
	case StorageTypeFile:
		if cfg.StatsFile == "" {
			return nil, errors.New("StatsFile required when StorageType is file")
		}
		statsStore, history = file.New(cfg.StatsFile), memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		closers = append(closers, redisStore.Close)
		statsStore, history = redisStore, redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'file' or 'redis'")
	}

	if cfg.Snapshot != nil {
		client, err := snapshot.NewClient(ctx, *cfg.Snapshot)
		if err != nil {
			return fail(err)
		}
		statsStore = snapshot.NewMirror(statsStore, client, *cfg.Snapshot, logger)
	}

	if cfg.Postgres != nil {
		pg, err := postgres.New(ctx, *cfg.Postgres, logger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() error { pg.Close(); return nil })
		history = pg
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka != nil {
		kafka, err := events.NewKafkaPublisher(*cfg.Kafka, logger)
		if err != nil {
			return fail(err)
		}
		publisher = kafka
	}
	closers = append(closers, publisher.Close)

	var responder chatbot.Responder
	if cfg.OpenAI.APIKey != "" {
		responder = chatbot.NewOpenAIResponder(cfg.OpenAI)
	}

	app := newWithDependencies(statsStore, history, publisher, responder, clock.New(), random.New(), cfg.Session, logger)
	app.closers = closers
	if err := app.StatsEngine.Load(ctx); err != nil {
		return fail(err)
	}
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	statsStore storage.StatsStore,
	history storage.HistoryStore,
	publisher events.Publisher,
	responder chatbot.Responder,
	clk clock.Clock,
	rnd random.Random,
	sessionCfg session.Config,
	logger *slog.Logger,
) *App {
	engine := opponent.New(rnd)
	registry := games.NewRegistry()
	sessions := session.NewStore(clk, rnd, sessionCfg, logger)
	statsEngine := stats.NewEngine(statsStore, clk, logger)
	controller := play.NewController(sessions, registry, engine, statsEngine, history, publisher, clk, rnd, logger)
	hubManager := sse.NewHubManager(logger)
	controller.AddObserver(hubManager)
	bot := chatbot.NewBot(clk, rnd, responder, logger)

	return &App{
		Stats:       statsStore,
		History:     history,
		Clock:       clk,
		Random:      rnd,
		Publisher:   publisher,
		Opponent:    engine,
		Registry:    registry,
		Sessions:    sessions,
		StatsEngine: statsEngine,
		Play:        controller,
		Chatbot:     bot,
		HubManager:  hubManager,
	}
}

// Jobs returns the background maintenance jobs
func (a *App) Jobs() []scheduler.Job {
	return []scheduler.Job{
		{
			Name:  "session-sweep",
			Every: a.Sessions.Config().SweepInterval,
			Run: func(ctx context.Context) error {
				a.Sessions.Sweep(ctx)
				a.HubManager.CleanupEmptyHubs()
				return nil
			},
		},
		{
			Name:  "stats-flush",
			Every: scheduler.FlushInterval,
			Run:   a.StatsEngine.Flush,
		},
		{
			Name:  "chat-context-cleanup",
			Every: scheduler.ChatCleanupInterval,
			Run: func(ctx context.Context) error {
				a.Chatbot.ClearOldContexts(ctx)
				return nil
			},
		},
		{
			Name:  "ai-mode-expiry",
			Every: scheduler.AIExpiryInterval,
			Run: func(ctx context.Context) error {
				a.Chatbot.ExpireAI(ctx)
				return nil
			},
		},
	}
}

// Close stops session timers, flushes the stats table and releases external
// connections
func (a *App) Close(ctx context.Context) error {
	a.Sessions.Close()
	errs := []error{a.StatsEngine.Flush(ctx)}
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
