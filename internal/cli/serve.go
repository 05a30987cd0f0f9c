package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Jeet1511/EliteZero/internal/api"
	"github.com/Jeet1511/EliteZero/internal/config"
	"github.com/Jeet1511/EliteZero/internal/discord"
	"github.com/Jeet1511/EliteZero/internal/factory"
	"github.com/Jeet1511/EliteZero/internal/scheduler"
	"github.com/Jeet1511/EliteZero/internal/web"
)

func newServeCmd() *cobra.Command {
	var noDiscord bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Discord bot, admin API and web leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), noDiscord)
		},
	}

	cmd.Flags().BoolVar(&noDiscord, "no-discord", false, "Serve HTTP only, without connecting to Discord")

	return cmd
}

func serve(parent context.Context, noDiscord bool) error {
	settings, err := config.Load(cfg.EnvFile)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: settings.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := factory.New(ctx, factoryConfig(settings, logger))
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
		}
	}()

	jobs, err := scheduler.New(app.Jobs(), logger)
	if err != nil {
		return err
	}
	jobs.Start()
	defer func() { _ = jobs.Shutdown() }()

	if !noDiscord {
		bot, err := discord.New(discord.Config{Token: settings.DiscordToken, GuildID: settings.DiscordGuildID}, discord.Deps{
			Play:     app.Play,
			Sessions: app.Sessions,
			Stats:    app.StatsEngine,
			Chat:     app.Chatbot,
		}, logger)
		if err != nil {
			return err
		}
		app.Play.SetNotifier(bot)
		if err := bot.Start(); err != nil {
			return err
		}
		defer func() { _ = bot.Stop() }()
	}

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		StatsEngine:    app.StatsEngine,
		History:        app.History,
		Sessions:       app.Sessions,
		Play:           app.Play,
		AdminTokenHash: settings.AdminTokenHash,
	})
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		StatsEngine: app.StatsEngine,
		Sessions:    app.Sessions,
		HubManager:  app.HubManager,
		StaticDir:   findStaticDir(),
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	serverConfig := api.DefaultServerConfig()
	serverConfig.Addr = settings.HTTPAddr
	server := api.NewServer(mux, serverConfig, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		app.HubManager.CloseAll()
		return server.Shutdown(context.Background())
	}
}

// findStaticDir returns the static files directory, or "" when there is none
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}
