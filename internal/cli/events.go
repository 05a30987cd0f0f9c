package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Jeet1511/EliteZero/internal/config"
	"github.com/Jeet1511/EliteZero/internal/events"
	"github.com/Jeet1511/EliteZero/internal/model"
)

func newEventsCmd() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail game events from Kafka",
		Long: `Consume the game event topic and print each event as it arrives.

Brokers and topic come from KAFKA_BROKERS and KAFKA_TOPIC.

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(cfg.EnvFile)
			if err != nil {
				return err
			}
			if len(settings.KafkaBrokers) == 0 {
				return errors.New("KAFKA_BROKERS is not set")
			}

			kafka := events.DefaultConfig()
			kafka.Brokers = settings.KafkaBrokers
			kafka.Topic = settings.KafkaTopic

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
			jsonOutput := cfg.Output == "json"
			return events.Tail(ctx, kafka, group, func(e model.Event) { printGameEvent(e, jsonOutput) }, logger)
		},
	}

	cmd.Flags().StringVar(&group, "group", "elitezero-cli", "Consumer group")

	return cmd
}

func printGameEvent(e model.Event, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(e)
		fmt.Println(string(data))
		return
	}

	line := fmt.Sprintf("[%s] %s %s session=%s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Type, e.GameType, e.SessionID)
	if e.PlayerID != "" {
		line += " player=" + string(e.PlayerID)
	}
	fmt.Println(line)
}
