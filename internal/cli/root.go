package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "elitezero",
		Short: "EliteZero Discord game bot",
		Long: `elitezero runs the EliteZero Discord mini-game bot and talks to its
admin API.

"elitezero serve" starts the bot, the admin API and the web leaderboard.
The other commands query a running server or run offline simulations.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			client = NewClient(cfg.ServerURL, cfg.Token)
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: ELITEZERO_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Admin bearer token (env: ELITEZERO_ADMIN_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "Environment file loaded before reading settings")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newFlushCmd())
	rootCmd.AddCommand(newSessionsCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newHashTokenCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
