package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Jeet1511/EliteZero/internal/api/response"
)

func newStatsCmd() *cobra.Command {
	var matches bool
	var limit int

	cmd := &cobra.Command{
		Use:   "stats <user-id>",
		Short: "Show a user's stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			path := "/api/v1/stats/" + url.PathEscape(args[0])

			if matches {
				var result []response.Match
				if err := client.Get(fmt.Sprintf("%s/matches?limit=%d", path, limit), &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result response.UserStats
			if err := client.Get(path, &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&matches, "matches", false, "Show recent matches instead of totals")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of matches to show")

	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	var game string
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the overall or a per-game leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))
			if game != "" {
				q.Set("game", game)
			}

			var result response.Leaderboard
			if err := client.Get("/api/v1/leaderboard?"+q.Encode(), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&game, "game", "", "Game type (default: overall)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of entries")

	return cmd
}

func newFlushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Persist pending stats changes now (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/stats/flush", nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Stats flushed")
			return nil
		},
	}
}
