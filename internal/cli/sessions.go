package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/Jeet1511/EliteZero/internal/api/response"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List live game sessions (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Session
			if err := client.Get("/api/v1/sessions", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "end <session-id>",
		Short: "Force-end a session (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/sessions/" + url.PathEscape(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Session " + args[0] + " ended")
			return nil
		},
	})

	return cmd
}
