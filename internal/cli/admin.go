package cli

import (
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Operator commands (passphrase required)",
	}

	cmd.AddCommand(newAdminResetCmd())
	cmd.AddCommand(newAdminTeamsCmd())

	return cmd
}

func newAdminResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the game: clears all teams, rounds and scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ResetResult

			if err := client.Post("/api/round2/admin/reset", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List all registered teams with members and scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TeamList

			if err := client.Get("/api/round2/admin/teams", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
