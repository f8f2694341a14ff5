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
		Use:   "round2",
		Short: "CLI tool for the round settlement game API",
		Long: `round2 is a CLI tool for playing the cooperate-or-selfish round game.

It supports joining the game, submitting round choices, polling round
results, and the passphrase-gated operator commands.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load team ID from file if not provided via flag/env
			if err := cfg.LoadTeamID(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.AdminPassphrase)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: ROUND2_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.TeamID, "team", cfg.TeamID, "Team ID (env: ROUND2_TEAM_ID)")
	rootCmd.PersistentFlags().StringVar(&cfg.TeamFile, "team-file", cfg.TeamFile, "Team ID file path (env: ROUND2_TEAM_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminPassphrase, "admin-passphrase", cfg.AdminPassphrase, "Admin passphrase (env: ROUND2_ADMIN_PASSPHRASE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newJoinCmd())
	rootCmd.AddCommand(newSubmitCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newStateCmd())
	rootCmd.AddCommand(newScoreboardCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
