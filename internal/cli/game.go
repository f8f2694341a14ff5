package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <team-name> <member>...",
		Short: "Register a team and save its ID for later commands",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"team_name": args[0],
				"members":   args[1:],
			}
			var result JoinResult

			if err := client.Post("/api/round2/join", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveTeamID(result.TeamID); err != nil {
				return fmt.Errorf("joined but could not save team ID: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <round> <cooperate|selfish>",
		Short: "Submit your team's choice for the round",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid round number: %w", err)
			}

			if cfg.TeamID == "" {
				return fmt.Errorf("no team ID: join first or pass --team")
			}

			req := map[string]any{
				"team_id":      cfg.TeamID,
				"round_number": round,
				"choice":       args[1],
			}
			var result SubmitResult

			if err := client.Post("/api/round2/submit", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <round>",
		Short: "Get your team's view of a round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			round, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid round number: %w", err)
			}

			if cfg.TeamID == "" {
				return fmt.Errorf("no team ID: join first or pass --team")
			}

			var result RoundStatus

			path := fmt.Sprintf("/api/round2/rounds/%d/status?team_id=%s", round, cfg.TeamID)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Get the current game state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Get("/api/round2/state", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newScoreboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scoreboard",
		Short: "Get the ranked scoreboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Scoreboard

			if err := client.Get("/api/round2/scoreboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
