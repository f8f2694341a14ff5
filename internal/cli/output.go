package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case JoinResult:
		o.printJoinResult(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case RoundStatus:
		o.printRoundStatus(v)
	case GameState:
		o.printGameState(v)
	case Scoreboard:
		o.printScoreboard(v)
	case TeamList:
		o.printTeamList(v)
	case ResetResult:
		o.printResetResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// JoinResult response type (matches API)
type JoinResult struct {
	TeamID       string `json:"team_id"`
	TeamName     string `json:"team_name"`
	CurrentRound int    `json:"current_round"`
}

// SubmitResult response type
type SubmitResult struct {
	Status      string `json:"status"`
	RoundNumber int    `json:"round_number"`
}

// RoundStatus response type
type RoundStatus struct {
	Status          string `json:"status"`
	PointsThisRound *int   `json:"points_this_round,omitempty"`
	TotalScore      *int   `json:"total_score,omitempty"`
	SelfishCount    *int   `json:"selfish_count,omitempty"`
	ShowScore       *bool  `json:"show_score,omitempty"`
}

// GameState response type
type GameState struct {
	CurrentRound int  `json:"current_round"`
	Finished     bool `json:"finished"`
}

// ScoreEntry response type
type ScoreEntry struct {
	TeamID     string `json:"team_id"`
	TeamName   string `json:"team_name"`
	TotalScore int    `json:"total_score"`
}

// Scoreboard response type
type Scoreboard struct {
	Entries []ScoreEntry `json:"entries"`
}

// Team response type (operator view)
type Team struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Members    []string  `json:"members"`
	JoinedAt   time.Time `json:"joined_at"`
	TotalScore int       `json:"total_score"`
}

// TeamList response type
type TeamList struct {
	Teams []Team `json:"teams"`
}

// ResetResult response type
type ResetResult struct {
	Success bool `json:"success"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Printf("Team: %s (%s)\n", j.TeamName, j.TeamID)
	fmt.Printf("Current Round: %d\n", j.CurrentRound)
}

func (o *Output) printSubmitResult(s SubmitResult) {
	if s.Status == "already_submitted" {
		fmt.Printf("Round %d: choice was already recorded, kept the original\n", s.RoundNumber)
	} else {
		fmt.Printf("Round %d: choice submitted\n", s.RoundNumber)
	}
}

func (o *Output) printRoundStatus(r RoundStatus) {
	fmt.Printf("Status: %s\n", r.Status)

	if r.Status != "complete" {
		return
	}

	if r.PointsThisRound != nil {
		fmt.Printf("Points This Round: %d\n", *r.PointsThisRound)
	}
	if r.SelfishCount != nil {
		fmt.Printf("Selfish Teams: %d\n", *r.SelfishCount)
	}
	if r.ShowScore != nil && *r.ShowScore && r.TotalScore != nil {
		fmt.Printf("Total Score: %d\n", *r.TotalScore)
	}
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Current Round: %d\n", g.CurrentRound)
	if g.Finished {
		fmt.Println("Game: finished")
	} else {
		fmt.Println("Game: in progress")
	}
}

func (o *Output) printScoreboard(s Scoreboard) {
	fmt.Printf("Scoreboard (%d teams):\n", len(s.Entries))
	for i, e := range s.Entries {
		fmt.Printf("  %d. %s - %d points\n", i+1, e.TeamName, e.TotalScore)
	}
}

func (o *Output) printTeamList(t TeamList) {
	fmt.Printf("Teams (%d):\n", len(t.Teams))
	for _, team := range t.Teams {
		fmt.Printf("  - %s (%s) - %d points\n", team.Name, team.ID, team.TotalScore)
		if len(team.Members) > 0 {
			fmt.Printf("    Members: %s\n", strings.Join(team.Members, ", "))
		}
	}
}

func (o *Output) printResetResult(r ResetResult) {
	if r.Success {
		fmt.Println("Game reset")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
