package response

import (
	"time"

	"github.com/darknight08zz/protocol456/internal/model"
)

// Join is the response for a successful team registration
type Join struct {
	TeamID       string `json:"team_id"`
	TeamName     string `json:"team_name"`
	CurrentRound int    `json:"current_round"`
}

// JoinFromModel builds a Join response
func JoinFromModel(team *model.Team, state *model.GameState) Join {
	return Join{
		TeamID:       string(team.ID),
		TeamName:     team.Name,
		CurrentRound: state.CurrentRound,
	}
}

// Submit is the response for a choice submission
type Submit struct {
	Status      string `json:"status"`
	RoundNumber int    `json:"round_number"`
}

// RoundStatus is the per-team round view. The result fields are present
// only once the round is complete.
type RoundStatus struct {
	Status          string `json:"status"`
	PointsThisRound *int   `json:"points_this_round,omitempty"`
	TotalScore      *int   `json:"total_score,omitempty"`
	SelfishCount    *int   `json:"selfish_count,omitempty"`
	ShowScore       *bool  `json:"show_score,omitempty"`
}

// RoundStatusFromModel converts model.RoundStatus
func RoundStatusFromModel(s *model.RoundStatus) RoundStatus {
	resp := RoundStatus{Status: string(s.Status)}
	if s.Status == model.RoundStatusComplete {
		points := s.PointsThisRound
		total := s.TotalScore
		selfish := s.SelfishCount
		show := s.ShowScore
		resp.PointsThisRound = &points
		resp.TotalScore = &total
		resp.SelfishCount = &selfish
		resp.ShowScore = &show
	}
	return resp
}

// GameState is the current-round probe response
type GameState struct {
	CurrentRound int  `json:"current_round"`
	Finished     bool `json:"finished"`
}

// GameStateFromModel converts model.GameState
func GameStateFromModel(s *model.GameState) GameState {
	return GameState{
		CurrentRound: s.CurrentRound,
		Finished:     s.Finished,
	}
}

// ScoreEntry is one row of the scoreboard
type ScoreEntry struct {
	TeamID     string `json:"team_id"`
	TeamName   string `json:"team_name"`
	TotalScore int    `json:"total_score"`
}

// Scoreboard is the ranked score listing
type Scoreboard struct {
	Entries []ScoreEntry `json:"entries"`
}

// ScoreboardFromModel converts a slice of model.ScoreEntry
func ScoreboardFromModel(entries []model.ScoreEntry) Scoreboard {
	out := make([]ScoreEntry, len(entries))
	for i, e := range entries {
		out[i] = ScoreEntry{
			TeamID:     string(e.TeamID),
			TeamName:   e.TeamName,
			TotalScore: e.TotalScore,
		}
	}
	return Scoreboard{Entries: out}
}

// Team is the operator view of a registered team
type Team struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Members    []string  `json:"members"`
	JoinedAt   time.Time `json:"joined_at"`
	TotalScore int       `json:"total_score"`
}

// TeamFromModel builds the operator team view
func TeamFromModel(t *model.Team, totalScore int) Team {
	return Team{
		ID:         string(t.ID),
		Name:       t.Name,
		Members:    t.Members,
		JoinedAt:   t.JoinedAt,
		TotalScore: totalScore,
	}
}

// TeamList wraps the operator team listing
type TeamList struct {
	Teams []Team `json:"teams"`
}

// Reset acknowledges an administrative reset
type Reset struct {
	Success bool `json:"success"`
}
