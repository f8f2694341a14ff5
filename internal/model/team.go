package model

import "time"

// TeamID uniquely identifies a team across the system
type TeamID string

// Team represents a registered team in the game session
type Team struct {
	ID       TeamID
	Name     string
	Members  []string // Display names, informational only
	JoinedAt time.Time
}

// ScoreEntry is one row of the scoreboard
type ScoreEntry struct {
	TeamID     TeamID
	TeamName   string
	TotalScore int
}
