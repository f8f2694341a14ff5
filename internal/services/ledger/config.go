package ledger

import "time"

// Config holds the fixed game parameters for the session
type Config struct {
	// TotalTeams is the capacity bound N; it is also the totalTeams input
	// to the payoff calculation.
	TotalTeams int

	// TotalRounds is the number of rounds in the game.
	TotalRounds int

	// RoundTimeout is the wall-clock budget per round, measured from the
	// round's StartedAt. A round with fewer than TotalTeams submissions
	// still settles once the budget elapses.
	RoundTimeout time.Duration

	// ScoreVisibleRounds is the last round number for which status views
	// carry show_score=true. Totals are still computed past this point;
	// concealment is a display rule.
	ScoreVisibleRounds int
}

// DefaultConfig returns the parameters used at the live event
func DefaultConfig() Config {
	return Config{
		TotalTeams:         10,
		TotalRounds:        10,
		RoundTimeout:       120 * time.Second,
		ScoreVisibleRounds: 5,
	}
}
