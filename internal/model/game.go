package model

// GameState tracks the active round pointer for the session.
//
// CurrentRound starts at 1, advances by exactly 1 each time a round locks,
// and caps at the final round. Finished becomes true when the final round
// locks; the round pointer never moves past the final round.
type GameState struct {
	CurrentRound int
	Finished     bool
}

// NewGameState returns the initial game state
func NewGameState() *GameState {
	return &GameState{CurrentRound: 1}
}
