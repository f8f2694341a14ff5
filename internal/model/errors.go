package model

import "errors"

// Common errors used across the application
var (
	// Roster errors
	ErrTeamNotFound = errors.New("team not found")
	ErrNameTaken    = errors.New("team name already taken")
	ErrGameFull     = errors.New("team capacity reached")
	ErrInvalidInput = errors.New("invalid input")

	// Round errors
	ErrRoundNotFound      = errors.New("round not found")
	ErrWrongRound         = errors.New("submission is not for the current round")
	ErrRoundClosed        = errors.New("round is locked")
	ErrInvalidChoice      = errors.New("choice must be cooperate or selfish")
	ErrRoundNotSettled    = errors.New("round has not been settled")
	ErrGameNotFinished    = errors.New("final round has not been settled")
	ErrGameNotInitialized = errors.New("game has not started")
)
