package storage

import (
	"context"
	"errors"

	"github.com/darknight08zz/protocol456/internal/model"
)

// Optimistic-concurrency errors returned by the conditional write operations.
// Callers that receive ErrConflict should re-read and retry; callers that
// receive ErrRoundAlreadyLocked lost the settlement race and should observe
// the winner's result instead of retrying.
var (
	ErrConflict           = errors.New("record was modified concurrently")
	ErrRoundAlreadyLocked = errors.New("round is already locked")
)

// Storage defines the interface for data persistence.
//
// Backends must make CreateTeam, UpdateRound and ApplySettlement atomic:
// they are the only mutation paths, and ApplySettlement carries the
// exactly-once settlement guarantee for the whole engine.
type Storage interface {
	// Team operations. CreateTeam enforces the name-uniqueness and capacity
	// constraints atomically. ListTeams returns teams in join order.
	CreateTeam(ctx context.Context, team *model.Team, capacity int) error
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	ListTeams(ctx context.Context) ([]*model.Team, error)
	CountTeams(ctx context.Context) (int, error)

	// Score ledger operations. Scores are written only by ApplySettlement.
	GetScore(ctx context.Context, id model.TeamID) (int, error)
	GetScores(ctx context.Context) (map[model.TeamID]int, error)

	// Round operations. UpdateRound applies fn to a copy of the stored round
	// and persists the result only if the stored round is unchanged in the
	// meantime; if fn returns an error nothing is written and the error is
	// passed through along with the current round.
	GetRound(ctx context.Context, number int) (*model.Round, error)
	UpdateRound(ctx context.Context, number int, fn func(*model.Round) error) (*model.Round, error)

	// Game state operations. InitGameState creates the state and first round
	// if and only if no game exists yet; it is safe to call repeatedly.
	GetGameState(ctx context.Context) (*model.GameState, error)
	InitGameState(ctx context.Context, state *model.GameState, firstRound *model.Round) error

	// ApplySettlement atomically writes the settled round, adds its points to
	// the team score ledger, stores the advanced game state, and creates the
	// next round record (nil after the final round). The write succeeds only
	// if the stored round is still unlocked and at the version the settled
	// round was read at; otherwise ErrRoundAlreadyLocked or ErrConflict
	// is returned and nothing is applied.
	ApplySettlement(ctx context.Context, settled *model.Round, next *model.Round, state *model.GameState) error

	// ResetGame destroys all teams, rounds, scores and game state.
	ResetGame(ctx context.Context) error
}
