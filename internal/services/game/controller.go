package game

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/darknight08zz/protocol456/internal/model"
	"github.com/darknight08zz/protocol456/internal/services/ledger"
	"github.com/darknight08zz/protocol456/internal/services/roster"
	"github.com/darknight08zz/protocol456/internal/storage"
)

// Controller orchestrates the game session: round sequencing, the timeout
// sweep, the scoreboard, and administrative reset. All round mutation goes
// through the ledger; the controller never locks a round itself.
type Controller struct {
	storage storage.Storage
	roster  *roster.Service
	ledger  *ledger.Service
	logger  *slog.Logger
}

// NewController creates a new game controller
func NewController(store storage.Storage, rosterService *roster.Service, ledgerService *ledger.Service, logger *slog.Logger) *Controller {
	return &Controller{
		storage: store,
		roster:  rosterService,
		ledger:  ledgerService,
		logger:  logger,
	}
}

// GetState returns the current game state. Before the first team joins the
// game reports round 1, matching what the first joiner will see.
func (c *Controller) GetState(ctx context.Context) (*model.GameState, error) {
	state, err := c.storage.GetGameState(ctx)
	if errors.Is(err, model.ErrGameNotInitialized) {
		return model.NewGameState(), nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Scoreboard returns all teams sorted by total score descending, ties
// broken by join order for determinism.
func (c *Controller) Scoreboard(ctx context.Context) ([]model.ScoreEntry, error) {
	teams, err := c.roster.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	scores, err := c.storage.GetScores(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.ScoreEntry, 0, len(teams))
	for _, team := range teams {
		entries = append(entries, model.ScoreEntry{
			TeamID:     team.ID,
			TeamName:   team.Name,
			TotalScore: scores[team.ID],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalScore > entries[j].TotalScore
	})

	return entries, nil
}

// FinalScoreboard returns the scoreboard once the final round has locked;
// before that it fails with ErrGameNotFinished.
func (c *Controller) FinalScoreboard(ctx context.Context) ([]model.ScoreEntry, error) {
	state, err := c.GetState(ctx)
	if err != nil {
		return nil, err
	}
	if !state.Finished {
		return nil, model.ErrGameNotFinished
	}
	return c.Scoreboard(ctx)
}

// ResetGame destroys all teams, rounds and scores and returns the session
// to its pre-join state. Operator use only, between sessions.
func (c *Controller) ResetGame(ctx context.Context) error {
	if err := c.storage.ResetGame(ctx); err != nil {
		return err
	}
	c.logger.Warn("game reset: all teams, rounds and scores cleared")
	return nil
}

// SweepCurrentRound runs the completion check on the active round. This is
// the timeout path for rounds nobody is polling: an expired round settles
// here with whatever choices it has.
func (c *Controller) SweepCurrentRound(ctx context.Context) error {
	state, err := c.storage.GetGameState(ctx)
	if errors.Is(err, model.ErrGameNotInitialized) {
		return nil
	}
	if err != nil {
		return err
	}
	if state.Finished {
		return nil
	}

	_, err = c.ledger.CheckAndSettle(ctx, state.CurrentRound)
	return err
}

// RunSweeper periodically sweeps the current round until ctx is cancelled
func (c *Controller) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.logger.Info("round sweeper started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("round sweeper stopped")
			return
		case <-ticker.C:
			if err := c.SweepCurrentRound(ctx); err != nil {
				c.logger.Warn("round sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}
