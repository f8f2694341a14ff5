package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/darknight08zz/protocol456/internal/dependencies/clock"
	"github.com/darknight08zz/protocol456/internal/model"
	"github.com/darknight08zz/protocol456/internal/services/settlement"
	"github.com/darknight08zz/protocol456/internal/storage"
)

// maxSettleRetries bounds recomputation when choices land between the
// settlement read and its conditional write
const maxSettleRetries = 3

// errAlreadySubmitted aborts a round update without writing; it never
// leaves this package
var errAlreadySubmitted = errors.New("choice already recorded")

// Service is the round ledger: it records each team's per-round choice and
// drives the exactly-once settlement of completed rounds
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new round ledger
func New(store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
	}
}

// Config returns the session parameters the ledger was built with
func (s *Service) Config() Config {
	return s.cfg
}

// SubmitChoice records a team's choice for the active round.
//
// A choice, once recorded, is immutable for that round: a repeat call
// returns OutcomeAlreadySubmitted and leaves the stored choice untouched,
// whatever the new choice was. Submissions for a round other than the
// current one fail with ErrWrongRound; submissions for a locked round fail
// with ErrRoundClosed.
//
// After recording a choice the ledger runs the completion check, so the
// final submitter of a round triggers settlement inline.
func (s *Service) SubmitChoice(ctx context.Context, teamID model.TeamID, roundNumber int, choice model.Choice) (model.SubmissionOutcome, error) {
	if !model.ValidChoice(choice) {
		return "", model.ErrInvalidChoice
	}

	if _, err := s.storage.GetTeam(ctx, teamID); err != nil {
		return "", err
	}

	state, err := s.storage.GetGameState(ctx)
	if err != nil {
		return "", err
	}
	if roundNumber != state.CurrentRound || state.Finished {
		return "", model.ErrWrongRound
	}

	_, err = s.storage.UpdateRound(ctx, roundNumber, func(r *model.Round) error {
		if r.Locked {
			return model.ErrRoundClosed
		}
		if r.HasSubmitted(teamID) {
			return errAlreadySubmitted
		}
		r.Choices[teamID] = choice
		return nil
	})
	if errors.Is(err, errAlreadySubmitted) {
		return model.OutcomeAlreadySubmitted, nil
	}
	if err != nil {
		return "", err
	}

	s.logger.Info("choice recorded",
		slog.String("team_id", string(teamID)),
		slog.Int("round", roundNumber),
		slog.String("choice", string(choice)),
	)

	// The submission is durable regardless of what the completion check
	// does; a failed settlement attempt is retried by later polls or the
	// background sweep.
	if _, err := s.CheckAndSettle(ctx, roundNumber); err != nil {
		s.logger.Warn("post-submit settlement check failed",
			slog.Int("round", roundNumber),
			slog.String("error", err.Error()),
		)
	}

	return model.OutcomeAccepted, nil
}

// CheckAndSettle settles the round if its submission set is complete: every
// rostered team has submitted, or the round's time budget has elapsed.
// Safe to call concurrently from any number of pollers and the sweeper.
func (s *Service) CheckAndSettle(ctx context.Context, roundNumber int) (*model.Round, error) {
	round, err := s.storage.GetRound(ctx, roundNumber)
	if err != nil {
		return nil, err
	}
	if round.Locked {
		return round, nil
	}

	teamCount, err := s.storage.CountTeams(ctx)
	if err != nil {
		return nil, err
	}

	allSubmitted := teamCount > 0 && len(round.Choices) >= teamCount
	timedOut := s.clock.Since(round.StartedAt) >= s.cfg.RoundTimeout
	if !allSubmitted && !timedOut {
		return round, nil
	}

	return s.Settle(ctx, roundNumber)
}

// Settle computes and durably applies the round's point awards exactly once.
//
// Any number of callers may race here; the storage backend's conditional
// write decides the single winner. Losers observe the winner's settled
// round rather than re-running settlement. Teams that never submitted are
// excluded from the awards map; the payoff arithmetic still divides the
// cooperative pool by totalTeams minus the selfish count.
func (s *Service) Settle(ctx context.Context, roundNumber int) (*model.Round, error) {
	for attempt := 0; attempt < maxSettleRetries; attempt++ {
		round, err := s.storage.GetRound(ctx, roundNumber)
		if err != nil {
			return nil, err
		}
		if round.Locked {
			return round, nil
		}

		settled := round.Clone()
		settled.Points = settlement.Compute(settled.Choices, s.cfg.TotalTeams)
		settled.Locked = true
		settled.LockedAt = s.clock.Now()

		state := &model.GameState{
			CurrentRound: roundNumber,
			Finished:     roundNumber >= s.cfg.TotalRounds,
		}
		var next *model.Round
		if roundNumber < s.cfg.TotalRounds {
			state.CurrentRound = roundNumber + 1
			next = model.NewRound(roundNumber+1, s.clock.Now())
		}

		err = s.storage.ApplySettlement(ctx, settled, next, state)
		switch {
		case err == nil:
			s.logger.Info("round settled",
				slog.Int("round", roundNumber),
				slog.Int("submissions", len(settled.Choices)),
				slog.Int("selfish", settled.SelfishCount()),
				slog.Bool("finished", state.Finished),
			)
			return settled, nil

		case errors.Is(err, storage.ErrRoundAlreadyLocked):
			// Lost the race; return the winning settlement
			return s.storage.GetRound(ctx, roundNumber)

		case errors.Is(err, storage.ErrConflict):
			// A choice landed after our read; recompute from scratch
			continue

		default:
			return nil, err
		}
	}

	return nil, storage.ErrConflict
}

// GetRoundStatus returns the per-team view of a round. Polling an unlocked
// round doubles as a completion probe, so a round whose budget has expired
// settles on the next status request even if no further choices arrive.
func (s *Service) GetRoundStatus(ctx context.Context, roundNumber int, teamID model.TeamID) (*model.RoundStatus, error) {
	if _, err := s.storage.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}

	round, err := s.CheckAndSettle(ctx, roundNumber)
	if err != nil {
		return nil, err
	}

	if !round.Locked {
		return &model.RoundStatus{Status: model.RoundStatusWaiting}, nil
	}

	totalScore, err := s.storage.GetScore(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &model.RoundStatus{
		Status:          model.RoundStatusComplete,
		PointsThisRound: round.Points[teamID],
		TotalScore:      totalScore,
		SelfishCount:    round.SelfishCount(),
		ShowScore:       roundNumber <= s.cfg.ScoreVisibleRounds,
	}, nil
}
