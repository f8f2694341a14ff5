package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/darknight08zz/protocol456/internal/dependencies/clock"
	"github.com/darknight08zz/protocol456/internal/dependencies/random"
	"github.com/darknight08zz/protocol456/internal/model"
	"github.com/darknight08zz/protocol456/internal/storage"
)

// maxMembers bounds the member list of a single team
const maxMembers = 5

// Service manages the bounded roster of joined teams
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	random   random.Random
	capacity int
	logger   *slog.Logger
}

// New creates a new roster service with the given team capacity
func New(store storage.Storage, clk clock.Clock, rnd random.Random, capacity int, logger *slog.Logger) *Service {
	return &Service{
		storage:  store,
		clock:    clk,
		random:   rnd,
		capacity: capacity,
		logger:   logger,
	}
}

// Capacity returns the fixed team capacity for the session
func (s *Service) Capacity() int {
	return s.capacity
}

// Join registers a new team and returns it together with the current game
// state. The first successful join initializes the game at round 1.
//
// The name must be non-empty after trimming and unique (case-sensitive
// exact match); between 1 and 5 member names must be non-blank. Uniqueness
// and the capacity bound are enforced atomically by the storage backend.
func (s *Service) Join(ctx context.Context, name string, members []string) (*model.Team, *model.GameState, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: team name is required", model.ErrInvalidInput)
	}

	trimmed := make([]string, 0, len(members))
	for _, m := range members {
		if m = strings.TrimSpace(m); m != "" {
			trimmed = append(trimmed, m)
		}
	}
	if len(trimmed) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one member name is required", model.ErrInvalidInput)
	}
	if len(trimmed) > maxMembers {
		return nil, nil, fmt.Errorf("%w: at most %d member names are allowed", model.ErrInvalidInput, maxMembers)
	}

	team := &model.Team{
		ID:       model.TeamID(s.random.NewID()),
		Name:     name,
		Members:  trimmed,
		JoinedAt: s.clock.Now(),
	}

	if err := s.storage.CreateTeam(ctx, team, s.capacity); err != nil {
		return nil, nil, err
	}

	// First joiner brings the game up at round 1; a no-op for everyone else
	if err := s.storage.InitGameState(ctx, model.NewGameState(), model.NewRound(1, s.clock.Now())); err != nil {
		return nil, nil, err
	}

	state, err := s.storage.GetGameState(ctx)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("team joined",
		slog.String("team_id", string(team.ID)),
		slog.String("team_name", team.Name),
		slog.Int("members", len(trimmed)),
		slog.Int("current_round", state.CurrentRound),
	)

	return team, state, nil
}

// GetTeam retrieves a team by ID
func (s *Service) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	return s.storage.GetTeam(ctx, id)
}

// ListTeams returns all joined teams in join order
func (s *Service) ListTeams(ctx context.Context) ([]*model.Team, error) {
	return s.storage.ListTeams(ctx)
}
