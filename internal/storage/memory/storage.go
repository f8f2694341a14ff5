package memory

import (
	"context"
	"sync"

	"github.com/darknight08zz/protocol456/internal/model"
	"github.com/darknight08zz/protocol456/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	teams     map[model.TeamID]*model.Team
	teamOrder []model.TeamID
	nameIndex map[string]model.TeamID
	scores    map[model.TeamID]int
	rounds    map[int]*model.Round
	state     *model.GameState
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		teams:     make(map[model.TeamID]*model.Team),
		nameIndex: make(map[string]model.TeamID),
		scores:    make(map[model.TeamID]int),
		rounds:    make(map[int]*model.Round),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Team operations

func (s *Storage) CreateTeam(ctx context.Context, team *model.Team, capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.teams) >= capacity {
		return model.ErrGameFull
	}
	if _, taken := s.nameIndex[team.Name]; taken {
		return model.ErrNameTaken
	}

	s.teams[team.ID] = team
	s.teamOrder = append(s.teamOrder, team.ID)
	s.nameIndex[team.Name] = team.ID
	s.scores[team.ID] = 0
	return nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	return team, nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := make([]*model.Team, 0, len(s.teamOrder))
	for _, id := range s.teamOrder {
		teams = append(teams, s.teams[id])
	}
	return teams, nil
}

func (s *Storage) CountTeams(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.teams), nil
}

// Score operations

func (s *Storage) GetScore(ctx context.Context, id model.TeamID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.teams[id]; !ok {
		return 0, model.ErrTeamNotFound
	}
	return s.scores[id], nil
}

func (s *Storage) GetScores(ctx context.Context) (map[model.TeamID]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scores := make(map[model.TeamID]int, len(s.scores))
	for id, score := range s.scores {
		scores[id] = score
	}
	return scores, nil
}

// Round operations

func (s *Storage) GetRound(ctx context.Context, number int) (*model.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	round, ok := s.rounds[number]
	if !ok {
		return nil, model.ErrRoundNotFound
	}
	return round.Clone(), nil
}

func (s *Storage) UpdateRound(ctx context.Context, number int, fn func(*model.Round) error) (*model.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rounds[number]
	if !ok {
		return nil, model.ErrRoundNotFound
	}

	updated := stored.Clone()
	if err := fn(updated); err != nil {
		return stored.Clone(), err
	}

	updated.Version = stored.Version + 1
	s.rounds[number] = updated
	return updated.Clone(), nil
}

// Game state operations

func (s *Storage) GetGameState(ctx context.Context) (*model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, model.ErrGameNotInitialized
	}
	state := *s.state
	return &state, nil
}

func (s *Storage) InitGameState(ctx context.Context, state *model.GameState, firstRound *model.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != nil {
		return nil
	}
	stateCopy := *state
	s.state = &stateCopy
	s.rounds[firstRound.Number] = firstRound.Clone()
	return nil
}

func (s *Storage) ApplySettlement(ctx context.Context, settled *model.Round, next *model.Round, state *model.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.rounds[settled.Number]
	if !ok {
		return model.ErrRoundNotFound
	}
	if stored.Locked {
		return storage.ErrRoundAlreadyLocked
	}
	if stored.Version != settled.Version {
		return storage.ErrConflict
	}

	applied := settled.Clone()
	applied.Version = stored.Version + 1
	s.rounds[settled.Number] = applied

	for id, points := range settled.Points {
		s.scores[id] += points
	}

	stateCopy := *state
	s.state = &stateCopy

	if next != nil {
		s.rounds[next.Number] = next.Clone()
	}
	return nil
}

func (s *Storage) ResetGame(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = make(map[model.TeamID]*model.Team)
	s.teamOrder = nil
	s.nameIndex = make(map[string]model.TeamID)
	s.scores = make(map[model.TeamID]int)
	s.rounds = make(map[int]*model.Round)
	s.state = nil
	return nil
}
