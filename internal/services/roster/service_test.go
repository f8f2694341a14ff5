package roster

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/darknight08zz/protocol456/internal/dependencies/mocks"
	"github.com/darknight08zz/protocol456/internal/model"
	"github.com/darknight08zz/protocol456/internal/storage/memory"
	"github.com/darknight08zz/protocol456/internal/testutil"
)

type RosterSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestRosterSuite(t *testing.T) {
	suite.Run(t, new(RosterSuite))
}

func (s *RosterSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, 3, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *RosterSuite) TestJoinSucceeds() {
	s.random.QueueID("team-abc")

	team, state, err := s.service.Join(s.ctx, "Alpha", []string{"alice", "bob"})
	s.Require().NoError(err)

	s.Equal(model.TeamID("team-abc"), team.ID)
	s.Equal("Alpha", team.Name)
	s.Equal([]string{"alice", "bob"}, team.Members)
	s.Equal(s.clock.Now(), team.JoinedAt)
	s.Equal(1, state.CurrentRound)
	s.False(state.Finished)
}

func (s *RosterSuite) TestJoinTrimsNameAndMembers() {
	team, _, err := s.service.Join(s.ctx, "  Alpha  ", []string{" alice ", "", "  ", "bob"})
	s.Require().NoError(err)

	s.Equal("Alpha", team.Name)
	s.Equal([]string{"alice", "bob"}, team.Members)
}

func (s *RosterSuite) TestJoinRejectsBlankName() {
	_, _, err := s.service.Join(s.ctx, "   ", []string{"alice"})
	s.ErrorIs(err, model.ErrInvalidInput)
}

func (s *RosterSuite) TestJoinRejectsNoMembers() {
	_, _, err := s.service.Join(s.ctx, "Alpha", []string{"  ", ""})
	s.ErrorIs(err, model.ErrInvalidInput)
}

func (s *RosterSuite) TestJoinRejectsTooManyMembers() {
	_, _, err := s.service.Join(s.ctx, "Alpha", []string{"a", "b", "c", "d", "e", "f"})
	s.ErrorIs(err, model.ErrInvalidInput)

	// Blank entries don't count against the bound
	team, _, err := s.service.Join(s.ctx, "Alpha", []string{"a", "b", "c", "d", "e", "  "})
	s.Require().NoError(err)
	s.Len(team.Members, 5)
}

func (s *RosterSuite) TestJoinRejectsDuplicateName() {
	_, _, err := s.service.Join(s.ctx, "Alpha", []string{"alice"})
	s.Require().NoError(err)

	_, _, err = s.service.Join(s.ctx, "Alpha", []string{"carol"})
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *RosterSuite) TestJoinEnforcesCapacity() {
	for i := 0; i < 3; i++ {
		_, _, err := s.service.Join(s.ctx, fmt.Sprintf("Team %d", i), []string{"someone"})
		s.Require().NoError(err)
	}

	_, _, err := s.service.Join(s.ctx, "Overflow", []string{"someone"})
	s.ErrorIs(err, model.ErrGameFull)
}

func (s *RosterSuite) TestFirstJoinInitializesGame() {
	_, err := s.storage.GetGameState(s.ctx)
	s.ErrorIs(err, model.ErrGameNotInitialized)

	_, _, err = s.service.Join(s.ctx, "Alpha", []string{"alice"})
	s.Require().NoError(err)

	state, err := s.storage.GetGameState(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, state.CurrentRound)

	round, err := s.storage.GetRound(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(s.clock.Now(), round.StartedAt)
}

func (s *RosterSuite) TestLaterJoinKeepsExistingGame() {
	_, _, err := s.service.Join(s.ctx, "Alpha", []string{"alice"})
	s.Require().NoError(err)

	// Choices recorded before the second join must survive it
	_, err = s.storage.UpdateRound(s.ctx, 1, func(r *model.Round) error {
		r.Choices["someone"] = model.ChoiceCooperate
		return nil
	})
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)
	_, _, err = s.service.Join(s.ctx, "Beta", []string{"bob"})
	s.Require().NoError(err)

	round, err := s.storage.GetRound(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(round.Choices, 1)
	s.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), round.StartedAt)
}

func (s *RosterSuite) TestGetTeam() {
	s.random.QueueID("team-abc")
	_, _, err := s.service.Join(s.ctx, "Alpha", []string{"alice"})
	s.Require().NoError(err)

	team, err := s.service.GetTeam(s.ctx, "team-abc")
	s.Require().NoError(err)
	s.Equal("Alpha", team.Name)
}

func (s *RosterSuite) TestListTeamsInJoinOrder() {
	_, _, err := s.service.Join(s.ctx, "Beta", []string{"bob"})
	s.Require().NoError(err)
	_, _, err = s.service.Join(s.ctx, "Alpha", []string{"alice"})
	s.Require().NoError(err)

	teams, err := s.service.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(teams, 2)
	s.Equal("Beta", teams[0].Name)
	s.Equal("Alpha", teams[1].Name)
}

func (s *RosterSuite) TestCapacity() {
	s.Equal(3, s.service.Capacity())
}
