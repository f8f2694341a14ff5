package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/darknight08zz/protocol456/internal/model"
	"github.com/darknight08zz/protocol456/internal/services/ledger"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp(ledger.Config{
		TotalTeams:         3,
		TotalRounds:        3,
		RoundTimeout:       2 * time.Minute,
		ScoreVisibleRounds: 2,
	})
	s.ctx = context.Background()
}

// Test: complete session from first join to the final scoreboard
func (s *IntegrationSuite) TestCompleteGameFlow() {
	s.app.MockRandom.QueueID("team-a", "team-b", "team-c")

	// Step 1: Three teams join; the first join starts round 1
	alpha, state, err := s.app.RosterService.Join(s.ctx, "Alpha", []string{"alice"})
	s.Require().NoError(err)
	s.Equal(model.TeamID("team-a"), alpha.ID)
	s.Equal(1, state.CurrentRound)

	beta, _, err := s.app.RosterService.Join(s.ctx, "Beta", []string{"bob"})
	s.Require().NoError(err)
	gamma, _, err := s.app.RosterService.Join(s.ctx, "Gamma", []string{"carol"})
	s.Require().NoError(err)

	// Step 2: Round 1, everyone cooperates; the last submission settles it
	for _, id := range []model.TeamID{alpha.ID, beta.ID, gamma.ID} {
		outcome, err := s.app.LedgerService.SubmitChoice(s.ctx, id, 1, model.ChoiceCooperate)
		s.Require().NoError(err)
		s.Equal(model.OutcomeAccepted, outcome)
	}

	status, err := s.app.LedgerService.GetRoundStatus(s.ctx, 1, alpha.ID)
	s.Require().NoError(err)
	s.Equal(model.RoundStatusComplete, status.Status)
	s.Equal(10, status.PointsThisRound)
	s.True(status.ShowScore)

	// Step 3: Round 2, Beta defects: 15 for Beta, round((30-15)/2) = 8 each
	_, err = s.app.LedgerService.SubmitChoice(s.ctx, beta.ID, 2, model.ChoiceSelfish)
	s.Require().NoError(err)
	_, err = s.app.LedgerService.SubmitChoice(s.ctx, alpha.ID, 2, model.ChoiceCooperate)
	s.Require().NoError(err)
	_, err = s.app.LedgerService.SubmitChoice(s.ctx, gamma.ID, 2, model.ChoiceCooperate)
	s.Require().NoError(err)

	status, err = s.app.LedgerService.GetRoundStatus(s.ctx, 2, beta.ID)
	s.Require().NoError(err)
	s.Equal(15, status.PointsThisRound)
	s.Equal(25, status.TotalScore)

	// Step 4: Round 3, Gamma never submits; the round settles on timeout
	// via the sweep path
	_, err = s.app.LedgerService.SubmitChoice(s.ctx, alpha.ID, 3, model.ChoiceCooperate)
	s.Require().NoError(err)
	_, err = s.app.LedgerService.SubmitChoice(s.ctx, beta.ID, 3, model.ChoiceCooperate)
	s.Require().NoError(err)

	s.app.MockClock.Advance(2 * time.Minute)
	s.Require().NoError(s.app.GameController.SweepCurrentRound(s.ctx))

	gameState, err := s.app.GameController.GetState(s.ctx)
	s.Require().NoError(err)
	s.True(gameState.Finished)
	s.Equal(3, gameState.CurrentRound)

	// Round 3 totals conceal the score past round 2, but the engine still
	// reports the true number
	status, err = s.app.LedgerService.GetRoundStatus(s.ctx, 3, alpha.ID)
	s.Require().NoError(err)
	s.False(status.ShowScore)
	s.Equal(28, status.TotalScore)

	// Step 5: Final scoreboard: Beta 35, Alpha 28, Gamma 18
	entries, err := s.app.GameController.FinalScoreboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal(beta.ID, entries[0].TeamID)
	s.Equal(35, entries[0].TotalScore)
	s.Equal(alpha.ID, entries[1].TeamID)
	s.Equal(28, entries[1].TotalScore)
	s.Equal(gamma.ID, entries[2].TeamID)
	s.Equal(18, entries[2].TotalScore)
}

// Test: a reset mid-session returns everything to the pre-join state
func (s *IntegrationSuite) TestResetRestartsSession() {
	_, _, err := s.app.RosterService.Join(s.ctx, "Alpha", []string{"alice"})
	s.Require().NoError(err)

	s.Require().NoError(s.app.GameController.ResetGame(s.ctx))

	// Same name joins again and the game restarts at round 1
	_, state, err := s.app.RosterService.Join(s.ctx, "Alpha", []string{"alice"})
	s.Require().NoError(err)
	s.Equal(1, state.CurrentRound)
	s.False(state.Finished)
}
