package settlement

import (
	"math"

	"github.com/darknight08zz/protocol456/internal/model"
)

// Payoff constants for the contribution game
const (
	fullCooperationAward = 10  // everyone cooperates
	defectorAward        = 15  // selfish in the minority
	clashPenalty         = -10 // selfish at or past half the teams
	perTeamBandwidth     = 10  // total pool is perTeamBandwidth * totalTeams
)

// Compute maps a round's recorded choices to per-team point awards.
//
// It is a pure function: identical input always produces identical output,
// which is what makes retried settlement attempts safe. Teams with no
// recorded choice receive no award and do not appear in the result; they
// still widen the cooperators' share of the pool because the cooperative
// side of the split is totalTeams minus the selfish count.
//
// Let S be the number of selfish choices among those submitted and
// C = totalTeams - S:
//   - S == 0: every submitted team gets 10.
//   - 0 < S < totalTeams/2: selfish teams get 15 each; cooperating teams
//     split the remaining pool, round((10*totalTeams - 15*S) / C) each.
//   - S >= totalTeams/2: a clash; selfish teams get -10, cooperators get 0.
//
// The cooperator share rounds half-up, so the nominal pool of
// 10*totalTeams may not reconcile exactly (e.g. 10 teams, 3 selfish:
// 3*15 + 7*8 = 101). That drift is part of the game's published rules.
func Compute(choices map[model.TeamID]model.Choice, totalTeams int) map[model.TeamID]int {
	points := make(map[model.TeamID]int, len(choices))
	if totalTeams <= 0 {
		return points
	}

	selfish := 0
	for _, c := range choices {
		if c == model.ChoiceSelfish {
			selfish++
		}
	}

	switch {
	case selfish == 0:
		for id := range choices {
			points[id] = fullCooperationAward
		}

	case float64(selfish) < float64(totalTeams)/2:
		cooperators := totalTeams - selfish
		remaining := perTeamBandwidth*totalTeams - defectorAward*selfish
		share := int(math.Round(float64(remaining) / float64(cooperators)))
		for id, c := range choices {
			if c == model.ChoiceSelfish {
				points[id] = defectorAward
			} else {
				points[id] = share
			}
		}

	default:
		for id, c := range choices {
			if c == model.ChoiceSelfish {
				points[id] = clashPenalty
			} else {
				points[id] = 0
			}
		}
	}

	return points
}

// SelfishCount returns the number of selfish choices in the set
func SelfishCount(choices map[model.TeamID]model.Choice) int {
	count := 0
	for _, c := range choices {
		if c == model.ChoiceSelfish {
			count++
		}
	}
	return count
}
