package redis

import (
	"fmt"

	"github.com/darknight08zz/protocol456/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "round2"

// Key generation functions for each entity type

// teamKey returns the Redis key for a Team
func teamKey(id model.TeamID) string {
	return fmt.Sprintf("%s:team:%s", keyPrefix, id)
}

// teamNameIndexKey returns the Redis key for the name -> team_id index
func teamNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:team_name:%s", keyPrefix, name)
}

// teamsIndexKey returns the Redis key for the join-ordered LIST of team ids
func teamsIndexKey() string {
	return fmt.Sprintf("%s:idx:teams", keyPrefix)
}

// scoresKey returns the Redis key for the team_id -> total_score HASH
func scoresKey() string {
	return fmt.Sprintf("%s:scores", keyPrefix)
}

// roundKey returns the Redis key for a Round
func roundKey(number int) string {
	return fmt.Sprintf("%s:round:%d", keyPrefix, number)
}

// stateKey returns the Redis key for the GameState
func stateKey() string {
	return fmt.Sprintf("%s:state", keyPrefix)
}
