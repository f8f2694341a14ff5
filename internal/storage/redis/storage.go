package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/darknight08zz/protocol456/internal/model"
	"github.com/darknight08zz/protocol456/internal/storage"
)

// maxTxRetries bounds the optimistic-lock retry loop for WATCH transactions
const maxTxRetries = 5

// Storage is a Redis-backed implementation of the storage interface.
//
// The conditional writes (CreateTeam, UpdateRound, ApplySettlement) are built
// on WATCH/MULTI/EXEC: the transaction only commits if the watched keys are
// unchanged between the read and the EXEC, which gives the compare-and-swap
// the settlement lock requires with no separate lock service.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Team operations

func (s *Storage) CreateTeam(ctx context.Context, team *model.Team, capacity int) error {
	nameKey := teamNameIndexKey(team.Name)

	data, err := json.Marshal(team)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			count, err := tx.LLen(ctx, teamsIndexKey()).Result()
			if err != nil {
				return err
			}
			if int(count) >= capacity {
				return model.ErrGameFull
			}

			exists, err := tx.Exists(ctx, nameKey).Result()
			if err != nil {
				return err
			}
			if exists > 0 {
				return model.ErrNameTaken
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, teamKey(team.ID), data, 0)
				pipe.Set(ctx, nameKey, string(team.ID), 0)
				pipe.RPush(ctx, teamsIndexKey(), string(team.ID))
				pipe.HSetNX(ctx, scoresKey(), string(team.ID), 0)
				return nil
			})
			return err
		}, teamsIndexKey(), nameKey)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}

	return fmt.Errorf("create team %q: %w", team.Name, storage.ErrConflict)
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	data, err := s.client.Get(ctx, teamKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}

	var team model.Team
	if err := json.Unmarshal(data, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	ids, err := s.client.LRange(ctx, teamsIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.Team{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = teamKey(model.TeamID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	teams := make([]*model.Team, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var team model.Team
		if err := json.Unmarshal([]byte(val.(string)), &team); err != nil {
			continue
		}
		teams = append(teams, &team)
	}

	return teams, nil
}

func (s *Storage) CountTeams(ctx context.Context) (int, error) {
	count, err := s.client.LLen(ctx, teamsIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Score operations

func (s *Storage) GetScore(ctx context.Context, id model.TeamID) (int, error) {
	val, err := s.client.HGet(ctx, scoresKey(), string(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, model.ErrTeamNotFound
		}
		return 0, err
	}
	return strconv.Atoi(val)
}

func (s *Storage) GetScores(ctx context.Context) (map[model.TeamID]int, error) {
	values, err := s.client.HGetAll(ctx, scoresKey()).Result()
	if err != nil {
		return nil, err
	}

	scores := make(map[model.TeamID]int, len(values))
	for id, val := range values {
		score, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("corrupt score for team %s: %w", id, err)
		}
		scores[model.TeamID(id)] = score
	}
	return scores, nil
}

// Round operations

// readRound fetches and decodes a round via the given command interface,
// so it works both on the plain client and inside a WATCH transaction
func readRound(ctx context.Context, c redis.Cmdable, number int) (*model.Round, error) {
	data, err := c.Get(ctx, roundKey(number)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoundNotFound
		}
		return nil, err
	}

	var round model.Round
	if err := json.Unmarshal(data, &round); err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *Storage) GetRound(ctx context.Context, number int) (*model.Round, error) {
	return readRound(ctx, s.client, number)
}

func (s *Storage) UpdateRound(ctx context.Context, number int, fn func(*model.Round) error) (*model.Round, error) {
	key := roundKey(number)

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		var result *model.Round
		var fnErr error

		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			stored, err := readRound(ctx, tx, number)
			if err != nil {
				return err
			}

			updated := stored.Clone()
			if err := fn(updated); err != nil {
				// No write: surface the stored round alongside fn's error
				fnErr = err
				result = stored
				return nil
			}

			updated.Version = stored.Version + 1
			data, err := json.Marshal(updated)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, 0)
				return nil
			})
			if err == nil {
				result = updated
			}
			return err
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, fnErr
	}

	return nil, storage.ErrConflict
}

// Game state operations

func (s *Storage) GetGameState(ctx context.Context) (*model.GameState, error) {
	data, err := s.client.Get(ctx, stateKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotInitialized
		}
		return nil, err
	}

	var state model.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Storage) InitGameState(ctx context.Context, state *model.GameState, firstRound *model.Round) error {
	stateData, err := json.Marshal(state)
	if err != nil {
		return err
	}
	roundData, err := json.Marshal(firstRound)
	if err != nil {
		return err
	}

	// SETNX on both keys makes repeated initialization a no-op
	pipe := s.client.Pipeline()
	pipe.SetNX(ctx, stateKey(), stateData, 0)
	pipe.SetNX(ctx, roundKey(firstRound.Number), roundData, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ApplySettlement(ctx context.Context, settled *model.Round, next *model.Round, state *model.GameState) error {
	key := roundKey(settled.Number)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := readRound(ctx, tx, settled.Number)
		if err != nil {
			return err
		}
		if stored.Locked {
			return storage.ErrRoundAlreadyLocked
		}
		if stored.Version != settled.Version {
			return storage.ErrConflict
		}

		applied := settled.Clone()
		applied.Version = stored.Version + 1
		roundData, err := json.Marshal(applied)
		if err != nil {
			return err
		}
		stateData, err := json.Marshal(state)
		if err != nil {
			return err
		}
		var nextData []byte
		if next != nil {
			nextData, err = json.Marshal(next)
			if err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, roundData, 0)
			for id, points := range settled.Points {
				pipe.HIncrBy(ctx, scoresKey(), string(id), int64(points))
			}
			pipe.Set(ctx, stateKey(), stateData, 0)
			if next != nil {
				pipe.SetNX(ctx, roundKey(next.Number), nextData, 0)
			}
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		// The round changed between read and commit; the caller re-reads
		// and retries or observes the winning settlement
		return storage.ErrConflict
	}
	return err
}

func (s *Storage) ResetGame(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, keyPrefix+":*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	return s.client.Del(ctx, keys...).Err()
}
