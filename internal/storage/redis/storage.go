package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
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

// Ping checks the connection
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Stats operations

func (s *Storage) LoadStats(ctx context.Context) (*model.StatsTable, error) {
	data, err := s.client.Get(ctx, statsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.NewStatsTable(), nil
		}
		return nil, err
	}

	table := model.NewStatsTable()
	if err := json.Unmarshal(data, table); err != nil {
		return nil, err
	}
	if table.Users == nil {
		table.Users = make(map[model.PlayerID]*model.UserStats)
	}
	return table, nil
}

// SaveStats writes the snapshot
func (s *Storage) SaveStats(ctx context.Context, table *model.StatsTable) error {
	data, err := json.Marshal(table)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statsKey(), data, 0).Err() // No TTL
}

// History operations

func (s *Storage) ArchiveMatch(ctx context.Context, rec *model.MatchRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, matchKey(rec.SessionID), data, s.cfg.MatchTTL)
	for _, p := range rec.Players {
		pipe.LPush(ctx, historyKey(p), string(rec.SessionID))
		pipe.LTrim(ctx, historyKey(p), 0, s.cfg.HistoryLength-1)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) RecentMatches(ctx context.Context, userID model.PlayerID, limit int) ([]*model.MatchRecord, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	ids, err := s.client.LRange(ctx, historyKey(userID), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = matchKey(model.SessionID(id))
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*model.MatchRecord, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Expired match documents leave holes in the list
			continue
		}
		var rec model.MatchRecord
		if err := json.Unmarshal([]byte(str), &rec); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, nil
}
