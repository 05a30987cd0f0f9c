package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	stats   *model.StatsTable
	matches []*model.MatchRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Stats operations

func (s *Storage) LoadStats(ctx context.Context) (*model.StatsTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return model.NewStatsTable(), nil
	}
	return cloneTable(s.stats), nil
}

func (s *Storage) SaveStats(ctx context.Context, table *model.StatsTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = cloneTable(table)
	return nil
}

func cloneTable(t *model.StatsTable) *model.StatsTable {
	c := &model.StatsTable{
		SchemaVersion: t.SchemaVersion,
		UpdatedAt:     t.UpdatedAt,
		Users:         make(map[model.PlayerID]*model.UserStats, len(t.Users)),
	}
	for id, u := range t.Users {
		c.Users[id] = u.Clone()
	}
	return c
}

// History operations

func (s *Storage) ArchiveMatch(ctx context.Context, rec *model.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *rec
	c.Players = slices.Clone(rec.Players)
	c.Outcomes = maps.Clone(rec.Outcomes)
	s.matches = append(s.matches, &c)
	return nil
}

func (s *Storage) RecentMatches(ctx context.Context, userID model.PlayerID, limit int) ([]*model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.MatchRecord
	for i := len(s.matches) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if slices.Contains(s.matches[i].Players, userID) {
			c := *s.matches[i]
			out = append(out, &c)
		}
	}
	return out, nil
}
