// Package file stores the stats table as a JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/storage"
)

// Storage keeps the stats table in a single JSON file
type Storage struct {
	path string
}

// New creates a file store writing to path
func New(path string) *Storage {
	return &Storage{path: path}
}

// Ensure Storage implements the interface
var _ storage.StatsStore = (*Storage)(nil)

// Path returns the file location
func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) LoadStats(ctx context.Context) (*model.StatsTable, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewStatsTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read stats file: %w", err)
	}

	table := model.NewStatsTable()
	if err := json.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("decode stats file: %w", err)
	}
	if table.Users == nil {
		table.Users = make(map[model.PlayerID]*model.UserStats)
	}
	for _, u := range table.Users {
		if u.Games == nil {
			u.Games = make(map[model.GameType]*model.GameStats)
		}
		if u.Achievements == nil {
			u.Achievements = make(map[model.AchievementID]time.Time)
		}
	}
	return table, nil
}

// SaveStats writes to a temp file in the same directory and renames it
// over the target so readers never see a partial document
func (s *Storage) SaveStats(ctx context.Context, table *model.StatsTable) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create stats dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace stats file: %w", err)
	}
	return nil
}
