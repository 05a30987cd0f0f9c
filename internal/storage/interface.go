package storage

import (
	"context"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// StatsStore persists the stats table as one snapshot
type StatsStore interface {
	// LoadStats returns the stored table, or an empty one if nothing was saved yet
	LoadStats(ctx context.Context) (*model.StatsTable, error)
	// SaveStats replaces the stored table
	SaveStats(ctx context.Context, table *model.StatsTable) error
}

// HistoryStore archives finished matches
type HistoryStore interface {
	ArchiveMatch(ctx context.Context, rec *model.MatchRecord) error
	// RecentMatches returns a user's newest matches first
	RecentMatches(ctx context.Context, userID model.PlayerID, limit int) ([]*model.MatchRecord, error)
}

// Storage defines the interface for data persistence
type Storage interface {
	StatsStore
	HistoryStore
}
