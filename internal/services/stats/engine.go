// Package stats aggregates game outcomes into per-user records, awards
// points and achievements, and keeps the table persisted.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Jeet1511/EliteZero/internal/dependencies/clock"
	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/storage"
)

// RecordResult is what one recorded game produced
type RecordResult struct {
	Stats           *model.UserStats
	Points          int
	NewAchievements []model.Achievement
}

// EngineInterface defines the stats operations used by the rest of the app
type EngineInterface interface {
	RecordOutcome(ctx context.Context, userID model.PlayerID, game model.GameType, outcome model.Outcome, aux model.Aux) (*RecordResult, error)
	GetStats(userID model.PlayerID) (*model.UserStats, error)
	Leaderboard(game model.GameType, limit int) ([]model.LeaderboardEntry, error)
	OverallLeaderboard(limit int) []model.LeaderboardEntry
	Achievements() []model.Achievement
	Flush(ctx context.Context) error
}

// Engine owns the in-memory stats table. The table is authoritative; the
// store only receives snapshots of it.
type Engine struct {
	store  storage.StatsStore
	clock  clock.Clock
	logger *slog.Logger
	defs   []model.Achievement

	mu    sync.RWMutex
	table *model.StatsTable
	// version counts mutations; saved is the last version persisted
	version int
	saved   int

	// writeMu serializes snapshot writes
	writeMu sync.Mutex
}

// Ensure Engine implements the interface
var _ EngineInterface = (*Engine)(nil)

// NewEngine creates an engine with an empty table. Call Load to restore
// persisted state.
func NewEngine(store storage.StatsStore, clk clock.Clock, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		clock:  clk,
		logger: logger.With(slog.String("component", "stats-engine")),
		defs:   Definitions(),
		table:  model.NewStatsTable(),
	}
}

// Load replaces the in-memory table with the stored one
func (e *Engine) Load(ctx context.Context) error {
	table, err := e.store.LoadStats(ctx)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	if table.Users == nil {
		table.Users = make(map[model.PlayerID]*model.UserStats)
	}
	if table.SchemaVersion == 0 {
		table.SchemaVersion = model.StatsSchemaVersion
	}
	for _, u := range table.Users {
		if u.Games == nil {
			u.Games = make(map[model.GameType]*model.GameStats)
		}
		if u.Achievements == nil {
			u.Achievements = make(map[model.AchievementID]time.Time)
		}
	}

	e.mu.Lock()
	e.table = table
	e.saved = e.version
	e.mu.Unlock()

	e.logger.Info("stats loaded", slog.Int("users", len(table.Users)))
	return nil
}

// RecordOutcome folds one finished game into the user's record. A failed
// snapshot write is logged and retried later; it never fails the call.
func (e *Engine) RecordOutcome(
	ctx context.Context,
	userID model.PlayerID,
	game model.GameType,
	outcome model.Outcome,
	aux model.Aux,
) (*RecordResult, error) {
	if userID == "" || userID.IsComputer() {
		return nil, fmt.Errorf("%w: no stats for %q", model.ErrInvalidAction, userID)
	}
	if !game.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownGameType, game)
	}

	now := e.clock.Now()
	points := Points(game, outcome, aux)

	e.mu.Lock()
	u, ok := e.table.Users[userID]
	if !ok {
		u = model.NewUserStats(userID, now)
		e.table.Users[userID] = u
	}
	apply(u, game, outcome, aux, points)
	u.LastPlayed = now
	unlocked := evaluate(e.defs, u, now)
	e.table.UpdatedAt = now
	e.version++
	result := &RecordResult{Stats: u.Clone(), Points: points, NewAchievements: unlocked}
	e.mu.Unlock()

	e.logger.Info("outcome recorded",
		slog.String("user_id", string(userID)),
		slog.String("game_type", string(game)),
		slog.String("outcome", string(outcome)),
		slog.Int("points", points),
		slog.Int("achievements", len(unlocked)),
	)

	if err := e.persist(ctx); err != nil {
		e.logger.Error("failed to persist stats", slog.String("error", err.Error()))
	}
	return result, nil
}

// apply updates counters, bests and streaks for one game
func apply(u *model.UserStats, game model.GameType, outcome model.Outcome, aux model.Aux, points int) {
	gs, ok := u.Games[game]
	if !ok {
		gs = &model.GameStats{}
		u.Games[game] = gs
	}

	u.TotalGames++
	u.TotalPoints += points
	gs.Played++
	gs.Points += points

	switch outcome {
	case model.OutcomeWin:
		u.Wins++
		gs.Won++
		u.CurrentStreak++
		u.BestStreak = max(u.BestStreak, u.CurrentStreak)
	case model.OutcomeLoss:
		u.Losses++
		gs.Lost++
		u.CurrentStreak = 0
	case model.OutcomeDraw:
		u.Draws++
		gs.Draw++
	}

	if aux.Attempts > 0 {
		gs.TotalAttempts += aux.Attempts
		gs.AvgAttempts = float64(gs.TotalAttempts) / float64(gs.Played)
		if outcome == model.OutcomeWin {
			gs.BestAttempts = lowest(gs.BestAttempts, aux.Attempts)
		}
	}
	if aux.Moves > 0 && outcome == model.OutcomeWin {
		gs.BestMoves = lowest(gs.BestMoves, aux.Moves)
	}
	if aux.Score > 0 {
		gs.TotalScore += aux.Score
		gs.BestScore = max(gs.BestScore, aux.Score)
	}
	if aux.AvgTimeMs > 0 {
		// reaction games always carry a time, so Played is the sample count
		gs.AvgTimeMs += (float64(aux.AvgTimeMs) - gs.AvgTimeMs) / float64(gs.Played)
	}
	if aux.BestTimeMs > 0 {
		gs.BestTimeMs = lowest(gs.BestTimeMs, aux.BestTimeMs)
	}
	gs.Hits += aux.Hits
}

// lowest treats zero as "unset"
func lowest(current, candidate int) int {
	if current == 0 || candidate < current {
		return candidate
	}
	return current
}

// persist writes a snapshot if anything changed since the last write
func (e *Engine) persist(ctx context.Context) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	e.mu.RLock()
	if e.saved == e.version {
		e.mu.RUnlock()
		return nil
	}
	version := e.version
	snapshot := cloneTable(e.table)
	e.mu.RUnlock()

	if err := e.store.SaveStats(ctx, snapshot); err != nil {
		return err
	}

	e.mu.Lock()
	e.saved = max(e.saved, version)
	e.mu.Unlock()
	return nil
}

// Flush persists pending changes
func (e *Engine) Flush(ctx context.Context) error {
	if err := e.persist(ctx); err != nil {
		return fmt.Errorf("flush stats: %w", err)
	}
	return nil
}

// Dirty reports whether the table has changes not yet persisted
func (e *Engine) Dirty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.saved != e.version
}

// GetStats returns a copy of the user's record
func (e *Engine) GetStats(userID model.PlayerID) (*model.UserStats, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	u, ok := e.table.Users[userID]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	return u.Clone(), nil
}

// Leaderboard ranks players of one game
func (e *Engine) Leaderboard(game model.GameType, limit int) ([]model.LeaderboardEntry, error) {
	if !game.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownGameType, game)
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return rankGame(e.table.Users, game, limit), nil
}

// OverallLeaderboard ranks every player by total points
func (e *Engine) OverallLeaderboard(limit int) []model.LeaderboardEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return rankOverall(e.table.Users, limit)
}

// Achievements returns the achievement definitions
func (e *Engine) Achievements() []model.Achievement {
	return slices.Clone(e.defs)
}

// UserCount is the number of users with a record
func (e *Engine) UserCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.table.Users)
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
