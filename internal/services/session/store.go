package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Jeet1511/EliteZero/internal/dependencies/clock"
	"github.com/Jeet1511/EliteZero/internal/dependencies/random"
	"github.com/Jeet1511/EliteZero/internal/model"
)

// Config holds session lifetime settings
type Config struct {
	// RetentionWindow is how long a finished session stays readable
	RetentionWindow time.Duration
	// StaleAfter is the age at which Sweep force-ends a session
	StaleAfter time.Duration
	// SweepInterval is how often the scheduler should call Sweep
	SweepInterval time.Duration
}

// DefaultConfig returns default session settings
func DefaultConfig() Config {
	return Config{
		RetentionWindow: 5 * time.Minute,
		StaleAfter:      30 * time.Minute,
		SweepInterval:   10 * time.Minute,
	}
}

// ExpireFunc is notified when Sweep force-ends a session
type ExpireFunc func(s *model.Session)

type entry struct {
	session *model.Session
	removal clock.Timer
}

// Store tracks game sessions and which session each player is bound to
type Store struct {
	clock  clock.Clock
	random random.Random
	cfg    Config
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[model.SessionID]*entry
	bindings map[model.PlayerID]model.SessionID
	onExpire []ExpireFunc
}

// NewStore creates a new session Store
func NewStore(clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Store {
	if cfg.RetentionWindow == 0 {
		cfg.RetentionWindow = DefaultConfig().RetentionWindow
	}
	if cfg.StaleAfter == 0 {
		cfg.StaleAfter = DefaultConfig().StaleAfter
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultConfig().SweepInterval
	}
	return &Store{
		clock:    clk,
		random:   rnd,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "session-store")),
		sessions: make(map[model.SessionID]*entry),
		bindings: make(map[model.PlayerID]model.SessionID),
	}
}

// Config returns the store settings
func (s *Store) Config() Config {
	return s.cfg
}

// OnExpire registers a hook called after Sweep ends a session
func (s *Store) OnExpire(fn ExpireFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = append(s.onExpire, fn)
}

// CreateSession creates a waiting session with hostID as its only player
func (s *Store) CreateSession(ctx context.Context, gameType model.GameType, hostID model.PlayerID, opts model.SessionOptions) (*model.Session, error) {
	if !gameType.Valid() {
		return nil, model.ErrUnknownGameType
	}
	if opts.Difficulty == "" {
		opts.Difficulty = model.DefaultDifficulty
	}
	if opts.Mode == "" {
		opts.Mode = model.ModeSolo
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, bound := s.bindings[hostID]; bound {
		return nil, model.ErrAlreadyInGame
	}

	// Generate unique session id
	var id model.SessionID
	for {
		id = model.SessionID(s.random.UUID())
		if _, exists := s.sessions[id]; !exists {
			break
		}
	}

	sess := &model.Session{
		ID:         id,
		GameType:   gameType,
		HostID:     hostID,
		Players:    []model.PlayerID{hostID},
		Mode:       opts.Mode,
		Difficulty: opts.Difficulty,
		State:      model.SessionWaiting,
		ChannelID:  opts.ChannelID,
		CreatedAt:  s.clock.Now(),
	}
	s.sessions[id] = &entry{session: sess}
	s.bindings[hostID] = id

	s.logger.Info("session created",
		slog.String("session_id", string(id)),
		slog.String("game_type", string(gameType)),
		slog.String("host_id", string(hostID)),
		slog.String("mode", string(opts.Mode)),
	)

	return sess.Clone(), nil
}

// JoinSession adds userID to a waiting session
func (s *Store) JoinSession(ctx context.Context, id model.SessionID, userID model.PlayerID) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	sess := e.session
	if sess.State != model.SessionWaiting {
		return nil, model.ErrAlreadyStarted
	}
	if sess.HasPlayer(userID) {
		return nil, model.ErrDuplicatePlayer
	}
	if _, bound := s.bindings[userID]; bound {
		return nil, model.ErrAlreadyInGame
	}

	sess.Players = append(sess.Players, userID)
	s.bindings[userID] = id

	s.logger.Info("player joined session",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(userID)),
	)

	return sess.Clone(), nil
}

// StartSession moves a waiting session to active
func (s *Store) StartSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	if e.session.State != model.SessionWaiting {
		return nil, model.ErrAlreadyStarted
	}

	now := s.clock.Now()
	e.session.State = model.SessionActive
	e.session.StartedAt = &now

	return e.session.Clone(), nil
}

// EndSession finishes a session, releases its players and schedules its
// removal after the retention window. Unknown ids return nil.
func (s *Store) EndSession(ctx context.Context, id model.SessionID, reason model.EndReason, result *model.GameResult) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endLocked(id, reason, result)
}

func (s *Store) endLocked(id model.SessionID, reason model.EndReason, result *model.GameResult) *model.Session {
	e, ok := s.sessions[id]
	if !ok {
		return nil
	}
	sess := e.session
	if sess.State == model.SessionFinished {
		return sess.Clone()
	}

	now := s.clock.Now()
	sess.State = model.SessionFinished
	sess.EndedAt = &now
	sess.EndReason = reason
	if result != nil {
		sess.Result = result.Clone()
	}

	for _, p := range sess.Players {
		if s.bindings[p] == id {
			delete(s.bindings, p)
		}
	}

	e.removal = s.clock.AfterFunc(s.cfg.RetentionWindow, func() { s.remove(id) })

	s.logger.Info("session ended",
		slog.String("session_id", string(id)),
		slog.String("reason", string(reason)),
	)

	return sess.Clone()
}

func (s *Store) remove(id model.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[id]; ok && e.session.State == model.SessionFinished {
		delete(s.sessions, id)
		s.logger.Debug("session removed", slog.String("session_id", string(id)))
	}
}

// GetSession returns a copy of the session
func (s *Store) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return e.session.Clone(), nil
}

// UserSession returns the non-finished session userID is bound to
func (s *Store) UserSession(ctx context.Context, userID model.PlayerID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.bindings[userID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return s.sessions[id].session.Clone(), nil
}

// ListSessions returns copies of all known sessions, oldest first
func (s *Store) ListSessions(ctx context.Context) []*model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Session, 0, len(s.sessions))
	for _, e := range s.sessions {
		out = append(out, e.session.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Sweep force-ends every unfinished session older than the staleness
// threshold and returns their ids
func (s *Store) Sweep(ctx context.Context) []model.SessionID {
	s.mu.Lock()
	now := s.clock.Now()
	var ended []*model.Session
	for id, e := range s.sessions {
		if e.session.State == model.SessionFinished {
			continue
		}
		if now.Sub(e.session.CreatedAt) >= s.cfg.StaleAfter {
			ended = append(ended, s.endLocked(id, model.EndStale, nil))
		}
	}
	hooks := append([]ExpireFunc(nil), s.onExpire...)
	s.mu.Unlock()

	ids := make([]model.SessionID, 0, len(ended))
	for _, sess := range ended {
		ids = append(ids, sess.ID)
		for _, fn := range hooks {
			fn(sess)
		}
	}
	if len(ids) > 0 {
		s.logger.Info("stale sessions swept", slog.Int("count", len(ids)))
	}
	return ids
}

// Close cancels pending removals
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.sessions {
		if e.removal != nil {
			e.removal.Stop()
		}
	}
}

// StoreInterface is implemented by Store
type StoreInterface interface {
	CreateSession(ctx context.Context, gameType model.GameType, hostID model.PlayerID, opts model.SessionOptions) (*model.Session, error)
	JoinSession(ctx context.Context, id model.SessionID, userID model.PlayerID) (*model.Session, error)
	StartSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	EndSession(ctx context.Context, id model.SessionID, reason model.EndReason, result *model.GameResult) *model.Session
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	UserSession(ctx context.Context, userID model.PlayerID) (*model.Session, error)
	ListSessions(ctx context.Context) []*model.Session
	Sweep(ctx context.Context) []model.SessionID
	OnExpire(fn ExpireFunc)
}

var _ StoreInterface = (*Store)(nil)
