package games

import (
	"fmt"
	"slices"
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// Factory creates machines for one game type
type Factory struct {
	Modes   []model.Mode
	Timeout time.Duration
	New     func(Setup) Machine
}

// Supports reports whether the game can be played in mode
func (f Factory) Supports(mode model.Mode) bool {
	return slices.Contains(f.Modes, mode)
}

// Registry maps game types to their factories
type Registry struct {
	factories map[model.GameType]Factory
}

// NewRegistry returns a registry with every built-in game
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[model.GameType]Factory)}
	r.Register(model.GameTicTacToe, Factory{
		Modes:   []model.Mode{model.ModeComputer, model.ModeMultiplayer},
		Timeout: 300 * time.Second,
		New:     newTicTacToe,
	})
	r.Register(model.GameHangman, Factory{
		Modes:   []model.Mode{model.ModeSolo, model.ModeComputer},
		Timeout: 180 * time.Second,
		New:     newHangman,
	})
	r.Register(model.GameWordle, Factory{
		Modes:   []model.Mode{model.ModeSolo, model.ModeComputer},
		Timeout: 300 * time.Second,
		New:     newWordle,
	})
	r.Register(model.GameMemory, Factory{
		Modes:   []model.Mode{model.ModeSolo, model.ModeMultiplayer},
		Timeout: 300 * time.Second,
		New:     newMemory,
	})
	r.Register(model.GameNumberGuess, Factory{
		Modes:   []model.Mode{model.ModeSolo, model.ModeComputer},
		Timeout: 120 * time.Second,
		New:     newNumberGuess,
	})
	r.Register(model.GameTrivia, Factory{
		Modes:   []model.Mode{model.ModeSolo},
		Timeout: 180 * time.Second,
		New:     newTrivia,
	})
	r.Register(model.GameRPS, Factory{
		Modes:   []model.Mode{model.ModeComputer, model.ModeMultiplayer},
		Timeout: 120 * time.Second,
		New:     newRPS,
	})
	r.Register(model.GameConnectFour, Factory{
		Modes:   []model.Mode{model.ModeComputer, model.ModeMultiplayer},
		Timeout: 300 * time.Second,
		New:     newConnectFour,
	})
	r.Register(model.GameReaction, Factory{
		Modes:   []model.Mode{model.ModeSolo},
		Timeout: 90 * time.Second,
		New:     newReaction,
	})
	r.Register(model.GameQuizBattle, Factory{
		Modes:   []model.Mode{model.ModeComputer, model.ModeMultiplayer},
		Timeout: 180 * time.Second,
		New:     newQuizBattle,
	})
	r.Register(model.GameShooter, Factory{
		Modes:   []model.Mode{model.ModeSolo},
		Timeout: 120 * time.Second,
		New:     newShooter,
	})
	return r
}

// Register adds or replaces the factory for a game type
func (r *Registry) Register(g model.GameType, f Factory) {
	r.factories[g] = f
}

// Factory returns the factory for g
func (r *Registry) Factory(g model.GameType) (Factory, error) {
	f, ok := r.factories[g]
	if !ok {
		return Factory{}, fmt.Errorf("%w: %q", model.ErrUnknownGameType, g)
	}
	return f, nil
}

// Validate checks that g exists and can be played in mode
func (r *Registry) Validate(g model.GameType, mode model.Mode) error {
	f, err := r.Factory(g)
	if err != nil {
		return err
	}
	if !f.Supports(mode) {
		return fmt.Errorf("%w: %s cannot be played %s", model.ErrUnsupportedMode, g.Info().Name, mode)
	}
	return nil
}

// New creates a machine for the session in setup
func (r *Registry) New(setup Setup) (Machine, error) {
	if err := r.Validate(setup.Session.GameType, setup.Session.Mode); err != nil {
		return nil, err
	}
	f := r.factories[setup.Session.GameType]
	setup.Timeout = f.Timeout
	return f.New(setup), nil
}
