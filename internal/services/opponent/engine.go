// Package opponent computes moves and content for computer-controlled
// players. All decisions draw randomness from the injected source only,
// so a seeded source gives reproducible play.
package opponent

import (
	"github.com/Jeet1511/EliteZero/internal/dependencies/random"
	"github.com/Jeet1511/EliteZero/internal/model"
)

// Engine selects computer moves and difficulty-bucketed content
type Engine struct {
	random random.Random
}

// New creates a new Engine
func New(rnd random.Random) *Engine {
	return &Engine{random: rnd}
}

// pick returns a uniformly random element of items
func pick[T any](rnd random.Random, items []T) T {
	return items[rnd.Intn(len(items))]
}

// optimalChance is the probability that hard difficulty plays the best move
const optimalChance = 0.7

func (e *Engine) playsOptimally(d model.Difficulty) bool {
	switch d {
	case model.DifficultyEasy:
		return false
	case model.DifficultyHard:
		return e.random.Float64() < optimalChance
	default:
		return true
	}
}
