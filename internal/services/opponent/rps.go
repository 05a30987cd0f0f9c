package opponent

import (
	"fmt"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// Throw is a rock-paper-scissors hand
type Throw string

const (
	Rock     Throw = "rock"
	Paper    Throw = "paper"
	Scissors Throw = "scissors"
)

// Throws lists hands in enumeration order, which also breaks frequency ties
var Throws = []Throw{Rock, Paper, Scissors}

// Emoji returns the display icon of the throw
func (t Throw) Emoji() string {
	switch t {
	case Rock:
		return "🪨"
	case Paper:
		return "📄"
	case Scissors:
		return "✂️"
	}
	return "❔"
}

// Counter returns the throw that beats t
func Counter(t Throw) Throw {
	switch t {
	case Rock:
		return Paper
	case Paper:
		return Scissors
	default:
		return Rock
	}
}

// Beats reports whether a beats b
func Beats(a, b Throw) bool {
	return Counter(b) == a
}

// ParseThrow validates user input
func ParseThrow(s string) (Throw, error) {
	t := Throw(model.Fold(s))
	for _, known := range Throws {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not rock, paper or scissors", model.ErrMalformedAction, s)
}

// RPSMove picks the computer's throw from the human's history, oldest first
func (e *Engine) RPSMove(d model.Difficulty, history []Throw) Throw {
	n := len(history)
	switch d {
	case model.DifficultyHard:
		if n >= 2 && history[n-1] == history[n-2] {
			return Counter(history[n-1])
		}
	case model.DifficultyImpossible:
		if n >= 3 {
			lastThree := history[n-3:]
			if lastThree[0] == lastThree[2] {
				return Counter(lastThree[2])
			}
			return Counter(mostFrequent(history))
		}
	}
	return pick(e.random, Throws)
}

func mostFrequent(history []Throw) Throw {
	counts := make(map[Throw]int, len(Throws))
	for _, t := range history {
		counts[t]++
	}
	best := Throws[0]
	for _, t := range Throws[1:] {
		if counts[t] > counts[best] {
			best = t
		}
	}
	return best
}
