package games

import (
	"fmt"
	"strings"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// WordleAttempts is the number of guesses allowed
const WordleAttempts = 6

// LetterResult is the feedback for one letter of a wordle guess
type LetterResult int

const (
	LetterAbsent LetterResult = iota
	LetterPresent
	LetterCorrect
)

// Emoji returns the tile colour for the feedback
func (l LetterResult) Emoji() string {
	switch l {
	case LetterCorrect:
		return "🟩"
	case LetterPresent:
		return "🟨"
	}
	return "⬛"
}

// ScoreWordle compares an upper-case guess with the target of the same
// length. Exact matches are marked first; remaining letters are marked
// present only while unmatched copies of that letter are left in the target.
func ScoreWordle(guess, target string) []LetterResult {
	out := make([]LetterResult, len(guess))
	pool := make(map[byte]int)
	for i := 0; i < len(target); i++ {
		if guess[i] == target[i] {
			out[i] = LetterCorrect
		} else {
			pool[target[i]]++
		}
	}
	for i := 0; i < len(guess); i++ {
		if out[i] == LetterCorrect {
			continue
		}
		if pool[guess[i]] > 0 {
			out[i] = LetterPresent
			pool[guess[i]]--
		}
	}
	return out
}

type wordleRow struct {
	guess    string
	feedback []LetterResult
}

type wordle struct {
	base
	target string
	rows   []wordleRow
}

func newWordle(setup Setup) Machine {
	m := &wordle{base: newBase(setup)}
	m.target = m.engine.WordleWord(m.difficulty())
	return m
}

func (m *wordle) Start() (Step, error) {
	return Step{Renders: []model.RenderInstruction{m.state(
		fmt.Sprintf("Guess the %d-letter word in %d tries. Type your guess.", len(m.target), WordleAttempts))}}, nil
}

func (m *wordle) ExpectedActors() []model.PlayerID {
	if m.done {
		return nil
	}
	return []model.PlayerID{m.host()}
}

func (m *wordle) Tick(string) (Step, error) {
	return Step{}, nil
}

func (m *wordle) Handle(a model.PlayerAction) (Step, error) {
	if err := m.errIfDone(); err != nil {
		return Step{}, err
	}
	if a.Kind != model.ActionText {
		return Step{}, unexpected(a.Kind)
	}
	guess := a.Text()
	if !isLetters(guess) {
		return Step{}, fmt.Errorf("%w: letters only", model.ErrMalformedAction)
	}
	if len(guess) != len(m.target) {
		return Step{}, fmt.Errorf("%w: need %d letters", model.ErrWrongLength, len(m.target))
	}

	m.rows = append(m.rows, wordleRow{guess: guess, feedback: ScoreWordle(guess, m.target)})
	attempts := len(m.rows)

	switch {
	case guess == m.target:
		summary := fmt.Sprintf("🎉 Solved **%s** in %d/%d!", m.target, attempts, WordleAttempts)
		result := m.newResult(summary).Set(m.host(), model.OutcomeWin, model.Aux{Attempts: attempts})
		result.Winner = m.host()
		return m.end(result), nil
	case attempts >= WordleAttempts:
		summary := fmt.Sprintf("Out of guesses! The word was **%s**.", m.target)
		result := m.newResult(summary).Set(m.host(), model.OutcomeLoss, model.Aux{Attempts: attempts})
		return m.end(result), nil
	}
	return Step{Renders: []model.RenderInstruction{m.state(
		fmt.Sprintf("%d guesses left.", WordleAttempts-attempts))}}, nil
}

func (m *wordle) end(result *model.GameResult) Step {
	r := m.state(result.Summary)
	r.Final = true
	return Step{Renders: []model.RenderInstruction{r}, Result: m.finish(result)}
}

func (m *wordle) state(text string) model.RenderInstruction {
	r := m.render(text)
	for _, row := range m.rows {
		var tiles strings.Builder
		for _, f := range row.feedback {
			tiles.WriteString(f.Emoji())
		}
		r.Board = append(r.Board, fmt.Sprintf("%s  %s", tiles.String(), row.guess))
	}
	return r
}
