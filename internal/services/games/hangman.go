package games

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// HangmanLives is the number of wrong guesses a player may make
const HangmanLives = 6

type hangman struct {
	base
	word     string
	guessed  []rune
	wrong    int
	attempts int
}

func newHangman(setup Setup) Machine {
	m := &hangman{base: newBase(setup)}
	m.word = m.engine.HangmanWord(m.difficulty())
	return m
}

func (m *hangman) Start() (Step, error) {
	return Step{Renders: []model.RenderInstruction{
		m.state(fmt.Sprintf("Guess the word! Type a letter or the whole word. You have %d lives.", HangmanLives)),
	}}, nil
}

func (m *hangman) ExpectedActors() []model.PlayerID {
	if m.done {
		return nil
	}
	return []model.PlayerID{m.host()}
}

func (m *hangman) Tick(string) (Step, error) {
	return Step{}, nil
}

func (m *hangman) Handle(a model.PlayerAction) (Step, error) {
	if err := m.errIfDone(); err != nil {
		return Step{}, err
	}
	if a.Kind != model.ActionLetter && a.Kind != model.ActionText {
		return Step{}, unexpected(a.Kind)
	}
	guess := a.Text()
	if !isLetters(guess) {
		return Step{}, fmt.Errorf("%w: letters only", model.ErrMalformedAction)
	}
	if len(guess) == 1 {
		return m.guessLetter(rune(guess[0]))
	}
	if a.Kind == model.ActionLetter {
		return Step{}, fmt.Errorf("%w: one letter at a time", model.ErrMalformedAction)
	}
	return m.solve(guess), nil
}

func (m *hangman) guessLetter(letter rune) (Step, error) {
	if slices.Contains(m.guessed, letter) {
		return Step{}, fmt.Errorf("%w: %c", model.ErrAlreadyGuessed, letter)
	}
	m.guessed = append(m.guessed, letter)
	m.attempts++

	if !strings.ContainsRune(m.word, letter) {
		m.wrong++
		if m.wrong >= HangmanLives {
			return m.end(false), nil
		}
		return Step{Renders: []model.RenderInstruction{m.state(fmt.Sprintf("No %c in the word.", letter))}}, nil
	}
	if m.solved() {
		return m.end(true), nil
	}
	return Step{Renders: []model.RenderInstruction{m.state(fmt.Sprintf("Yes! %c is in the word.", letter))}}, nil
}

func (m *hangman) solve(guess string) Step {
	m.attempts++
	if guess == m.word {
		return m.end(true)
	}
	m.wrong++
	if m.wrong >= HangmanLives {
		return m.end(false)
	}
	return Step{Renders: []model.RenderInstruction{m.state(fmt.Sprintf("%s is not the word.", guess))}}
}

func (m *hangman) solved() bool {
	for _, r := range m.word {
		if !slices.Contains(m.guessed, r) {
			return false
		}
	}
	return true
}

func (m *hangman) end(won bool) Step {
	outcome, summary := model.OutcomeLoss, fmt.Sprintf("💀 Out of lives! The word was **%s**.", m.word)
	if won {
		outcome, summary = model.OutcomeWin, fmt.Sprintf("🎉 You found **%s** in %d guesses!", m.word, m.attempts)
	}
	result := m.newResult(summary).Set(m.host(), outcome, model.Aux{Attempts: m.attempts})
	if won {
		result.Winner = m.host()
	}
	r := m.render(summary)
	r.Board = []string{m.masked(true)}
	r.Final = true
	return Step{Renders: []model.RenderInstruction{r}, Result: m.finish(result)}
}

// masked renders the word with unguessed letters hidden
func (m *hangman) masked(reveal bool) string {
	parts := make([]string, 0, len(m.word))
	for _, r := range m.word {
		if reveal || slices.Contains(m.guessed, r) {
			parts = append(parts, string(r))
		} else {
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

func (m *hangman) state(text string) model.RenderInstruction {
	r := m.render(text)
	guessed := make([]string, len(m.guessed))
	for i, g := range m.guessed {
		guessed[i] = string(g)
	}
	r.Board = []string{
		m.masked(false),
		fmt.Sprintf("Lives: %s%s", strings.Repeat("❤️", HangmanLives-m.wrong), strings.Repeat("🖤", m.wrong)),
		"Guessed: " + strings.Join(guessed, " "),
	}
	return r
}
