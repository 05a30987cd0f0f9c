package games

import (
	"fmt"
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
)

type guessRules struct {
	max      int
	attempts int
}

var numberGuessRules = map[model.Difficulty]guessRules{
	model.DifficultyEasy:       {max: 50, attempts: 10},
	model.DifficultyHard:       {max: 100, attempts: 7},
	model.DifficultyImpossible: {max: 200, attempts: 5},
}

type numberGuess struct {
	base
	rules    guessRules
	secret   int
	attempts int
	// low and high bound the window still consistent with every hint given
	low  int
	high int
}

func newNumberGuess(setup Setup) Machine {
	m := &numberGuess{base: newBase(setup)}
	m.rules = numberGuessRules[m.difficulty()]
	if m.rules.max == 0 {
		m.rules = numberGuessRules[model.DefaultDifficulty]
	}
	m.secret = 1 + m.random.Intn(m.rules.max)
	m.low, m.high = 1, m.rules.max
	return m
}

func (m *numberGuess) Start() (Step, error) {
	text := fmt.Sprintf("I'm thinking of a number between 1 and %d. You have %d attempts.", m.rules.max, m.rules.attempts)
	if m.vsComputer() {
		text += " The computer is guessing too, first to find it wins!"
	}
	return Step{Renders: []model.RenderInstruction{m.render(text)}}, nil
}

func (m *numberGuess) ExpectedActors() []model.PlayerID {
	if m.done {
		return nil
	}
	return []model.PlayerID{m.host()}
}

func (m *numberGuess) Tick(string) (Step, error) {
	return Step{}, nil
}

func (m *numberGuess) Handle(a model.PlayerAction) (Step, error) {
	if err := m.errIfDone(); err != nil {
		return Step{}, err
	}
	if a.Kind != model.ActionNumber && a.Kind != model.ActionText {
		return Step{}, unexpected(a.Kind)
	}
	guess, err := a.Int(1, m.rules.max)
	if err != nil {
		return Step{}, err
	}

	m.attempts++
	if guess == m.secret {
		summary := fmt.Sprintf("🎯 %d is correct! Found in %d attempts.", m.secret, m.attempts)
		result := m.newResult(summary).Set(m.host(), model.OutcomeWin, model.Aux{Attempts: m.attempts})
		result.Winner = m.host()
		return m.end(result, 0), nil
	}

	hint := m.narrow(guess)
	step := Step{Renders: []model.RenderInstruction{m.render(fmt.Sprintf("%d is wrong. Go %s! (%d attempts left)",
		guess, hint, m.rules.attempts-m.attempts))}}

	if m.vsComputer() {
		cpu := m.engine.NumberGuess(m.difficulty(), m.low, m.high)
		if cpu == m.secret {
			summary := fmt.Sprintf("🤖 Computer guessed %d and found it first!", cpu)
			result := m.newResult(summary).Set(m.host(), model.OutcomeLoss, model.Aux{Attempts: m.attempts})
			result.Winner = model.ComputerID
			end := m.end(result, ComputerDelay)
			step.Renders = append(step.Renders, end.Renders...)
			step.Result = end.Result
			return step, nil
		}
		cpuHint := m.narrow(cpu)
		r := m.render(fmt.Sprintf("🤖 Computer guessed %d. Go %s!", cpu, cpuHint))
		r.Delay = ComputerDelay
		step.Renders = append(step.Renders, r)
	}

	if m.attempts >= m.rules.attempts {
		summary := fmt.Sprintf("Out of attempts! The number was **%d**.", m.secret)
		result := m.newResult(summary).Set(m.host(), model.OutcomeLoss, model.Aux{Attempts: m.attempts})
		end := m.end(result, 0)
		step.Renders = append(step.Renders, end.Renders...)
		step.Result = end.Result
	}
	return step, nil
}

// narrow applies the hint for a wrong guess and returns it
func (m *numberGuess) narrow(guess int) string {
	if guess < m.secret {
		m.low = max(m.low, guess+1)
		return "higher"
	}
	m.high = min(m.high, guess-1)
	return "lower"
}

func (m *numberGuess) end(result *model.GameResult, delay time.Duration) Step {
	r := m.render(result.Summary)
	r.Final = true
	r.Delay = delay
	return Step{Renders: []model.RenderInstruction{r}, Result: m.finish(result)}
}
