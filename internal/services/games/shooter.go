package games

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
)

const (
	shooterRounds = 10
	shooterCells  = 9
	// HitPoints is the base score of a hit before the combo bonus
	HitPoints = 10
)

var shooterWindows = map[model.Difficulty]time.Duration{
	model.DifficultyEasy:       5 * time.Second,
	model.DifficultyHard:       3 * time.Second,
	model.DifficultyImpossible: 2 * time.Second,
}

// ComboBonus returns the extra points for a hit that brings the combo to n
func ComboBonus(n int) int {
	switch {
	case n >= 5:
		return 15
	case n >= 3:
		return 10
	case n == 2:
		return 5
	}
	return 0
}

type shooter struct {
	base
	round  int
	target int
	combo  int
	score  int
	hits   int
	tick   string
}

func newShooter(setup Setup) Machine {
	return &shooter{base: newBase(setup)}
}

func (m *shooter) window() time.Duration {
	if w, ok := shooterWindows[m.difficulty()]; ok {
		return w
	}
	return shooterWindows[model.DefaultDifficulty]
}

func (m *shooter) Start() (Step, error) {
	return m.next(fmt.Sprintf("Hit the 🎯 before it moves! %d rounds.", shooterRounds), ""), nil
}

func (m *shooter) ExpectedActors() []model.PlayerID {
	if m.done {
		return nil
	}
	return []model.PlayerID{m.host()}
}

func (m *shooter) Handle(a model.PlayerAction) (Step, error) {
	if err := m.errIfDone(); err != nil {
		return Step{}, err
	}
	if a.Kind != model.ActionShoot {
		return Step{}, unexpected(a.Kind)
	}
	cell, err := a.Int(0, shooterCells-1)
	if err != nil {
		return Step{}, err
	}

	if cell != m.target {
		m.combo = 0
		return m.next("💨 Missed!", m.tick), nil
	}
	m.combo++
	points := HitPoints + ComboBonus(m.combo)
	m.score += points
	m.hits++
	line := fmt.Sprintf("💥 Hit! +%d", points)
	if m.combo >= 2 {
		line += fmt.Sprintf(" (combo x%d)", m.combo)
	}
	return m.next(line, m.tick), nil
}

func (m *shooter) Tick(kind string) (Step, error) {
	if m.done || kind != m.tick {
		return Step{}, nil
	}
	m.combo = 0
	return m.next("⏰ Too slow!", ""), nil
}

// next places a new target or ends the game after the last round
func (m *shooter) next(line, cancel string) Step {
	var step Step
	if cancel != "" {
		step.Cancel = []string{cancel}
	}
	if m.round >= shooterRounds {
		summary := fmt.Sprintf("%s\nFinal score **%d** with %d/%d hits.", line, m.score, m.hits, shooterRounds)
		result := m.newResult(summary).Set(m.host(), model.OutcomeComplete, model.Aux{Score: m.score, Hits: m.hits})
		r := m.render(summary)
		r.Final = true
		step.Renders = []model.RenderInstruction{r}
		step.Result = m.finish(result)
		return step
	}

	m.round++
	m.target = m.random.Intn(shooterCells)
	m.tick = m.nextTick("target")

	r := m.render(fmt.Sprintf("%s\n**Round %d/%d**. Score %d.", line, m.round, shooterRounds, m.score))
	r.Controls = make([][]model.Control, 3)
	for i := 0; i < shooterCells; i++ {
		label := "⬛"
		if i == m.target {
			label = "🎯"
		}
		r.Controls[i/3] = append(r.Controls[i/3], model.Control{
			Kind: model.ActionShoot, Value: strconv.Itoa(i), Label: label, Style: model.StyleSecondary,
		})
	}
	step.Renders = []model.RenderInstruction{r}
	step.Schedule = []Tick{{Kind: m.tick, After: m.window()}}
	return step
}
