package games

import (
	"fmt"
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
)

const reactionRounds = 3

// reactionWaits bounds the random delay before the go signal. Harder
// levels wait less on average and over a wider window.
var reactionWaits = map[model.Difficulty][2]time.Duration{
	model.DifficultyEasy:       {4 * time.Second, 5 * time.Second},
	model.DifficultyHard:       {2 * time.Second, 5 * time.Second},
	model.DifficultyImpossible: {500 * time.Millisecond, 5500 * time.Millisecond},
}

type reaction struct {
	base
	round int
	// goAt is zero while waiting for the go signal
	goAt  time.Time
	times []time.Duration
	tick  string
}

func newReaction(setup Setup) Machine {
	return &reaction{base: newBase(setup), round: 1}
}

func (m *reaction) Start() (Step, error) {
	return m.arm(fmt.Sprintf("Click as soon as the button turns green. %d rounds.", reactionRounds)), nil
}

func (m *reaction) ExpectedActors() []model.PlayerID {
	if m.done {
		return nil
	}
	return []model.PlayerID{m.host()}
}

// arm shows the waiting screen and schedules the go signal
func (m *reaction) arm(text string) Step {
	bounds, ok := reactionWaits[m.difficulty()]
	if !ok {
		bounds = reactionWaits[model.DefaultDifficulty]
	}
	spread := int((bounds[1] - bounds[0]) / time.Millisecond)
	wait := bounds[0] + time.Duration(m.random.Intn(spread+1))*time.Millisecond

	m.goAt = time.Time{}
	m.tick = m.nextTick("go")

	r := m.render(fmt.Sprintf("%s\n**Round %d/%d:** wait for it...", text, m.round, reactionRounds))
	r.Controls = [][]model.Control{{{Kind: model.ActionClick, Value: "click", Label: "Wait...", Style: model.StyleDanger}}}
	return Step{
		Renders:  []model.RenderInstruction{r},
		Schedule: []Tick{{Kind: m.tick, After: wait}},
	}
}

func (m *reaction) Tick(kind string) (Step, error) {
	if m.done || kind != m.tick || !m.goAt.IsZero() {
		return Step{}, nil
	}
	m.goAt = m.clock.Now()
	r := m.render(fmt.Sprintf("**Round %d/%d: GO!**", m.round, reactionRounds))
	r.Controls = [][]model.Control{{{Kind: model.ActionClick, Value: "click", Label: "CLICK!", Style: model.StyleSuccess}}}
	return Step{Renders: []model.RenderInstruction{r}}, nil
}

func (m *reaction) Handle(a model.PlayerAction) (Step, error) {
	if err := m.errIfDone(); err != nil {
		return Step{}, err
	}
	if a.Kind != model.ActionClick {
		return Step{}, unexpected(a.Kind)
	}
	if m.goAt.IsZero() {
		return Step{}, model.ErrTooEarly
	}

	elapsed := m.clock.Now().Sub(m.goAt)
	m.times = append(m.times, elapsed)
	line := fmt.Sprintf("⚡ %d ms!", elapsed.Milliseconds())

	if m.round < reactionRounds {
		m.round++
		return m.arm(line), nil
	}

	var total, best time.Duration
	for i, t := range m.times {
		total += t
		if i == 0 || t < best {
			best = t
		}
	}
	avg := total / time.Duration(len(m.times))
	summary := fmt.Sprintf("%s\nAverage **%d ms**, best **%d ms**.", line, avg.Milliseconds(), best.Milliseconds())
	result := m.newResult(summary).Set(m.host(), model.OutcomeComplete, model.Aux{
		AvgTimeMs:  int(avg.Milliseconds()),
		BestTimeMs: int(best.Milliseconds()),
	})
	r := m.render(summary)
	r.Final = true
	return Step{Renders: []model.RenderInstruction{r}, Result: m.finish(result)}, nil
}
