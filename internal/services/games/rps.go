package games

import (
	"fmt"
	"slices"
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/opponent"
)

const (
	rpsRounds    = 5
	rpsWinTarget = 3
)

type rps struct {
	base
	round   int
	wins    map[model.PlayerID]int
	choices map[model.PlayerID]opponent.Throw
	// history is the host's throws, oldest first, for the computer to read
	history []opponent.Throw
	log     []string
}

func newRPS(setup Setup) Machine {
	return &rps{
		base:    newBase(setup),
		round:   1,
		wins:    make(map[model.PlayerID]int),
		choices: make(map[model.PlayerID]opponent.Throw),
	}
}

func (m *rps) seats() []model.PlayerID {
	return []model.PlayerID{m.host(), m.rival()}
}

func (m *rps) Start() (Step, error) {
	return Step{Renders: []model.RenderInstruction{m.prompt(fmt.Sprintf("Best of %d, first to %d wins!", rpsRounds, rpsWinTarget))}}, nil
}

// ExpectedActors stays open to both humans until the round resolves so a
// second throw is reported as already answered
func (m *rps) ExpectedActors() []model.PlayerID {
	if m.done {
		return nil
	}
	if m.vsComputer() {
		return []model.PlayerID{m.host()}
	}
	return m.seats()
}

func (m *rps) Tick(string) (Step, error) {
	return Step{}, nil
}

func (m *rps) Handle(a model.PlayerAction) (Step, error) {
	if err := m.errIfDone(); err != nil {
		return Step{}, err
	}
	if a.Kind != model.ActionChoice {
		return Step{}, unexpected(a.Kind)
	}
	throw, err := opponent.ParseThrow(a.Value)
	if err != nil {
		return Step{}, err
	}
	if _, ok := m.choices[a.ActorID]; ok {
		return Step{}, model.ErrAlreadyAnswered
	}

	if m.vsComputer() {
		cpu := m.engine.RPSMove(m.difficulty(), m.history)
		m.choices[a.ActorID] = throw
		m.choices[model.ComputerID] = cpu
		return m.resolve(ComputerDelay), nil
	}

	m.choices[a.ActorID] = throw
	if len(m.choices) < 2 {
		ack := m.whisper(a.ActorID, fmt.Sprintf("You chose %s %s. Waiting for your opponent...", throw.Emoji(), throw))
		wait := m.render(fmt.Sprintf("%s has chosen.", a.ActorID.Mention()))
		return Step{Renders: []model.RenderInstruction{ack, wait}}, nil
	}
	return m.resolve(0), nil
}

func (m *rps) resolve(delay time.Duration) Step {
	host, rival := m.host(), m.rival()
	h, r := m.choices[host], m.choices[rival]
	m.history = append(m.history, h)

	line := fmt.Sprintf("Round %d: %s %s vs %s %s. ", m.round, host.Mention(), h.Emoji(), r.Emoji(), rival.Mention())
	switch {
	case opponent.Beats(h, r):
		m.wins[host]++
		line += host.Mention() + " takes it."
	case opponent.Beats(r, h):
		m.wins[rival]++
		line += rival.Mention() + " takes it."
	default:
		line += "Tie."
	}
	m.log = append(m.log, line)
	m.choices = make(map[model.PlayerID]opponent.Throw)

	if m.wins[host] >= rpsWinTarget || m.wins[rival] >= rpsWinTarget || m.round >= rpsRounds {
		return m.end(delay)
	}
	m.round++
	p := m.prompt(line)
	p.Delay = delay
	return Step{Renders: []model.RenderInstruction{p}}
}

func (m *rps) end(delay time.Duration) Step {
	host, rival := m.host(), m.rival()
	winner := model.PlayerID("")
	switch {
	case m.wins[host] > m.wins[rival]:
		winner = host
	case m.wins[rival] > m.wins[host]:
		winner = rival
	}
	score := fmt.Sprintf("Final score %d-%d.", m.wins[host], m.wins[rival])
	summary := score + " It's a draw!"
	if winner != "" {
		summary = fmt.Sprintf("%s %s wins the match!", score, winner.Mention())
	}
	aux := map[model.PlayerID]model.Aux{
		host:  {Score: m.wins[host]},
		rival: {Score: m.wins[rival]},
	}
	result := m.finish(m.newResult(summary).Decide(m.seats(), winner, aux))

	r := m.render(summary)
	r.Board = slices.Clone(m.log)
	r.Delay = delay
	r.Final = true
	return Step{Renders: []model.RenderInstruction{r}, Result: result}
}

func (m *rps) prompt(text string) model.RenderInstruction {
	r := m.render(fmt.Sprintf("%s\n**Round %d** (%d-%d). Choose your move.", text, m.round, m.wins[m.host()], m.wins[m.rival()]))
	row := make([]model.Control, len(opponent.Throws))
	for i, t := range opponent.Throws {
		row[i] = model.Control{Kind: model.ActionChoice, Value: string(t), Label: t.Emoji(), Style: model.StylePrimary}
	}
	r.Controls = [][]model.Control{row}
	r.Board = slices.Clone(m.log)
	return r
}
