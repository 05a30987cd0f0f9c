package games

import (
	"fmt"
	"strconv"

	"github.com/Jeet1511/EliteZero/internal/model"
)

const (
	memorySize  = 4
	memoryCards = memorySize * memorySize
)

var memoryFaces = []string{"🍎", "🍌", "🍇", "🍓", "🍒", "🍑", "🍍", "🥝"}

type memory struct {
	base
	cards   []string
	matched []bool
	// first is the index of the card flipped this move, or -1
	first int
	// shown holds a mismatched pair left face up until the next flip
	shown []int
	turn  model.PlayerID
	pairs map[model.PlayerID]int
	moves map[model.PlayerID]int
}

func newMemory(setup Setup) Machine {
	m := &memory{
		base:    newBase(setup),
		cards:   make([]string, 0, memoryCards),
		matched: make([]bool, memoryCards),
		first:   -1,
		pairs:   make(map[model.PlayerID]int),
		moves:   make(map[model.PlayerID]int),
	}
	for _, f := range memoryFaces {
		m.cards = append(m.cards, f, f)
	}
	for i := len(m.cards) - 1; i > 0; i-- {
		j := m.random.Intn(i + 1)
		m.cards[i], m.cards[j] = m.cards[j], m.cards[i]
	}
	m.turn = m.host()
	return m
}

func (m *memory) multiplayer() bool {
	return m.session.Mode == model.ModeMultiplayer
}

func (m *memory) Start() (Step, error) {
	return Step{Renders: []model.RenderInstruction{m.state(m.prompt("Find all the pairs!"))}}, nil
}

func (m *memory) ExpectedActors() []model.PlayerID {
	if m.done {
		return nil
	}
	return []model.PlayerID{m.turn}
}

func (m *memory) Tick(string) (Step, error) {
	return Step{}, nil
}

func (m *memory) faceUp(i int) bool {
	if m.matched[i] || i == m.first {
		return true
	}
	for _, s := range m.shown {
		if s == i {
			return true
		}
	}
	return false
}

func (m *memory) Handle(a model.PlayerAction) (Step, error) {
	if err := m.errIfDone(); err != nil {
		return Step{}, err
	}
	if a.Kind != model.ActionFlip {
		return Step{}, unexpected(a.Kind)
	}
	idx, err := a.Int(0, memoryCards-1)
	if err != nil {
		return Step{}, err
	}
	if m.matched[idx] || idx == m.first {
		return Step{}, model.ErrCardUnavailable
	}

	// The previous mismatch hides on the next flip
	m.shown = nil

	if m.first < 0 {
		m.first = idx
		return Step{Renders: []model.RenderInstruction{m.state(m.prompt("Pick a second card."))}}, nil
	}

	first := m.first
	m.first = -1
	m.moves[a.ActorID]++

	if m.cards[first] != m.cards[idx] {
		m.shown = []int{first, idx}
		if m.multiplayer() {
			m.turn = m.session.Opponent(a.ActorID)
		}
		return Step{Renders: []model.RenderInstruction{m.state(m.prompt("No match."))}}, nil
	}

	m.matched[first], m.matched[idx] = true, true
	m.pairs[a.ActorID]++
	if m.allMatched() {
		return m.end(), nil
	}
	return Step{Renders: []model.RenderInstruction{m.state(m.prompt(fmt.Sprintf("Match! %s", m.cards[idx])))}}, nil
}

func (m *memory) allMatched() bool {
	for _, ok := range m.matched {
		if !ok {
			return false
		}
	}
	return true
}

func (m *memory) end() Step {
	var result *model.GameResult
	if !m.multiplayer() {
		moves := m.moves[m.host()]
		result = m.newResult(fmt.Sprintf("🧠 All pairs found in %d moves!", moves)).
			Set(m.host(), model.OutcomeWin, model.Aux{Moves: moves, Score: m.pairs[m.host()]})
		result.Winner = m.host()
	} else {
		host, rival := m.host(), m.rival()
		winner := model.PlayerID("")
		switch {
		case m.pairs[host] > m.pairs[rival]:
			winner = host
		case m.pairs[rival] > m.pairs[host]:
			winner = rival
		}
		summary := fmt.Sprintf("Pairs: %s %d, %s %d. It's a draw!", host.Mention(), m.pairs[host], rival.Mention(), m.pairs[rival])
		if winner != "" {
			summary = fmt.Sprintf("Pairs: %s %d, %s %d. %s wins!", host.Mention(), m.pairs[host], rival.Mention(), m.pairs[rival], winner.Mention())
		}
		aux := map[model.PlayerID]model.Aux{
			host:  {Moves: m.moves[host], Score: m.pairs[host]},
			rival: {Moves: m.moves[rival], Score: m.pairs[rival]},
		}
		result = m.newResult(summary).Decide([]model.PlayerID{host, rival}, winner, aux)
	}
	m.finish(result)
	r := m.state(result.Summary)
	r.Final = true
	return Step{Renders: []model.RenderInstruction{r}, Result: result}
}

func (m *memory) prompt(text string) string {
	if !m.multiplayer() {
		return text
	}
	return fmt.Sprintf("%s %s's turn.", text, m.turn.Mention())
}

func (m *memory) state(text string) model.RenderInstruction {
	r := m.render(text)
	r.Controls = make([][]model.Control, memorySize)
	for i := 0; i < memoryCards; i++ {
		label, style := "❓", model.StyleSecondary
		if m.faceUp(i) {
			label = m.cards[i]
		}
		if m.matched[i] {
			style = model.StyleSuccess
		}
		r.Controls[i/memorySize] = append(r.Controls[i/memorySize], model.Control{
			Kind:     model.ActionFlip,
			Value:    strconv.Itoa(i),
			Label:    label,
			Style:    style,
			Disabled: m.matched[i] || m.done,
		})
	}
	return r
}
