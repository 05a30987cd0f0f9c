package games

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/opponent"
)

type ticTacToe struct {
	base
	board *model.Grid
	marks map[model.PlayerID]model.Mark
	turn  model.PlayerID
	moves map[model.PlayerID]int
}

func newTicTacToe(setup Setup) Machine {
	m := &ticTacToe{
		base:  newBase(setup),
		board: model.NewGrid(3, 3),
		moves: make(map[model.PlayerID]int),
	}
	m.marks = map[model.PlayerID]model.Mark{
		m.host():  model.MarkX,
		m.rival(): model.MarkO,
	}
	m.turn = m.host()
	return m
}

func (m *ticTacToe) Start() (Step, error) {
	return Step{Renders: []model.RenderInstruction{m.boardRender(m.turnText(), 0)}}, nil
}

func (m *ticTacToe) ExpectedActors() []model.PlayerID {
	if m.done || m.turn.IsComputer() {
		return nil
	}
	return []model.PlayerID{m.turn}
}

func (m *ticTacToe) Tick(string) (Step, error) {
	return Step{}, nil
}

func (m *ticTacToe) Handle(a model.PlayerAction) (Step, error) {
	if err := m.errIfDone(); err != nil {
		return Step{}, err
	}
	if a.Kind != model.ActionCell {
		return Step{}, unexpected(a.Kind)
	}
	cell, err := a.Int(0, 8)
	if err != nil {
		return Step{}, err
	}
	if m.board.Cells[cell] != model.MarkEmpty {
		return Step{}, model.ErrCellOccupied
	}

	var step Step
	if result := m.place(a.ActorID, cell); result != nil {
		step.Result = result
		step.Renders = append(step.Renders, m.finalRender(result))
		return step, nil
	}

	if !m.vsComputer() {
		step.Renders = append(step.Renders, m.boardRender(m.turnText(), 0))
		return step, nil
	}

	step.Renders = append(step.Renders, m.boardRender("🤖 Computer is thinking...", 0))
	ai := m.engine.TicTacToeMove(m.board, m.difficulty(), model.MarkO, model.MarkX)
	if result := m.place(model.ComputerID, ai); result != nil {
		step.Result = result
		final := m.finalRender(result)
		final.Delay = ComputerDelay
		step.Renders = append(step.Renders, final)
		return step, nil
	}
	step.Renders = append(step.Renders, m.boardRender(
		fmt.Sprintf("🤖 Computer played %d. %s", ai+1, m.turnText()), ComputerDelay))
	return step, nil
}

// place commits a move and returns the result if it ended the game
func (m *ticTacToe) place(player model.PlayerID, cell int) *model.GameResult {
	m.board.Cells[cell] = m.marks[player]
	m.moves[player]++

	winner := model.PlayerID("")
	switch opponent.TicTacToeWinner(m.board) {
	case model.MarkX:
		winner = m.host()
	case model.MarkO:
		winner = m.rival()
	default:
		if !m.board.IsFull() {
			m.turn = m.other(player)
			return nil
		}
	}

	summary := "It's a draw!"
	if winner != "" {
		summary = fmt.Sprintf("%s wins!", winner.Mention())
	}
	aux := map[model.PlayerID]model.Aux{
		m.host():  {Moves: m.moves[m.host()]},
		m.rival(): {Moves: m.moves[m.rival()]},
	}
	return m.finish(m.newResult(summary).Decide([]model.PlayerID{m.host(), m.rival()}, winner, aux))
}

func (m *ticTacToe) other(p model.PlayerID) model.PlayerID {
	if p == m.host() {
		return m.rival()
	}
	return m.host()
}

func (m *ticTacToe) turnText() string {
	return fmt.Sprintf("%s's turn (%s)", m.turn.Mention(), markEmoji(m.marks[m.turn]))
}

func (m *ticTacToe) controls() [][]model.Control {
	rows := make([][]model.Control, 3)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			idx := m.board.Index(row, col)
			mark := m.board.Cells[idx]
			rows[row] = append(rows[row], model.Control{
				Kind:     model.ActionCell,
				Value:    strconv.Itoa(idx),
				Label:    markEmoji(mark),
				Style:    model.StyleSecondary,
				Disabled: mark != model.MarkEmpty || m.done,
			})
		}
	}
	return rows
}

func (m *ticTacToe) boardRender(text string, delay time.Duration) model.RenderInstruction {
	r := m.render(text)
	r.Board = gridLines(m.board, markEmoji)
	r.Controls = m.controls()
	r.Delay = delay
	return r
}

func (m *ticTacToe) finalRender(result *model.GameResult) model.RenderInstruction {
	r := m.render(result.Summary)
	r.Board = gridLines(m.board, markEmoji)
	r.Controls = model.DisableAll(m.controls())
	r.Final = true
	return r
}
