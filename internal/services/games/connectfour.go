package games

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/opponent"
)

const (
	connectFourRows = 6
	connectFourCols = 7
)

type connectFour struct {
	base
	board *model.Grid
	marks map[model.PlayerID]model.Mark
	turn  model.PlayerID
	moves map[model.PlayerID]int
}

func newConnectFour(setup Setup) Machine {
	m := &connectFour{
		base:  newBase(setup),
		board: model.NewGrid(connectFourRows, connectFourCols),
		moves: make(map[model.PlayerID]int),
	}
	m.marks = map[model.PlayerID]model.Mark{
		m.host():  model.MarkX,
		m.rival(): model.MarkO,
	}
	m.turn = m.host()
	return m
}

func discEmoji(m model.Mark) string {
	switch m {
	case model.MarkX:
		return "🔴"
	case model.MarkO:
		return "🟡"
	}
	return "⚫"
}

func (m *connectFour) Start() (Step, error) {
	return Step{Renders: []model.RenderInstruction{m.boardRender(m.turnText(), 0)}}, nil
}

func (m *connectFour) ExpectedActors() []model.PlayerID {
	if m.done || m.turn.IsComputer() {
		return nil
	}
	return []model.PlayerID{m.turn}
}

func (m *connectFour) Tick(string) (Step, error) {
	return Step{}, nil
}

func (m *connectFour) Handle(a model.PlayerAction) (Step, error) {
	if err := m.errIfDone(); err != nil {
		return Step{}, err
	}
	if a.Kind != model.ActionColumn {
		return Step{}, unexpected(a.Kind)
	}
	col, err := a.Int(0, connectFourCols-1)
	if err != nil {
		return Step{}, err
	}
	if m.board.DropRow(col) < 0 {
		return Step{}, model.ErrColumnFull
	}

	var step Step
	if result := m.drop(a.ActorID, col); result != nil {
		step.Result = result
		step.Renders = append(step.Renders, m.finalRender(result, 0))
		return step, nil
	}
	if !m.vsComputer() {
		step.Renders = append(step.Renders, m.boardRender(m.turnText(), 0))
		return step, nil
	}

	step.Renders = append(step.Renders, m.boardRender("🤖 Computer is thinking...", 0))
	ai := m.engine.ConnectFourMove(m.board, m.difficulty(), model.MarkO, model.MarkX)
	if result := m.drop(model.ComputerID, ai); result != nil {
		step.Result = result
		step.Renders = append(step.Renders, m.finalRender(result, ComputerDelay))
		return step, nil
	}
	step.Renders = append(step.Renders, m.boardRender(
		fmt.Sprintf("🤖 Computer dropped in column %d. %s", ai+1, m.turnText()), ComputerDelay))
	return step, nil
}

func (m *connectFour) drop(player model.PlayerID, col int) *model.GameResult {
	mark := m.marks[player]
	m.board.Set(m.board.DropRow(col), col, mark)
	m.moves[player]++

	winner := model.PlayerID("")
	switch {
	case m.board.HasRun(mark, opponent.ConnectFourLength):
		winner = player
	case m.board.IsFull():
	default:
		m.turn = m.other(player)
		return nil
	}

	summary := "The board is full. It's a draw!"
	if winner != "" {
		summary = fmt.Sprintf("%s connects four and wins!", winner.Mention())
	}
	aux := map[model.PlayerID]model.Aux{
		m.host():  {Moves: m.moves[m.host()]},
		m.rival(): {Moves: m.moves[m.rival()]},
	}
	return m.finish(m.newResult(summary).Decide([]model.PlayerID{m.host(), m.rival()}, winner, aux))
}

func (m *connectFour) other(p model.PlayerID) model.PlayerID {
	if p == m.host() {
		return m.rival()
	}
	return m.host()
}

func (m *connectFour) turnText() string {
	return fmt.Sprintf("%s's turn (%s)", m.turn.Mention(), discEmoji(m.marks[m.turn]))
}

// controls splits the seven column buttons over two rows
func (m *connectFour) controls() [][]model.Control {
	var rows [][]model.Control
	var row []model.Control
	for col := 0; col < connectFourCols; col++ {
		row = append(row, model.Control{
			Kind:     model.ActionColumn,
			Value:    strconv.Itoa(col),
			Label:    strconv.Itoa(col + 1),
			Style:    model.StylePrimary,
			Disabled: m.board.DropRow(col) < 0 || m.done,
		})
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	return append(rows, row)
}

func (m *connectFour) boardRender(text string, delay time.Duration) model.RenderInstruction {
	r := m.render(text)
	r.Board = gridLines(m.board, discEmoji)
	r.Controls = m.controls()
	r.Delay = delay
	return r
}

func (m *connectFour) finalRender(result *model.GameResult, delay time.Duration) model.RenderInstruction {
	r := m.boardRender(result.Summary, delay)
	r.Controls = model.DisableAll(r.Controls)
	r.Final = true
	return r
}
