package opponent

import "github.com/Jeet1511/EliteZero/internal/model"

// ConnectFourLength is the run length that wins connect-four
const ConnectFourLength = 4

// ConnectFourMove returns the column the computer drops into. On hard and
// impossible it takes a winning column, else blocks the human's winning
// column, else plays randomly. It panics when every column is full.
func (e *Engine) ConnectFourMove(board *model.Grid, d model.Difficulty, ai, human model.Mark) int {
	open := board.OpenColumns()
	if len(open) == 0 {
		panic("opponent: connect-four move requested on a full board")
	}
	if d != model.DifficultyEasy {
		if col, ok := winningColumn(board, open, ai); ok {
			return col
		}
		if col, ok := winningColumn(board, open, human); ok {
			return col
		}
	}
	return pick(e.random, open)
}

func winningColumn(board *model.Grid, open []int, m model.Mark) (int, bool) {
	for _, col := range open {
		next := board.Clone()
		next.Set(next.DropRow(col), col, m)
		if next.HasRun(m, ConnectFourLength) {
			return col, true
		}
	}
	return 0, false
}
