package opponent

import (
	"math"

	"github.com/Jeet1511/EliteZero/internal/model"
)

const (
	scoreWin  = 10
	scoreLoss = -10
	scoreDraw = 0
)

// TicTacToeWinner returns the mark holding three in a row, or MarkEmpty
func TicTacToeWinner(board *model.Grid) model.Mark {
	for _, m := range []model.Mark{model.MarkX, model.MarkO} {
		if board.HasRun(m, 3) {
			return m
		}
	}
	return model.MarkEmpty
}

// TicTacToeMove returns the cell index the computer plays. It panics when
// the board is already decided or full.
func (e *Engine) TicTacToeMove(board *model.Grid, d model.Difficulty, ai, human model.Mark) int {
	empty := board.EmptyCells()
	if len(empty) == 0 || TicTacToeWinner(board) != model.MarkEmpty {
		panic("opponent: tic-tac-toe move requested on a finished board")
	}
	if e.playsOptimally(d) {
		return BestTicTacToeMove(board, ai, human)
	}
	return pick(e.random, empty)
}

// BestTicTacToeMove runs a full minimax search and returns the first
// cell, in index order, with the highest score for ai
func BestTicTacToeMove(board *model.Grid, ai, human model.Mark) int {
	best, bestScore := -1, math.MinInt
	for _, cell := range board.EmptyCells() {
		next := board.Clone()
		next.Cells[cell] = ai
		score := minimax(next, false, ai, human)
		if score > bestScore {
			best, bestScore = cell, score
		}
	}
	return best
}

// minimax scores a position from ai's point of view. Each branch works on
// its own copy of the board.
func minimax(board *model.Grid, aiToMove bool, ai, human model.Mark) int {
	switch {
	case board.HasRun(ai, 3):
		return scoreWin
	case board.HasRun(human, 3):
		return scoreLoss
	case board.IsFull():
		return scoreDraw
	}

	mover, best := human, math.MaxInt
	if aiToMove {
		mover, best = ai, math.MinInt
	}
	for _, cell := range board.EmptyCells() {
		next := board.Clone()
		next.Cells[cell] = mover
		score := minimax(next, !aiToMove, ai, human)
		if aiToMove {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}
