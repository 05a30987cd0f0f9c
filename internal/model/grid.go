package model

import "slices"

// Mark is the content of a grid cell
type Mark rune

const (
	MarkEmpty Mark = 0
	MarkX     Mark = 'X'
	MarkO     Mark = 'O'
)

// Grid is a rectangular board of marks used by tic-tac-toe and connect-four
type Grid struct {
	Rows  int
	Cols  int
	Cells []Mark // Row-major: Cells[row*Cols+col], MarkEmpty means empty
}

// NewGrid creates an empty grid
func NewGrid(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, Cells: make([]Mark, rows*cols)}
}

// Index returns the flat index of the cell at (row, col)
func (g *Grid) Index(row, col int) int {
	return row*g.Cols + col
}

// IsValid returns true if the position is within bounds
func (g *Grid) IsValid(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Get returns the mark at the given position, or MarkEmpty if out of bounds
func (g *Grid) Get(row, col int) Mark {
	if !g.IsValid(row, col) {
		return MarkEmpty
	}
	return g.Cells[g.Index(row, col)]
}

// Set places a mark at the given position
func (g *Grid) Set(row, col int, m Mark) {
	if g.IsValid(row, col) {
		g.Cells[g.Index(row, col)] = m
	}
}

// IsFull returns true if all cells are filled
func (g *Grid) IsFull() bool {
	return !slices.Contains(g.Cells, MarkEmpty)
}

// EmptyCells returns the flat indexes of empty cells in ascending order
func (g *Grid) EmptyCells() []int {
	var out []int
	for i, m := range g.Cells {
		if m == MarkEmpty {
			out = append(out, i)
		}
	}
	return out
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	return &Grid{Rows: g.Rows, Cols: g.Cols, Cells: slices.Clone(g.Cells)}
}

// DropRow returns the lowest empty row in col, or -1 if the column is full
func (g *Grid) DropRow(col int) int {
	for row := g.Rows - 1; row >= 0; row-- {
		if g.Get(row, col) == MarkEmpty {
			return row
		}
	}
	return -1
}

// OpenColumns returns the columns that can still take a piece
func (g *Grid) OpenColumns() []int {
	var out []int
	for col := 0; col < g.Cols; col++ {
		if g.Get(0, col) == MarkEmpty {
			out = append(out, col)
		}
	}
	return out
}

var directions = [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// HasRun reports whether m occupies n consecutive cells in any
// horizontal, vertical or diagonal line
func (g *Grid) HasRun(m Mark, n int) bool {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.Get(row, col) != m {
				continue
			}
			for _, d := range directions {
				k := 1
				for k < n && g.Get(row+d[0]*k, col+d[1]*k) == m {
					k++
				}
				if k == n {
					return true
				}
			}
		}
	}
	return false
}
