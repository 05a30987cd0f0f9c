package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGameTypeAcceptsIDsAndNames(t *testing.T) {
	cases := map[string]GameType{
		"tictactoe":    GameTicTacToe,
		"Tic-Tac-Toe":  GameTicTacToe,
		"  WORDLE ":    GameWordle,
		"connect four": GameConnectFour,
		"QuizBattle":   GameQuizBattle,
	}
	for in, want := range cases {
		got, err := ParseGameType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseGameType("chess")
	assert.ErrorIs(t, err, ErrUnknownGameType)
}

func TestInvalidActionVariantsMatchParent(t *testing.T) {
	for _, err := range []error{ErrMalformedAction, ErrOutOfRange, ErrCellOccupied, ErrColumnFull,
		ErrAlreadyGuessed, ErrWrongLength, ErrCardUnavailable, ErrTooEarly, ErrAlreadyAnswered} {
		assert.True(t, errors.Is(err, ErrInvalidAction), err.Error())
	}
	assert.False(t, errors.Is(ErrNotPlayerTurn, ErrInvalidAction))
}

func TestGridHasRun(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(0, 0, MarkX)
	g.Set(1, 1, MarkX)
	assert.False(t, g.HasRun(MarkX, 3))

	g.Set(2, 2, MarkX)
	assert.True(t, g.HasRun(MarkX, 3))
	assert.False(t, g.HasRun(MarkO, 3))

	anti := NewGrid(3, 3)
	anti.Set(0, 2, MarkO)
	anti.Set(1, 1, MarkO)
	anti.Set(2, 0, MarkO)
	assert.True(t, anti.HasRun(MarkO, 3))
}

func TestGridDropRowAndOpenColumns(t *testing.T) {
	g := NewGrid(2, 3)
	assert.Equal(t, 1, g.DropRow(0))
	g.Set(1, 0, MarkX)
	assert.Equal(t, 0, g.DropRow(0))
	g.Set(0, 0, MarkO)
	assert.Equal(t, -1, g.DropRow(0))
	assert.Equal(t, []int{1, 2}, g.OpenColumns())
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid(3, 3)
	c := g.Clone()
	c.Set(1, 1, MarkX)
	assert.Equal(t, MarkEmpty, g.Get(1, 1))
	assert.Len(t, g.EmptyCells(), 9)
}

func TestResultDecide(t *testing.T) {
	s := &Session{ID: "s1", GameType: GameRPS, Mode: ModeMultiplayer, Players: []PlayerID{"a", "b"}}

	r := NewResult(s, "").Decide(s.Players, "a", map[PlayerID]Aux{"a": {Score: 3}})
	assert.Equal(t, OutcomeWin, r.Outcomes["a"].Outcome)
	assert.Equal(t, 3, r.Outcomes["a"].Aux.Score)
	assert.Equal(t, OutcomeLoss, r.Outcomes["b"].Outcome)

	draw := NewResult(s, "").Decide(s.Players, "", nil)
	assert.Equal(t, OutcomeDraw, draw.Outcomes["a"].Outcome)
	assert.Equal(t, OutcomeDraw, draw.Outcomes["b"].Outcome)
}

func TestResultSkipsComputer(t *testing.T) {
	s := &Session{ID: "s1", GameType: GameTicTacToe, Mode: ModeComputer, Players: []PlayerID{"a"}}
	r := NewResult(s, "").Decide([]PlayerID{"a", ComputerID}, ComputerID, nil)
	assert.Len(t, r.Outcomes, 1)
	assert.Equal(t, OutcomeLoss, r.Outcomes["a"].Outcome)
}

func TestActionInt(t *testing.T) {
	a := PlayerAction{Value: " 42 "}
	n, err := a.Int(1, 50)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = a.Int(1, 10)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = PlayerAction{Value: "abc"}.Int(1, 10)
	assert.ErrorIs(t, err, ErrMalformedAction)
}
