package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// GameType identifies one of the playable mini-games
type GameType string

const (
	GameTicTacToe   GameType = "tictactoe"
	GameHangman     GameType = "hangman"
	GameWordle      GameType = "wordle"
	GameMemory      GameType = "memory"
	GameNumberGuess GameType = "guess"
	GameTrivia      GameType = "trivia"
	GameRPS         GameType = "rps"
	GameConnectFour GameType = "connectfour"
	GameReaction    GameType = "reaction"
	GameQuizBattle  GameType = "quizbattle"
	GameShooter     GameType = "shooter"
)

// GameInfo holds display metadata for a game type
type GameInfo struct {
	Name string
	Icon string
}

var gameInfo = map[GameType]GameInfo{
	GameTicTacToe:   {Name: "Tic-Tac-Toe", Icon: "❌"},
	GameHangman:     {Name: "Hangman", Icon: "🪢"},
	GameWordle:      {Name: "Wordle", Icon: "🟩"},
	GameMemory:      {Name: "Memory Match", Icon: "🧠"},
	GameNumberGuess: {Name: "Number Guess", Icon: "🔢"},
	GameTrivia:      {Name: "Trivia", Icon: "❓"},
	GameRPS:         {Name: "Rock Paper Scissors", Icon: "✂️"},
	GameConnectFour: {Name: "Connect Four", Icon: "🔴"},
	GameReaction:    {Name: "Reaction Time", Icon: "⚡"},
	GameQuizBattle:  {Name: "Quiz Battle", Icon: "🏆"},
	GameShooter:     {Name: "Target Shooter", Icon: "🎯"},
}

// AllGameTypes lists every game type in display order
func AllGameTypes() []GameType {
	return []GameType{
		GameTicTacToe, GameHangman, GameWordle, GameMemory, GameNumberGuess, GameTrivia,
		GameRPS, GameConnectFour, GameReaction, GameQuizBattle, GameShooter,
	}
}

// Info returns display metadata for the game type
func (g GameType) Info() GameInfo {
	if info, ok := gameInfo[g]; ok {
		return info
	}
	return GameInfo{Name: string(g), Icon: "🎮"}
}

// Valid reports whether g is a known game type
func (g GameType) Valid() bool {
	_, ok := gameInfo[g]
	return ok
}

// Fold normalizes user input for case-insensitive comparison
func Fold(s string) string {
	// Casers are stateful; one per call
	return cases.Fold().String(strings.TrimSpace(s))
}

// ParseGameType resolves user input to a game type. Both ids and display
// names are accepted, case-insensitively.
func ParseGameType(s string) (GameType, error) {
	in := Fold(s)
	for _, g := range AllGameTypes() {
		if in == string(g) || in == Fold(g.Info().Name) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGameType, s)
}

// Mode is how a session is played
type Mode string

const (
	ModeSolo        Mode = "solo"
	ModeComputer    Mode = "computer"
	ModeMultiplayer Mode = "multiplayer"
)

// RequiredPlayers returns how many human players the mode binds
func (m Mode) RequiredPlayers() int {
	if m == ModeMultiplayer {
		return 2
	}
	return 1
}

// ParseMode resolves user input to a mode, defaulting to solo
func ParseMode(s string) (Mode, error) {
	switch Fold(s) {
	case "", "solo":
		return ModeSolo, nil
	case "computer", "ai", "vs-computer", "bot":
		return ModeComputer, nil
	case "multiplayer", "pvp", "versus":
		return ModeMultiplayer, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrUnsupportedMode, s)
	}
}

// Difficulty controls opponent strength and content buckets
type Difficulty string

const (
	DifficultyEasy       Difficulty = "easy"
	DifficultyHard       Difficulty = "hard"
	DifficultyImpossible Difficulty = "impossible"

	DefaultDifficulty = DifficultyHard
)

// ParseDifficulty resolves user input, defaulting to hard
func ParseDifficulty(s string) (Difficulty, error) {
	switch Fold(s) {
	case "":
		return DefaultDifficulty, nil
	case "easy":
		return DifficultyEasy, nil
	case "hard":
		return DifficultyHard, nil
	case "impossible":
		return DifficultyImpossible, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrMalformedAction, s)
	}
}
