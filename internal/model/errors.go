package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrAlreadyInGame   = errors.New("player is already in a game")
	ErrAlreadyStarted  = errors.New("session has already started")
	ErrDuplicatePlayer = errors.New("player is already in this session")
	ErrGameNotActive   = errors.New("game is no longer active")
	ErrUnsupportedMode = errors.New("mode not supported for this game")
	ErrUnknownGameType = errors.New("unknown game type")

	// Action errors
	ErrNotParticipant = errors.New("player is not in this game")
	ErrNotPlayerTurn  = errors.New("not this player's turn")
	ErrInvalidAction  = errors.New("invalid action")

	// Stats errors
	ErrStatsNotFound = errors.New("no stats recorded for user")

	// Chat errors
	ErrAIUnavailable = errors.New("AI mode is not configured")
	ErrAINotActive   = errors.New("AI mode is not active")

	// ErrInternal is reported to a player when handling their action failed unexpectedly
	ErrInternal = errors.New("something went wrong")
)

// Invalid action variants. All of them match ErrInvalidAction with errors.Is.
var (
	ErrMalformedAction  = fmt.Errorf("%w: malformed input", ErrInvalidAction)
	ErrOutOfRange       = fmt.Errorf("%w: out of range", ErrInvalidAction)
	ErrCellOccupied     = fmt.Errorf("%w: cell is already occupied", ErrInvalidAction)
	ErrColumnFull       = fmt.Errorf("%w: column is full", ErrInvalidAction)
	ErrAlreadyGuessed   = fmt.Errorf("%w: already guessed", ErrInvalidAction)
	ErrWrongLength      = fmt.Errorf("%w: wrong word length", ErrInvalidAction)
	ErrCardUnavailable  = fmt.Errorf("%w: card cannot be flipped", ErrInvalidAction)
	ErrTooEarly         = fmt.Errorf("%w: too early", ErrInvalidAction)
	ErrAlreadyAnswered  = fmt.Errorf("%w: already answered", ErrInvalidAction)
	ErrUnexpectedAction = fmt.Errorf("%w: not expected now", ErrInvalidAction)
)
