package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionKind is the kind of input a player sent
type ActionKind string

const (
	ActionCell    ActionKind = "cell"
	ActionColumn  ActionKind = "column"
	ActionLetter  ActionKind = "letter"
	ActionText    ActionKind = "text"
	ActionNumber  ActionKind = "number"
	ActionChoice  ActionKind = "choice"
	ActionFlip    ActionKind = "flip"
	ActionClick   ActionKind = "click"
	ActionShoot   ActionKind = "shoot"
	ActionAccept  ActionKind = "accept"
	ActionDecline ActionKind = "decline"
	ActionQuit    ActionKind = "quit"
)

// PlayerAction is one user input routed to a session
type PlayerAction struct {
	SessionID SessionID
	ActorID   PlayerID
	Kind      ActionKind
	Value     string
}

// Int parses the action value as an integer in [min, max]
func (a PlayerAction) Int(min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(a.Value))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedAction, a.Value)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("%w: %d not in %d-%d", ErrOutOfRange, n, min, max)
	}
	return n, nil
}

// Text returns the trimmed, upper-cased action value
func (a PlayerAction) Text() string {
	return strings.ToUpper(strings.TrimSpace(a.Value))
}
