package model

import "fmt"

// PlayerID uniquely identifies a player across the system (a chat user id)
type PlayerID string

// ComputerID is the pseudo-player used in results and renders for the
// computer opponent. It is never bound in the session store.
const ComputerID PlayerID = "computer"

// Mention returns the chat mention markup for the player
func (p PlayerID) Mention() string {
	if p == ComputerID {
		return "🤖 Computer"
	}
	return fmt.Sprintf("<@%s>", string(p))
}

// IsComputer reports whether the id is the computer opponent
func (p PlayerID) IsComputer() bool {
	return p == ComputerID
}
