package discord

import (
	"fmt"
	"strings"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// customIDPrefix marks buttons that belong to a game session
const customIDPrefix = "ez"

// CustomID encodes a control as a button custom id: ez:<session>:<kind>:<value>
func CustomID(sessionID model.SessionID, kind model.ActionKind, value string) string {
	return strings.Join([]string{customIDPrefix, string(sessionID), string(kind), value}, ":")
}

// ParseCustomID decodes a button click into an action for actor. The value
// may itself contain colons.
func ParseCustomID(id string, actor model.PlayerID) (model.PlayerAction, error) {
	parts := strings.SplitN(id, ":", 4)
	if len(parts) != 4 || parts[0] != customIDPrefix || parts[1] == "" || parts[2] == "" {
		return model.PlayerAction{}, fmt.Errorf("%w: custom id %q", model.ErrMalformedAction, id)
	}
	return model.PlayerAction{
		SessionID: model.SessionID(parts[1]),
		ActorID:   actor,
		Kind:      model.ActionKind(parts[2]),
		Value:     parts[3],
	}, nil
}
