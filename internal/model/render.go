package model

import (
	"strconv"
	"time"
)

// ControlStyle is a rendering hint for a control
type ControlStyle string

const (
	StylePrimary   ControlStyle = "primary"
	StyleSecondary ControlStyle = "secondary"
	StyleSuccess   ControlStyle = "success"
	StyleDanger    ControlStyle = "danger"
)

// Control is one clickable input. Clicking it produces a PlayerAction
// with the same Kind and Value.
type Control struct {
	Kind     ActionKind   `json:"kind"`
	Value    string       `json:"value"`
	Label    string       `json:"label"`
	Style    ControlStyle `json:"style,omitempty"`
	Disabled bool         `json:"disabled,omitempty"`
}

// RenderInstruction is an opaque UI update for the interaction channel
type RenderInstruction struct {
	SessionID SessionID `json:"sessionId"`
	// Recipient restricts the render to one player; empty means the channel
	Recipient PlayerID    `json:"recipient,omitempty"`
	Title     string      `json:"title,omitempty"`
	Text      string      `json:"text"`
	Board     []string    `json:"board,omitempty"`
	Controls  [][]Control `json:"controls,omitempty"`
	// Delay is a pacing hint; the channel should wait before showing it
	Delay time.Duration `json:"delay,omitempty"`
	Final bool          `json:"final,omitempty"`
}

// IndexControls builds one row of controls valued 0..len(labels)-1
func IndexControls(kind ActionKind, labels []string, style ControlStyle) []Control {
	row := make([]Control, len(labels))
	for i, l := range labels {
		row[i] = Control{Kind: kind, Value: strconv.Itoa(i), Label: l, Style: style}
	}
	return row
}

// DisableAll returns a copy of controls with every control disabled
func DisableAll(controls [][]Control) [][]Control {
	out := make([][]Control, len(controls))
	for i, row := range controls {
		out[i] = make([]Control, len(row))
		for j, c := range row {
			c.Disabled = true
			out[i][j] = c
		}
	}
	return out
}
