// Package games holds one state machine per mini-game. Machines are not
// safe for concurrent use; the play controller serializes every call for a
// session.
package games

import (
	"fmt"
	"strings"
	"time"

	"github.com/Jeet1511/EliteZero/internal/dependencies/clock"
	"github.com/Jeet1511/EliteZero/internal/dependencies/random"
	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/opponent"
)

// ComputerDelay is the pacing hint attached to computer move renders
const ComputerDelay = time.Second

// Tick asks the controller to call Machine.Tick(Kind) after the duration.
// Scheduling a kind that is already pending replaces it.
type Tick struct {
	Kind  string
	After time.Duration
}

// Step is what a machine produces for one input
type Step struct {
	Renders  []model.RenderInstruction
	Schedule []Tick
	Cancel   []string
	// Result is set exactly once, on the step that ends the game
	Result *model.GameResult
}

// Machine drives one game session.
// Handle and Tick must leave the machine unchanged when they return an error.
type Machine interface {
	Start() (Step, error)
	Handle(action model.PlayerAction) (Step, error)
	Tick(kind string) (Step, error)
	// ExpectedActors lists the players whose input is accepted right now
	ExpectedActors() []model.PlayerID
	// Timeout is the inactivity limit, restarted on each valid action
	Timeout() time.Duration
}

// Setup is everything a machine needs to start
type Setup struct {
	Session *model.Session
	Engine  *opponent.Engine
	Random  random.Random
	Clock   clock.Clock
	// Timeout is filled from the game's factory
	Timeout time.Duration
}

// base carries the shared machine state and render helpers
type base struct {
	session *model.Session
	engine  *opponent.Engine
	random  random.Random
	clock   clock.Clock
	timeout time.Duration
	done    bool
	tickSeq int
}

func newBase(setup Setup) base {
	return base{
		session: setup.Session,
		engine:  setup.Engine,
		random:  setup.Random,
		clock:   setup.Clock,
		timeout: setup.Timeout,
	}
}

func (b *base) Timeout() time.Duration {
	return b.timeout
}

func (b *base) difficulty() model.Difficulty {
	if b.session.Difficulty == "" {
		return model.DefaultDifficulty
	}
	return b.session.Difficulty
}

func (b *base) host() model.PlayerID {
	return b.session.HostID
}

// rival is the second seat: the joined player or the computer
func (b *base) rival() model.PlayerID {
	if b.session.Mode == model.ModeComputer {
		return model.ComputerID
	}
	return b.session.Opponent(b.session.HostID)
}

func (b *base) vsComputer() bool {
	return b.session.Mode == model.ModeComputer
}

func (b *base) title() string {
	info := b.session.GameType.Info()
	return fmt.Sprintf("%s %s", info.Icon, info.Name)
}

func (b *base) render(text string) model.RenderInstruction {
	return model.RenderInstruction{
		SessionID: b.session.ID,
		Title:     b.title(),
		Text:      text,
	}
}

func (b *base) whisper(to model.PlayerID, text string) model.RenderInstruction {
	r := b.render(text)
	r.Recipient = to
	return r
}

// nextTick returns a fresh tick kind so a late timer for an earlier round
// can be told apart from the current one
func (b *base) nextTick(prefix string) string {
	b.tickSeq++
	return fmt.Sprintf("%s-%d", prefix, b.tickSeq)
}

// finish marks the machine done and stamps the result
func (b *base) finish(r *model.GameResult) *model.GameResult {
	b.done = true
	r.EndedAt = b.clock.Now()
	return r
}

func (b *base) newResult(summary string) *model.GameResult {
	return model.NewResult(b.session, summary)
}

func (b *base) errIfDone() error {
	if b.done {
		return model.ErrGameNotActive
	}
	return nil
}

func unexpected(kind model.ActionKind) error {
	return fmt.Errorf("%w: %s", model.ErrUnexpectedAction, kind)
}

// isLetters reports whether s is non-empty and only A-Z
func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func markEmoji(m model.Mark) string {
	switch m {
	case model.MarkX:
		return "❌"
	case model.MarkO:
		return "⭕"
	}
	return "⬜"
}

func gridLines(g *model.Grid, cell func(model.Mark) string) []string {
	lines := make([]string, g.Rows)
	for row := 0; row < g.Rows; row++ {
		var sb strings.Builder
		for col := 0; col < g.Cols; col++ {
			sb.WriteString(cell(g.Get(row, col)))
		}
		lines[row] = sb.String()
	}
	return lines
}
