package model

import (
	"maps"
	"time"
)

// Outcome is a player's result in a finished game
type Outcome string

const (
	OutcomeWin      Outcome = "win"
	OutcomeLoss     Outcome = "loss"
	OutcomeDraw     Outcome = "draw"
	OutcomeComplete Outcome = "complete"
)

// Aux carries the game-specific metrics used for points and bests.
// Zero means "not applicable".
type Aux struct {
	Attempts   int `json:"attempts,omitempty"`
	Moves      int `json:"moves,omitempty"`
	Score      int `json:"score,omitempty"`
	Correct    int `json:"correct,omitempty"`
	Hits       int `json:"hits,omitempty"`
	AvgTimeMs  int `json:"avgTimeMs,omitempty"`
	BestTimeMs int `json:"bestTimeMs,omitempty"`
}

// PlayerOutcome is one participant's outcome
type PlayerOutcome struct {
	Outcome Outcome `json:"outcome"`
	Aux     Aux     `json:"aux"`
}

// GameResult is the terminal event of a session
type GameResult struct {
	SessionID SessionID                  `json:"sessionId"`
	GameType  GameType                   `json:"gameType"`
	Mode      Mode                       `json:"mode"`
	Outcomes  map[PlayerID]PlayerOutcome `json:"outcomes"`
	// Winner is empty for draws and single-player completions
	Winner  PlayerID  `json:"winner,omitempty"`
	Summary string    `json:"summary"`
	EndedAt time.Time `json:"endedAt"`
}

// Clone returns a deep copy of the result
func (r *GameResult) Clone() *GameResult {
	c := *r
	c.Outcomes = maps.Clone(r.Outcomes)
	return &c
}

// NewResult builds a result for the given session
func NewResult(s *Session, summary string) *GameResult {
	return &GameResult{
		SessionID: s.ID,
		GameType:  s.GameType,
		Mode:      s.Mode,
		Outcomes:  make(map[PlayerID]PlayerOutcome, len(s.Players)),
		Summary:   summary,
	}
}

// Set records an outcome for a human participant; the computer is skipped
func (r *GameResult) Set(id PlayerID, outcome Outcome, aux Aux) *GameResult {
	if id == "" || id.IsComputer() {
		return r
	}
	r.Outcomes[id] = PlayerOutcome{Outcome: outcome, Aux: aux}
	return r
}

// Decide records a two-sided result. An empty winner means a draw.
func (r *GameResult) Decide(players []PlayerID, winner PlayerID, aux map[PlayerID]Aux) *GameResult {
	r.Winner = winner
	for _, p := range players {
		switch {
		case winner == "":
			r.Set(p, OutcomeDraw, aux[p])
		case p == winner:
			r.Set(p, OutcomeWin, aux[p])
		default:
			r.Set(p, OutcomeLoss, aux[p])
		}
	}
	return r
}
