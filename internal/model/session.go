package model

import (
	"slices"
	"time"
)

// SessionID uniquely identifies a game session
type SessionID string

// SessionState represents the lifecycle state of a session
type SessionState string

const (
	SessionWaiting  SessionState = "waiting"
	SessionActive   SessionState = "active"
	SessionFinished SessionState = "finished"
)

// EndReason records why a session finished
type EndReason string

const (
	EndCompleted EndReason = "completed"
	EndTimeout   EndReason = "timeout"
	EndAbandoned EndReason = "abandoned"
	EndStale     EndReason = "stale"
)

// SessionOptions are the creation parameters of a session
type SessionOptions struct {
	Mode       Mode
	Difficulty Difficulty
	ChannelID  string
}

// Session is one instance of a game. Game-specific state lives in the
// running machine, not here.
type Session struct {
	ID         SessionID    `json:"id"`
	GameType   GameType     `json:"gameType"`
	HostID     PlayerID     `json:"hostId"`
	Players    []PlayerID   `json:"players"`
	Mode       Mode         `json:"mode"`
	Difficulty Difficulty   `json:"difficulty"`
	State      SessionState `json:"state"`
	ChannelID  string       `json:"channelId,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	StartedAt  *time.Time   `json:"startedAt,omitempty"`
	EndedAt    *time.Time   `json:"endedAt,omitempty"`
	EndReason  EndReason    `json:"endReason,omitempty"`
	Result     *GameResult  `json:"result,omitempty"`
}

// HasPlayer reports whether id is a participant
func (s *Session) HasPlayer(id PlayerID) bool {
	return slices.Contains(s.Players, id)
}

// Opponent returns the other participant of a two-player session
func (s *Session) Opponent(id PlayerID) PlayerID {
	for _, p := range s.Players {
		if p != id {
			return p
		}
	}
	if s.Mode == ModeComputer {
		return ComputerID
	}
	return ""
}

// Clone returns a deep copy safe to hand out of the store
func (s *Session) Clone() *Session {
	c := *s
	c.Players = slices.Clone(s.Players)
	if s.StartedAt != nil {
		t := *s.StartedAt
		c.StartedAt = &t
	}
	if s.EndedAt != nil {
		t := *s.EndedAt
		c.EndedAt = &t
	}
	if s.Result != nil {
		c.Result = s.Result.Clone()
	}
	return &c
}
