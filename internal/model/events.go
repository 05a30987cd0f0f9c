package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameStarted         EventType = "game_start"
	EventGameEnded           EventType = "game_end"
	EventGameTimedOut        EventType = "game_timeout"
	EventGameAbandoned       EventType = "game_abandoned"
	EventAchievementUnlocked EventType = "achievement"
)

// Event is a game lifecycle notification for analytics consumers
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	SessionID SessionID `json:"sessionId"`
	GameType  GameType  `json:"gameType"`
	PlayerID  PlayerID  `json:"playerId,omitempty"` // The player who triggered or is affected
	Payload   any       `json:"data,omitempty"`     // Type-specific data
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	Players    []PlayerID `json:"players"`
	Mode       Mode       `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
}

// GameEndedPayload contains data for game ended events
type GameEndedPayload struct {
	Winner          PlayerID                   `json:"winner,omitempty"`
	Outcomes        map[PlayerID]PlayerOutcome `json:"outcomes"`
	DurationSeconds int                        `json:"durationSeconds"`
	Reason          EndReason                  `json:"reason"`
}

// AchievementPayload contains data for achievement events
type AchievementPayload struct {
	AchievementID AchievementID `json:"achievementId"`
	Points        int           `json:"points"`
}
