package response

import (
	"slices"
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// GameStats is one game's breakdown in API responses
type GameStats struct {
	Played       int     `json:"played"`
	Won          int     `json:"won"`
	Lost         int     `json:"lost"`
	Draw         int     `json:"draw"`
	Points       int     `json:"points"`
	AvgAttempts  float64 `json:"avg_attempts,omitempty"`
	BestAttempts int     `json:"best_attempts,omitempty"`
	BestMoves    int     `json:"best_moves,omitempty"`
	BestScore    int     `json:"best_score,omitempty"`
	AvgTimeMs    float64 `json:"avg_time_ms,omitempty"`
	BestTimeMs   int     `json:"best_time_ms,omitempty"`
}

// UnlockedAchievement is an achievement a user holds
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// UserStats represents a user's record in API responses
type UserStats struct {
	UserID            string                `json:"user_id"`
	TotalGames        int                   `json:"total_games"`
	Wins              int                   `json:"wins"`
	Losses            int                   `json:"losses"`
	Draws             int                   `json:"draws"`
	WinRate           float64               `json:"win_rate"`
	TotalPoints       int                   `json:"total_points"`
	AchievementPoints int                   `json:"achievement_points"`
	CurrentStreak     int                   `json:"current_streak"`
	BestStreak        int                   `json:"best_streak"`
	Games             map[string]GameStats  `json:"games"`
	Achievements      []UnlockedAchievement `json:"achievements"`
}

// UserStatsFromModel converts model.UserStats
func UserStatsFromModel(u *model.UserStats) UserStats {
	games := make(map[string]GameStats, len(u.Games))
	for g, gs := range u.Games {
		games[string(g)] = GameStats{
			Played:       gs.Played,
			Won:          gs.Won,
			Lost:         gs.Lost,
			Draw:         gs.Draw,
			Points:       gs.Points,
			AvgAttempts:  gs.AvgAttempts,
			BestAttempts: gs.BestAttempts,
			BestMoves:    gs.BestMoves,
			BestScore:    gs.BestScore,
			AvgTimeMs:    gs.AvgTimeMs,
			BestTimeMs:   gs.BestTimeMs,
		}
	}
	unlocked := make([]UnlockedAchievement, 0, len(u.Achievements))
	for id, at := range u.Achievements {
		unlocked = append(unlocked, UnlockedAchievement{ID: string(id), UnlockedAt: at})
	}
	slices.SortFunc(unlocked, func(a, b UnlockedAchievement) int { return a.UnlockedAt.Compare(b.UnlockedAt) })

	return UserStats{
		UserID:            string(u.UserID),
		TotalGames:        u.TotalGames,
		Wins:              u.Wins,
		Losses:            u.Losses,
		Draws:             u.Draws,
		WinRate:           u.WinRate(),
		TotalPoints:       u.TotalPoints,
		AchievementPoints: u.AchievementPoints,
		CurrentStreak:     u.CurrentStreak,
		BestStreak:        u.BestStreak,
		Games:             games,
		Achievements:      unlocked,
	}
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Value  int    `json:"value"`
	Played int    `json:"played"`
	Won    int    `json:"won"`
}

// Leaderboard is a ranked list. Game is empty for the overall board.
type Leaderboard struct {
	Game       string             `json:"game,omitempty"`
	ValueLabel string             `json:"value_label"`
	Entries    []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts ranked entries
func LeaderboardFromModel(game model.GameType, label string, entries []model.LeaderboardEntry) Leaderboard {
	out := Leaderboard{Game: string(game), ValueLabel: label, Entries: make([]LeaderboardEntry, len(entries))}
	for i, e := range entries {
		out.Entries[i] = LeaderboardEntry{Rank: e.Rank, UserID: string(e.UserID), Value: e.Value, Played: e.Played, Won: e.Won}
	}
	return out
}

// Achievement is a definition in API responses
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
}

func AchievementsFromModel(defs []model.Achievement) []Achievement {
	out := make([]Achievement, len(defs))
	for i, a := range defs {
		out[i] = Achievement{ID: string(a.ID), Name: a.Name, Description: a.Description, Icon: a.Icon, Points: a.Points}
	}
	return out
}

// Session represents a game session in API responses
type Session struct {
	ID         string     `json:"id"`
	GameType   string     `json:"game_type"`
	HostID     string     `json:"host_id"`
	Players    []string   `json:"players"`
	Mode       string     `json:"mode"`
	Difficulty string     `json:"difficulty"`
	State      string     `json:"state"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	EndReason  string     `json:"end_reason,omitempty"`
	Summary    string     `json:"summary,omitempty"`
}

// SessionFromModel converts model.Session
func SessionFromModel(s *model.Session) Session {
	players := make([]string, len(s.Players))
	for i, p := range s.Players {
		players[i] = string(p)
	}
	out := Session{
		ID:         string(s.ID),
		GameType:   string(s.GameType),
		HostID:     string(s.HostID),
		Players:    players,
		Mode:       string(s.Mode),
		Difficulty: string(s.Difficulty),
		State:      string(s.State),
		CreatedAt:  s.CreatedAt,
		StartedAt:  s.StartedAt,
		EndedAt:    s.EndedAt,
		EndReason:  string(s.EndReason),
	}
	if s.Result != nil {
		out.Summary = s.Result.Summary
	}
	return out
}

// Match is an archived game in API responses
type Match struct {
	SessionID string    `json:"session_id"`
	GameType  string    `json:"game_type"`
	Mode      string    `json:"mode"`
	Winner    string    `json:"winner,omitempty"`
	EndReason string    `json:"end_reason"`
	EndedAt   time.Time `json:"ended_at"`
}

func MatchesFromModel(recs []*model.MatchRecord) []Match {
	out := make([]Match, len(recs))
	for i, m := range recs {
		out[i] = Match{
			SessionID: string(m.SessionID),
			GameType:  string(m.GameType),
			Mode:      string(m.Mode),
			Winner:    string(m.Winner),
			EndReason: string(m.EndReason),
			EndedAt:   m.EndedAt,
		}
	}
	return out
}
