package model

import "time"

// StatsSchemaVersion is the version of the persisted stats layout
const StatsSchemaVersion = 1

// AchievementID identifies an achievement
type AchievementID string

// GameStats is one user's breakdown for a single game type.
// A zero best field means no value has been recorded yet.
type GameStats struct {
	Played int `json:"played"`
	Won    int `json:"won"`
	Lost   int `json:"lost"`
	Draw   int `json:"draw"`
	Points int `json:"points"`

	TotalAttempts int     `json:"totalAttempts,omitempty"`
	AvgAttempts   float64 `json:"avgAttempts,omitempty"`
	BestAttempts  int     `json:"bestAttempts,omitempty"`
	BestMoves     int     `json:"bestMoves,omitempty"`
	BestScore     int     `json:"bestScore,omitempty"`
	TotalScore    int     `json:"totalScore,omitempty"`
	AvgTimeMs     float64 `json:"avgTimeMs,omitempty"`
	BestTimeMs    int     `json:"bestTimeMs,omitempty"`
	Hits          int     `json:"hits,omitempty"`
}

// UserStats is the aggregate record of one user
type UserStats struct {
	UserID            PlayerID                    `json:"userId"`
	TotalGames        int                         `json:"totalGames"`
	Wins              int                         `json:"wins"`
	Losses            int                         `json:"losses"`
	Draws             int                         `json:"draws"`
	TotalPoints       int                         `json:"totalPoints"`
	AchievementPoints int                         `json:"achievementPoints"`
	CurrentStreak     int                         `json:"currentStreak"`
	BestStreak        int                         `json:"bestStreak"`
	Games             map[GameType]*GameStats     `json:"games"`
	Achievements      map[AchievementID]time.Time `json:"achievements"`
	FirstPlayed       time.Time                   `json:"firstPlayed"`
	LastPlayed        time.Time                   `json:"lastPlayed"`
}

// NewUserStats creates an empty record
func NewUserStats(id PlayerID, now time.Time) *UserStats {
	return &UserStats{
		UserID:       id,
		Games:        make(map[GameType]*GameStats),
		Achievements: make(map[AchievementID]time.Time),
		FirstPlayed:  now,
	}
}

// Game returns the breakdown for g, or a zero value if never played
func (u *UserStats) Game(g GameType) GameStats {
	if gs, ok := u.Games[g]; ok {
		return *gs
	}
	return GameStats{}
}

// DistinctGames is the number of game types played at least once
func (u *UserStats) DistinctGames() int {
	n := 0
	for _, gs := range u.Games {
		if gs.Played > 0 {
			n++
		}
	}
	return n
}

// HasAchievement reports whether id is unlocked
func (u *UserStats) HasAchievement(id AchievementID) bool {
	_, ok := u.Achievements[id]
	return ok
}

// WinRate returns wins as a percentage of decided games
func (u *UserStats) WinRate() float64 {
	decided := u.Wins + u.Losses + u.Draws
	if decided == 0 {
		return 0
	}
	return float64(u.Wins) * 100 / float64(decided)
}

// Clone returns a deep copy
func (u *UserStats) Clone() *UserStats {
	c := *u
	c.Games = make(map[GameType]*GameStats, len(u.Games))
	for g, gs := range u.Games {
		v := *gs
		c.Games[g] = &v
	}
	c.Achievements = make(map[AchievementID]time.Time, len(u.Achievements))
	for id, t := range u.Achievements {
		c.Achievements[id] = t
	}
	return &c
}

// StatsTable is the persisted map of all user records
type StatsTable struct {
	SchemaVersion int                     `json:"schemaVersion"`
	UpdatedAt     time.Time               `json:"updatedAt"`
	Users         map[PlayerID]*UserStats `json:"users"`
}

// NewStatsTable creates an empty table at the current schema version
func NewStatsTable() *StatsTable {
	return &StatsTable{SchemaVersion: StatsSchemaVersion, Users: make(map[PlayerID]*UserStats)}
}

// Achievement is a static, point-valued milestone
type Achievement struct {
	ID          AchievementID
	Name        string
	Description string
	Icon        string
	Points      int
	Unlocked    func(u *UserStats) bool
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	Rank   int      `json:"rank"`
	UserID PlayerID `json:"userId"`
	Value  int      `json:"value"`
	Played int      `json:"played"`
	Won    int      `json:"won"`
}

// MatchRecord is an archived finished session
type MatchRecord struct {
	SessionID  SessionID                  `json:"sessionId"`
	GameType   GameType                   `json:"gameType"`
	Mode       Mode                       `json:"mode"`
	Difficulty Difficulty                 `json:"difficulty"`
	Players    []PlayerID                 `json:"players"`
	Winner     PlayerID                   `json:"winner,omitempty"`
	Outcomes   map[PlayerID]PlayerOutcome `json:"outcomes,omitempty"`
	StartedAt  time.Time                  `json:"startedAt"`
	EndedAt    time.Time                  `json:"endedAt"`
	EndReason  EndReason                  `json:"endReason"`
}
