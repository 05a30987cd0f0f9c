package stats

import (
	"cmp"
	"slices"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// DefaultLeaderboardSize is used when a caller passes a non-positive limit
const DefaultLeaderboardSize = 10

// rankMetric says how a game's leaderboard is ordered
type rankMetric int

const (
	byWins rankMetric = iota
	byBestScore
	byFewestMoves
	byFastestTime
)

func metricFor(g model.GameType) rankMetric {
	switch g {
	case model.GameTrivia, model.GameShooter, model.GameQuizBattle:
		return byBestScore
	case model.GameMemory:
		return byFewestMoves
	case model.GameReaction:
		return byFastestTime
	}
	return byWins
}

// ValueLabel names what a game's leaderboard value measures
func ValueLabel(g model.GameType) string {
	switch metricFor(g) {
	case byBestScore:
		return "Best score"
	case byFewestMoves:
		return "Fewest moves"
	case byFastestTime:
		return "Best ms"
	}
	return "Wins"
}

type candidate struct {
	id    model.PlayerID
	value int
	won   int
	gs    model.GameStats
}

// rankGame builds the leaderboard for one game from the given records
func rankGame(users map[model.PlayerID]*model.UserStats, g model.GameType, limit int) []model.LeaderboardEntry {
	metric := metricFor(g)
	var rows []candidate
	for id, u := range users {
		gs := u.Game(g)
		if gs.Played == 0 {
			continue
		}
		c := candidate{id: id, won: gs.Won, gs: gs}
		switch metric {
		case byWins:
			c.value = gs.Won
		case byBestScore:
			c.value = gs.BestScore
		case byFewestMoves:
			if gs.BestMoves == 0 {
				continue
			}
			c.value = gs.BestMoves
		case byFastestTime:
			if gs.BestTimeMs == 0 {
				continue
			}
			c.value = gs.BestTimeMs
		}
		rows = append(rows, c)
	}

	ascending := metric == byFewestMoves || metric == byFastestTime
	slices.SortFunc(rows, func(a, b candidate) int {
		byValue := cmp.Compare(b.value, a.value)
		if ascending {
			byValue = -byValue
		}
		return cmp.Or(byValue, cmp.Compare(b.won, a.won), cmp.Compare(a.id, b.id))
	})

	return entries(rows, limit, func(c candidate) model.LeaderboardEntry {
		return model.LeaderboardEntry{UserID: c.id, Value: c.value, Played: c.gs.Played, Won: c.gs.Won}
	})
}

// rankOverall orders users by total points
func rankOverall(users map[model.PlayerID]*model.UserStats, limit int) []model.LeaderboardEntry {
	rows := make([]*model.UserStats, 0, len(users))
	for _, u := range users {
		if u.TotalGames > 0 {
			rows = append(rows, u)
		}
	}
	slices.SortFunc(rows, func(a, b *model.UserStats) int {
		return cmp.Or(cmp.Compare(b.TotalPoints, a.TotalPoints), cmp.Compare(a.UserID, b.UserID))
	})

	return entries(rows, limit, func(u *model.UserStats) model.LeaderboardEntry {
		return model.LeaderboardEntry{UserID: u.UserID, Value: u.TotalPoints, Played: u.TotalGames, Won: u.Wins}
	})
}

func entries[T any](rows []T, limit int, row func(T) model.LeaderboardEntry) []model.LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]model.LeaderboardEntry, len(rows))
	for i, r := range rows {
		out[i] = row(r)
		out[i].Rank = i + 1
	}
	return out
}
