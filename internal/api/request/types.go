package request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// MaxLimit caps list sizes a client may ask for
const MaxLimit = 100

// ErrBadLimit is returned for a limit that is not a positive number
var ErrBadLimit = errors.New("limit must be a positive number")

// LeaderboardQuery is the parsed query of GET /leaderboard. An empty Game
// asks for the overall board.
type LeaderboardQuery struct {
	Game  model.GameType
	Limit int
}

// ParseLeaderboardQuery reads ?game= and ?limit=
func ParseLeaderboardQuery(r *http.Request) (LeaderboardQuery, error) {
	var q LeaderboardQuery
	if g := r.URL.Query().Get("game"); g != "" {
		game, err := model.ParseGameType(g)
		if err != nil {
			return q, err
		}
		q.Game = game
	}
	limit, err := ParseLimit(r, 10)
	if err != nil {
		return q, err
	}
	q.Limit = limit
	return q, nil
}

// ParseLimit reads ?limit=, clamped to MaxLimit
func ParseLimit(r *http.Request, defaultLimit int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, ErrBadLimit
	}
	return min(n, MaxLimit), nil
}
