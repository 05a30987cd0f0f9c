package stats

import "github.com/Jeet1511/EliteZero/internal/model"

// bonusTier pays Bonus when the metric is at most (or, for times, below) Limit
type bonusTier struct {
	Limit int
	Bonus int
}

var (
	wordleTiers   = []bonusTier{{3, 10}, {4, 5}}
	memoryTiers   = []bonusTier{{15, 15}, {20, 10}, {25, 5}}
	guessTiers    = []bonusTier{{3, 10}, {5, 5}}
	reactionTiers = []bonusTier{{200, 15}, {300, 10}, {400, 5}}
)

// atMost returns the bonus of the first tier whose limit v does not exceed
func atMost(tiers []bonusTier, v int) int {
	if v <= 0 {
		return 0
	}
	for _, t := range tiers {
		if v <= t.Limit {
			return t.Bonus
		}
	}
	return 0
}

// below is atMost with strict comparison, used for reaction times
func below(tiers []bonusTier, v int) int {
	if v <= 0 {
		return 0
	}
	for _, t := range tiers {
		if v < t.Limit {
			return t.Bonus
		}
	}
	return 0
}

// Points returns the points awarded for one game
func Points(game model.GameType, outcome model.Outcome, aux model.Aux) int {
	win := outcome == model.OutcomeWin
	draw := outcome == model.OutcomeDraw

	switch game {
	case model.GameTicTacToe:
		return pick(win, draw, 10, 5)
	case model.GameHangman:
		return pick(win, draw, 15, 0)
	case model.GameWordle:
		if win {
			return 20 + atMost(wordleTiers, aux.Attempts)
		}
	case model.GameMemory:
		if win {
			return 25 + atMost(memoryTiers, aux.Moves)
		}
	case model.GameNumberGuess:
		if win {
			return 10 + atMost(guessTiers, aux.Attempts)
		}
	case model.GameTrivia:
		return 5 * aux.Correct
	case model.GameRPS:
		return pick(win, draw, 8, 3)
	case model.GameConnectFour:
		return pick(win, draw, 12, 6)
	case model.GameReaction:
		if outcome == model.OutcomeComplete {
			return 15 + below(reactionTiers, aux.AvgTimeMs)
		}
	case model.GameQuizBattle:
		return 10 * aux.Correct
	case model.GameShooter:
		return aux.Score
	}
	return 0
}

func pick(win, draw bool, onWin, onDraw int) int {
	switch {
	case win:
		return onWin
	case draw:
		return onDraw
	}
	return 0
}
