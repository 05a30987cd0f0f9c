package stats

import (
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// Achievement ids
const (
	FirstSteps      model.AchievementID = "first_steps"
	QuickLearner    model.AchievementID = "quick_learner"
	VarietyPlayer   model.AchievementID = "variety_player"
	Veteran         model.AchievementID = "veteran"
	Winner          model.AchievementID = "winner"
	Entertainer     model.AchievementID = "entertainer"
	Legend          model.AchievementID = "legend"
	Unstoppable     model.AchievementID = "unstoppable"
	Champion        model.AchievementID = "champion"
	TriviaMaster    model.AchievementID = "trivia_master"
	MemoryGenius    model.AchievementID = "memory_genius"
	SpeedDemon      model.AchievementID = "speed_demon"
	QuizChampion    model.AchievementID = "quiz_champion"
	ConnectFourPro  model.AchievementID = "connect_four_pro"
	WordleWizard    model.AchievementID = "wordle_wizard"
	HangmanHero     model.AchievementID = "hangman_hero"
	TicTacToeExpert model.AchievementID = "tictactoe_expert"
	RPSChampion     model.AchievementID = "rps_champion"
	NumberMaster    model.AchievementID = "number_master"
	PerfectStreak   model.AchievementID = "perfect_streak"
	GameMaster      model.AchievementID = "game_master"
	Completionist   model.AchievementID = "completionist"
)

func wonAtLeast(g model.GameType, n int) func(u *model.UserStats) bool {
	return func(u *model.UserStats) bool { return u.Game(g).Won >= n }
}

// Definitions returns the achievement set in evaluation order.
// Completionist is always last.
func Definitions() []model.Achievement {
	defs := []model.Achievement{
		{ID: FirstSteps, Name: "First Steps", Description: "Play your first game", Icon: "👣", Points: 5,
			Unlocked: func(u *model.UserStats) bool { return u.TotalGames >= 1 }},
		{ID: QuickLearner, Name: "Quick Learner", Description: "Win your first game", Icon: "🎓", Points: 10,
			Unlocked: func(u *model.UserStats) bool { return u.Wins >= 1 }},
		{ID: VarietyPlayer, Name: "Variety Player", Description: "Play 3 different games", Icon: "🎲", Points: 20,
			Unlocked: func(u *model.UserStats) bool { return u.DistinctGames() >= 3 }},
		{ID: Veteran, Name: "Veteran", Description: "Play 10 games", Icon: "🎖️", Points: 25,
			Unlocked: func(u *model.UserStats) bool { return u.TotalGames >= 10 }},
		{ID: Winner, Name: "Winner", Description: "Win 10 games", Icon: "🏅", Points: 50,
			Unlocked: func(u *model.UserStats) bool { return u.Wins >= 10 }},
		{ID: Entertainer, Name: "Entertainer", Description: "Play 5 different games", Icon: "🎭", Points: 30,
			Unlocked: func(u *model.UserStats) bool { return u.DistinctGames() >= 5 }},
		{ID: Legend, Name: "Legend", Description: "Play 50 games", Icon: "🌟", Points: 100,
			Unlocked: func(u *model.UserStats) bool { return u.TotalGames >= 50 }},
		{ID: Unstoppable, Name: "Unstoppable", Description: "Win 50 games", Icon: "🔥", Points: 150,
			Unlocked: func(u *model.UserStats) bool { return u.Wins >= 50 }},
		{ID: Champion, Name: "Champion", Description: "Play 100 games", Icon: "👑", Points: 200,
			Unlocked: func(u *model.UserStats) bool { return u.TotalGames >= 100 }},
		{ID: TriviaMaster, Name: "Trivia Master", Description: "Answer all 5 trivia questions correctly", Icon: "🧠", Points: 75,
			Unlocked: func(u *model.UserStats) bool { return u.Game(model.GameTrivia).BestScore >= 5 }},
		{ID: MemoryGenius, Name: "Memory Genius", Description: "Clear Memory Match in 15 moves or fewer", Icon: "🃏", Points: 100,
			Unlocked: func(u *model.UserStats) bool {
				best := u.Game(model.GameMemory).BestMoves
				return best > 0 && best <= 15
			}},
		{ID: SpeedDemon, Name: "Speed Demon", Description: "Average under 200 ms in Reaction Time", Icon: "⚡", Points: 80,
			Unlocked: func(u *model.UserStats) bool {
				avg := u.Game(model.GameReaction).AvgTimeMs
				return avg > 0 && avg < 200
			}},
		{ID: QuizChampion, Name: "Quiz Champion", Description: "Win 5 quiz battles", Icon: "🏆", Points: 60,
			Unlocked: wonAtLeast(model.GameQuizBattle, 5)},
		{ID: ConnectFourPro, Name: "Connect Four Pro", Description: "Win 10 games of Connect Four", Icon: "🔴", Points: 70,
			Unlocked: wonAtLeast(model.GameConnectFour, 10)},
		{ID: WordleWizard, Name: "Wordle Wizard", Description: "Solve a Wordle in 3 guesses or fewer", Icon: "🟩", Points: 90,
			Unlocked: func(u *model.UserStats) bool {
				best := u.Game(model.GameWordle).BestAttempts
				return best > 0 && best <= 3
			}},
		{ID: HangmanHero, Name: "Hangman Hero", Description: "Win 20 games of Hangman", Icon: "🪢", Points: 65,
			Unlocked: wonAtLeast(model.GameHangman, 20)},
		{ID: TicTacToeExpert, Name: "Tic-Tac-Toe Expert", Description: "Win 15 games of Tic-Tac-Toe", Icon: "❌", Points: 55,
			Unlocked: wonAtLeast(model.GameTicTacToe, 15)},
		{ID: RPSChampion, Name: "RPS Champion", Description: "Win 20 games of Rock Paper Scissors", Icon: "✂️", Points: 45,
			Unlocked: wonAtLeast(model.GameRPS, 20)},
		{ID: NumberMaster, Name: "Number Master", Description: "Guess the number in 3 tries or fewer", Icon: "🔢", Points: 40,
			Unlocked: func(u *model.UserStats) bool {
				best := u.Game(model.GameNumberGuess).BestAttempts
				return best > 0 && best <= 3
			}},
		{ID: PerfectStreak, Name: "Perfect Streak", Description: "Win 5 games in a row", Icon: "💯", Points: 250,
			Unlocked: func(u *model.UserStats) bool { return u.BestStreak >= 5 }},
		{ID: GameMaster, Name: "Game Master", Description: "Play 10 different games", Icon: "🎮", Points: 500,
			Unlocked: func(u *model.UserStats) bool { return u.DistinctGames() >= 10 }},
	}

	others := make([]model.AchievementID, len(defs))
	for i, d := range defs {
		others[i] = d.ID
	}
	return append(defs, model.Achievement{
		ID: Completionist, Name: "Completionist", Description: "Unlock every other achievement", Icon: "🏵️", Points: 1000,
		Unlocked: func(u *model.UserStats) bool {
			for _, id := range others {
				if !u.HasAchievement(id) {
					return false
				}
			}
			return true
		},
	})
}

// evaluate unlocks every newly satisfied achievement on u in one ordered
// pass and returns them
func evaluate(defs []model.Achievement, u *model.UserStats, now time.Time) []model.Achievement {
	var unlocked []model.Achievement
	for _, d := range defs {
		if u.HasAchievement(d.ID) || !d.Unlocked(u) {
			continue
		}
		u.Achievements[d.ID] = now
		u.AchievementPoints += d.Points
		u.TotalPoints += d.Points
		unlocked = append(unlocked, d)
	}
	return unlocked
}
