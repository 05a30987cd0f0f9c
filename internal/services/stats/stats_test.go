package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Jeet1511/EliteZero/internal/dependencies/mocks"
	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/storage/memory"
	"github.com/Jeet1511/EliteZero/internal/testutil"
)

var errDiskFull = errors.New("disk full")

// flakyStore fails writes while fail is set
type flakyStore struct {
	*memory.Storage
	fail bool
}

func (f *flakyStore) SaveStats(ctx context.Context, table *model.StatsTable) error {
	if f.fail {
		return errDiskFull
	}
	return f.Storage.SaveStats(ctx, table)
}

type EngineSuite struct {
	suite.Suite
	ctx    context.Context
	clock  *mocks.MockClock
	store  *flakyStore
	engine *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.store = &flakyStore{Storage: memory.New()}
	s.engine = NewEngine(s.store, s.clock, testutil.NopLogger())
}

func (s *EngineSuite) record(user model.PlayerID, game model.GameType, outcome model.Outcome, aux model.Aux) *RecordResult {
	res, err := s.engine.RecordOutcome(s.ctx, user, game, outcome, aux)
	s.Require().NoError(err)
	return res
}

func ids(defs []model.Achievement) []model.AchievementID {
	out := make([]model.AchievementID, len(defs))
	for i, d := range defs {
		out[i] = d.ID
	}
	return out
}

func (s *EngineSuite) TestPointsTable() {
	cases := []struct {
		name    string
		game    model.GameType
		outcome model.Outcome
		aux     model.Aux
		want    int
	}{
		{"tictactoe win", model.GameTicTacToe, model.OutcomeWin, model.Aux{}, 10},
		{"tictactoe draw", model.GameTicTacToe, model.OutcomeDraw, model.Aux{}, 5},
		{"tictactoe loss", model.GameTicTacToe, model.OutcomeLoss, model.Aux{}, 0},
		{"hangman win", model.GameHangman, model.OutcomeWin, model.Aux{Attempts: 2}, 15},
		{"wordle in 3", model.GameWordle, model.OutcomeWin, model.Aux{Attempts: 3}, 30},
		{"wordle in 4", model.GameWordle, model.OutcomeWin, model.Aux{Attempts: 4}, 25},
		{"wordle in 6", model.GameWordle, model.OutcomeWin, model.Aux{Attempts: 6}, 20},
		{"wordle loss", model.GameWordle, model.OutcomeLoss, model.Aux{Attempts: 6}, 0},
		{"memory 15 moves", model.GameMemory, model.OutcomeWin, model.Aux{Moves: 15}, 40},
		{"memory 20 moves", model.GameMemory, model.OutcomeWin, model.Aux{Moves: 20}, 35},
		{"memory 25 moves", model.GameMemory, model.OutcomeWin, model.Aux{Moves: 25}, 30},
		{"memory 26 moves", model.GameMemory, model.OutcomeWin, model.Aux{Moves: 26}, 25},
		{"guess in 3", model.GameNumberGuess, model.OutcomeWin, model.Aux{Attempts: 3}, 20},
		{"guess in 5", model.GameNumberGuess, model.OutcomeWin, model.Aux{Attempts: 5}, 15},
		{"guess in 7", model.GameNumberGuess, model.OutcomeWin, model.Aux{Attempts: 7}, 10},
		{"trivia 4 correct", model.GameTrivia, model.OutcomeComplete, model.Aux{Correct: 4}, 20},
		{"rps win", model.GameRPS, model.OutcomeWin, model.Aux{}, 8},
		{"rps draw", model.GameRPS, model.OutcomeDraw, model.Aux{}, 3},
		{"connectfour win", model.GameConnectFour, model.OutcomeWin, model.Aux{}, 12},
		{"connectfour draw", model.GameConnectFour, model.OutcomeDraw, model.Aux{}, 6},
		{"reaction 199ms", model.GameReaction, model.OutcomeComplete, model.Aux{AvgTimeMs: 199}, 30},
		{"reaction 200ms", model.GameReaction, model.OutcomeComplete, model.Aux{AvgTimeMs: 200}, 25},
		{"reaction 350ms", model.GameReaction, model.OutcomeComplete, model.Aux{AvgTimeMs: 350}, 20},
		{"reaction 400ms", model.GameReaction, model.OutcomeComplete, model.Aux{AvgTimeMs: 400}, 15},
		{"quizbattle 3 correct", model.GameQuizBattle, model.OutcomeLoss, model.Aux{Correct: 3}, 30},
		{"shooter", model.GameShooter, model.OutcomeComplete, model.Aux{Score: 65, Hits: 5}, 65},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, Points(tc.game, tc.outcome, tc.aux))
		})
	}
}

func (s *EngineSuite) TestFirstStepsUnlocksOnFirstRecordOnly() {
	first := s.record("alice", model.GameTicTacToe, model.OutcomeLoss, model.Aux{})
	s.Equal([]model.AchievementID{FirstSteps}, ids(first.NewAchievements))
	s.Equal(5, first.Stats.AchievementPoints)
	s.Equal(5, first.Stats.TotalPoints)
	s.Equal(s.clock.Now(), first.Stats.Achievements[FirstSteps])

	second := s.record("alice", model.GameTicTacToe, model.OutcomeLoss, model.Aux{})
	s.Empty(second.NewAchievements)
}

func (s *EngineSuite) TestNumberGuessWinInThree() {
	res := s.record("alice", model.GameNumberGuess, model.OutcomeWin, model.Aux{Attempts: 3})

	s.Equal(20, res.Points)
	s.ElementsMatch([]model.AchievementID{FirstSteps, QuickLearner, NumberMaster}, ids(res.NewAchievements))
	gs := res.Stats.Game(model.GameNumberGuess)
	s.Equal(3, gs.BestAttempts)
	s.InDelta(3.0, gs.AvgAttempts, 0.001)
	s.Equal(20, gs.Points)
	// 20 for the game, 5 + 10 + 40 for achievements
	s.Equal(75, res.Stats.TotalPoints)
}

func (s *EngineSuite) TestTotalGamesCountsEveryRecord() {
	outcomes := []model.Outcome{
		model.OutcomeWin, model.OutcomeLoss, model.OutcomeDraw, model.OutcomeWin, model.OutcomeLoss,
	}
	for _, o := range outcomes {
		s.record("alice", model.GameRPS, o, model.Aux{})
	}
	s.record("alice", model.GameReaction, model.OutcomeComplete, model.Aux{AvgTimeMs: 300, BestTimeMs: 250})

	u, err := s.engine.GetStats("alice")
	s.Require().NoError(err)
	s.Equal(6, u.TotalGames)
	s.Equal(2, u.Wins)
	s.Equal(2, u.Losses)
	s.Equal(1, u.Draws)
	s.LessOrEqual(u.Wins+u.Losses+u.Draws, u.TotalGames)
	s.Equal(5, u.Game(model.GameRPS).Played)
}

func (s *EngineSuite) TestBestMovesNeverRegress() {
	s.record("alice", model.GameMemory, model.OutcomeWin, model.Aux{Moves: 20})
	s.record("alice", model.GameMemory, model.OutcomeWin, model.Aux{Moves: 30})

	u, err := s.engine.GetStats("alice")
	s.Require().NoError(err)
	s.Equal(20, u.Game(model.GameMemory).BestMoves)

	res := s.record("alice", model.GameMemory, model.OutcomeWin, model.Aux{Moves: 14})
	s.Equal(14, res.Stats.Game(model.GameMemory).BestMoves)
	s.Contains(ids(res.NewAchievements), MemoryGenius)
}

func (s *EngineSuite) TestLossDoesNotSetBestAttempts() {
	s.record("alice", model.GameWordle, model.OutcomeLoss, model.Aux{Attempts: 6})
	u, err := s.engine.GetStats("alice")
	s.Require().NoError(err)
	s.Zero(u.Game(model.GameWordle).BestAttempts)
	s.Equal(6, u.Game(model.GameWordle).TotalAttempts)
}

func (s *EngineSuite) TestStreaks() {
	s.record("alice", model.GameConnectFour, model.OutcomeWin, model.Aux{})
	s.record("alice", model.GameConnectFour, model.OutcomeWin, model.Aux{})
	s.record("alice", model.GameConnectFour, model.OutcomeDraw, model.Aux{})
	res := s.record("alice", model.GameConnectFour, model.OutcomeWin, model.Aux{})
	s.Equal(3, res.Stats.CurrentStreak)

	res = s.record("alice", model.GameConnectFour, model.OutcomeLoss, model.Aux{})
	s.Equal(0, res.Stats.CurrentStreak)
	s.Equal(3, res.Stats.BestStreak)
}

func (s *EngineSuite) TestReactionAverages() {
	s.record("alice", model.GameReaction, model.OutcomeComplete, model.Aux{AvgTimeMs: 300, BestTimeMs: 250})
	res := s.record("alice", model.GameReaction, model.OutcomeComplete, model.Aux{AvgTimeMs: 100, BestTimeMs: 90})

	gs := res.Stats.Game(model.GameReaction)
	s.InDelta(200.0, gs.AvgTimeMs, 0.001)
	s.Equal(90, gs.BestTimeMs)
	s.NotContains(ids(res.NewAchievements), SpeedDemon)

	res = s.record("alice", model.GameReaction, model.OutcomeComplete, model.Aux{AvgTimeMs: 170, BestTimeMs: 150})
	s.InDelta(190.0, res.Stats.Game(model.GameReaction).AvgTimeMs, 0.001)
	s.Contains(ids(res.NewAchievements), SpeedDemon)
}

func (s *EngineSuite) TestCompletionistUnlocksInSameCallAsLastPrerequisite() {
	u := model.NewUserStats("alice", s.clock.Now())
	for _, d := range Definitions() {
		if d.ID != FirstSteps && d.ID != Completionist {
			u.Achievements[d.ID] = s.clock.Now()
		}
	}
	table := model.NewStatsTable()
	table.Users["alice"] = u
	s.Require().NoError(s.store.Storage.SaveStats(s.ctx, table))
	s.Require().NoError(s.engine.Load(s.ctx))

	res := s.record("alice", model.GameTicTacToe, model.OutcomeWin, model.Aux{})
	s.Equal([]model.AchievementID{FirstSteps, Completionist}, ids(res.NewAchievements))
	s.Equal(1005, res.Stats.AchievementPoints)
	s.Equal(1015, res.Stats.TotalPoints)
}

func (s *EngineSuite) TestCompletionistIsLast() {
	defs := Definitions()
	s.Len(defs, 22)
	s.Equal(Completionist, defs[len(defs)-1].ID)
}

func (s *EngineSuite) TestRejectsComputerAndUnknownGame() {
	_, err := s.engine.RecordOutcome(s.ctx, model.ComputerID, model.GameRPS, model.OutcomeWin, model.Aux{})
	s.ErrorIs(err, model.ErrInvalidAction)

	_, err = s.engine.RecordOutcome(s.ctx, "alice", "chess", model.OutcomeWin, model.Aux{})
	s.ErrorIs(err, model.ErrUnknownGameType)

	_, err = s.engine.GetStats("alice")
	s.ErrorIs(err, model.ErrStatsNotFound)
}

func (s *EngineSuite) TestPersistsEveryRecord() {
	s.record("alice", model.GameHangman, model.OutcomeWin, model.Aux{Attempts: 2})

	table, err := s.store.LoadStats(s.ctx)
	s.Require().NoError(err)
	s.Require().Contains(table.Users, model.PlayerID("alice"))
	s.Equal(1, table.Users["alice"].Game(model.GameHangman).Won)
	s.Equal(model.StatsSchemaVersion, table.SchemaVersion)
	s.False(s.engine.Dirty())
}

func (s *EngineSuite) TestWriteFailureIsRetried() {
	s.store.fail = true
	res, err := s.engine.RecordOutcome(s.ctx, "alice", model.GameRPS, model.OutcomeWin, model.Aux{})
	s.Require().NoError(err)
	s.Equal(8, res.Points)
	s.True(s.engine.Dirty())

	s.ErrorIs(s.engine.Flush(s.ctx), errDiskFull)

	s.store.fail = false
	s.Require().NoError(s.engine.Flush(s.ctx))
	s.False(s.engine.Dirty())

	table, err := s.store.LoadStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, table.Users["alice"].Wins)
}

func (s *EngineSuite) TestGetStatsReturnsCopy() {
	s.record("alice", model.GameRPS, model.OutcomeWin, model.Aux{})
	u, err := s.engine.GetStats("alice")
	s.Require().NoError(err)
	u.Wins = 99
	u.Games[model.GameRPS].Won = 99

	again, err := s.engine.GetStats("alice")
	s.Require().NoError(err)
	s.Equal(1, again.Wins)
	s.Equal(1, again.Game(model.GameRPS).Won)
}

func (s *EngineSuite) TestLeaderboards() {
	s.record("carol", model.GameMemory, model.OutcomeWin, model.Aux{Moves: 22})
	s.record("alice", model.GameMemory, model.OutcomeWin, model.Aux{Moves: 18})
	s.record("bob", model.GameMemory, model.OutcomeWin, model.Aux{Moves: 18})
	s.record("dave", model.GameMemory, model.OutcomeLoss, model.Aux{Moves: 10, Score: 3})

	board, err := s.engine.Leaderboard(model.GameMemory, 10)
	s.Require().NoError(err)
	s.Require().Len(board, 3)
	s.Equal(model.PlayerID("alice"), board[0].UserID)
	s.Equal(1, board[0].Rank)
	s.Equal(18, board[0].Value)
	s.Equal(model.PlayerID("bob"), board[1].UserID)
	s.Equal(model.PlayerID("carol"), board[2].UserID)

	s.record("alice", model.GameRPS, model.OutcomeWin, model.Aux{})
	s.record("bob", model.GameRPS, model.OutcomeWin, model.Aux{})
	s.record("bob", model.GameRPS, model.OutcomeWin, model.Aux{})
	rps, err := s.engine.Leaderboard(model.GameRPS, 1)
	s.Require().NoError(err)
	s.Require().Len(rps, 1)
	s.Equal(model.PlayerID("bob"), rps[0].UserID)
	s.Equal(2, rps[0].Value)

	_, err = s.engine.Leaderboard("chess", 10)
	s.ErrorIs(err, model.ErrUnknownGameType)
}

func (s *EngineSuite) TestScoreLeaderboardBreaksTiesByWins() {
	s.record("alice", model.GameQuizBattle, model.OutcomeLoss, model.Aux{Score: 3, Correct: 3})
	s.record("bob", model.GameQuizBattle, model.OutcomeWin, model.Aux{Score: 3, Correct: 3})

	board, err := s.engine.Leaderboard(model.GameQuizBattle, 0)
	s.Require().NoError(err)
	s.Require().Len(board, 2)
	s.Equal(model.PlayerID("bob"), board[0].UserID)
	s.Equal(3, board[0].Value)
}

func (s *EngineSuite) TestOverallLeaderboard() {
	s.record("alice", model.GameRPS, model.OutcomeDraw, model.Aux{})
	s.record("bob", model.GameConnectFour, model.OutcomeWin, model.Aux{})
	s.record("carol", model.GameRPS, model.OutcomeDraw, model.Aux{})

	board := s.engine.OverallLeaderboard(10)
	s.Require().Len(board, 3)
	s.Equal(model.PlayerID("bob"), board[0].UserID)
	// alice and carol tie on points and are ordered by id
	s.Equal(model.PlayerID("alice"), board[1].UserID)
	s.Equal(model.PlayerID("carol"), board[2].UserID)
	s.Equal(board[1].Value, board[2].Value)
}

func (s *EngineSuite) TestLoadRestoresTable() {
	s.record("alice", model.GameRPS, model.OutcomeWin, model.Aux{})

	other := NewEngine(s.store, s.clock, testutil.NopLogger())
	s.Require().NoError(other.Load(s.ctx))
	u, err := other.GetStats("alice")
	s.Require().NoError(err)
	s.Equal(1, u.Wins)
	s.Equal(1, other.UserCount())
	s.False(other.Dirty())
}
