package games

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Jeet1511/EliteZero/internal/dependencies/mocks"
	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/opponent"
)

const (
	host  model.PlayerID = "host"
	guest model.PlayerID = "guest"
)

type MachineSuite struct {
	suite.Suite
	clock    *mocks.MockClock
	random   *mocks.MockRandom
	registry *Registry
}

func TestMachineSuite(t *testing.T) {
	suite.Run(t, new(MachineSuite))
}

func (s *MachineSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.registry = NewRegistry()
}

func (s *MachineSuite) newMachine(g model.GameType, mode model.Mode, d model.Difficulty) Machine {
	players := []model.PlayerID{host}
	if mode == model.ModeMultiplayer {
		players = append(players, guest)
	}
	sess := &model.Session{
		ID:         "s1",
		GameType:   g,
		HostID:     host,
		Players:    players,
		Mode:       mode,
		Difficulty: d,
		State:      model.SessionActive,
	}
	m, err := s.registry.New(Setup{
		Session: sess,
		Engine:  opponent.New(s.random),
		Random:  s.random,
		Clock:   s.clock,
	})
	s.Require().NoError(err)
	_, err = m.Start()
	s.Require().NoError(err)
	return m
}

func act(actor model.PlayerID, kind model.ActionKind, value string) model.PlayerAction {
	return model.PlayerAction{SessionID: "s1", ActorID: actor, Kind: kind, Value: value}
}

func (s *MachineSuite) play(m Machine, actor model.PlayerID, kind model.ActionKind, value string) Step {
	step, err := m.Handle(act(actor, kind, value))
	s.Require().NoError(err)
	return step
}

// Registry

func (s *MachineSuite) TestRegistryKnowsEveryGame() {
	for _, g := range model.AllGameTypes() {
		f, err := s.registry.Factory(g)
		s.Require().NoError(err, g)
		s.NotEmpty(f.Modes, g)
		s.Positive(f.Timeout, g)
	}
}

func (s *MachineSuite) TestRegistryRejectsUnsupportedMode() {
	s.ErrorIs(s.registry.Validate(model.GameTrivia, model.ModeMultiplayer), model.ErrUnsupportedMode)
	s.ErrorIs(s.registry.Validate(model.GameTicTacToe, model.ModeSolo), model.ErrUnsupportedMode)
	s.ErrorIs(s.registry.Validate("chess", model.ModeSolo), model.ErrUnknownGameType)
	s.NoError(s.registry.Validate(model.GameRPS, model.ModeComputer))
}

func (s *MachineSuite) TestTimeoutComesFromFactory() {
	m := s.newMachine(model.GameReaction, model.ModeSolo, model.DifficultyEasy)
	s.Equal(90*time.Second, m.Timeout())
}

// Tic-tac-toe

func (s *MachineSuite) TestTicTacToeMultiplayerHostWins() {
	m := s.newMachine(model.GameTicTacToe, model.ModeMultiplayer, model.DifficultyHard)

	s.Equal([]model.PlayerID{host}, m.ExpectedActors())
	s.play(m, host, model.ActionCell, "0")
	s.Equal([]model.PlayerID{guest}, m.ExpectedActors())
	s.play(m, guest, model.ActionCell, "3")
	s.play(m, host, model.ActionCell, "1")
	s.play(m, guest, model.ActionCell, "4")
	step := s.play(m, host, model.ActionCell, "2")

	s.Require().NotNil(step.Result)
	s.Equal(host, step.Result.Winner)
	s.Equal(model.OutcomeWin, step.Result.Outcomes[host].Outcome)
	s.Equal(3, step.Result.Outcomes[host].Aux.Moves)
	s.Equal(model.OutcomeLoss, step.Result.Outcomes[guest].Outcome)
	s.True(step.Renders[0].Final)
	s.Empty(m.ExpectedActors())

	_, err := m.Handle(act(guest, model.ActionCell, "5"))
	s.ErrorIs(err, model.ErrGameNotActive)
}

func (s *MachineSuite) TestTicTacToeRejectsWithoutMutating() {
	m := s.newMachine(model.GameTicTacToe, model.ModeMultiplayer, model.DifficultyHard)
	s.play(m, host, model.ActionCell, "4")

	_, err := m.Handle(act(guest, model.ActionCell, "4"))
	s.ErrorIs(err, model.ErrCellOccupied)
	s.ErrorIs(err, model.ErrInvalidAction)

	_, err = m.Handle(act(guest, model.ActionCell, "9"))
	s.ErrorIs(err, model.ErrOutOfRange)

	_, err = m.Handle(act(guest, model.ActionColumn, "1"))
	s.ErrorIs(err, model.ErrInvalidAction)

	s.Equal([]model.PlayerID{guest}, m.ExpectedActors())
}

func (s *MachineSuite) TestTicTacToeComputerRepliesWithDelay() {
	m := s.newMachine(model.GameTicTacToe, model.ModeComputer, model.DifficultyImpossible)

	step := s.play(m, host, model.ActionCell, "4")

	s.Nil(step.Result)
	s.Require().Len(step.Renders, 2)
	s.Zero(step.Renders[0].Delay)
	s.Equal(ComputerDelay, step.Renders[1].Delay)
	s.Equal([]model.PlayerID{host}, m.ExpectedActors())

	ttt := m.(*ticTacToe)
	s.Equal(2, len(ttt.board.Cells)-len(ttt.board.EmptyCells()))
	s.Contains([]model.Mark{ttt.board.Cells[0], ttt.board.Cells[2], ttt.board.Cells[6], ttt.board.Cells[8]}, model.MarkO)
}

func (s *MachineSuite) TestTicTacToeComputerResultRecordsOnlyHuman() {
	m := s.newMachine(model.GameTicTacToe, model.ModeComputer, model.DifficultyImpossible)

	var result *model.GameResult
	for _, cell := range []int{1, 3, 5, 6, 7, 8, 0, 2, 4} {
		if m.(*ticTacToe).board.Cells[cell] != model.MarkEmpty {
			continue
		}
		step := s.play(m, host, model.ActionCell, strconv.Itoa(cell))
		if step.Result != nil {
			result = step.Result
			break
		}
	}

	s.Require().NotNil(result)
	s.NotEqual(host, result.Winner)
	s.Len(result.Outcomes, 1)
	s.NotContains(result.Outcomes, model.ComputerID)
}

// Connect-four

func (s *MachineSuite) TestConnectFourVerticalWin() {
	m := s.newMachine(model.GameConnectFour, model.ModeMultiplayer, model.DifficultyHard)

	for i := 0; i < 3; i++ {
		s.play(m, host, model.ActionColumn, "0")
		s.play(m, guest, model.ActionColumn, "1")
	}
	step := s.play(m, host, model.ActionColumn, "0")

	s.Require().NotNil(step.Result)
	s.Equal(host, step.Result.Winner)
	s.Equal(4, step.Result.Outcomes[host].Aux.Moves)
}

func (s *MachineSuite) TestConnectFourFullColumnRejected() {
	m := s.newMachine(model.GameConnectFour, model.ModeMultiplayer, model.DifficultyHard)
	for i := 0; i < 3; i++ {
		s.play(m, host, model.ActionColumn, "0")
		s.play(m, guest, model.ActionColumn, "0")
	}

	_, err := m.Handle(act(host, model.ActionColumn, "0"))
	s.ErrorIs(err, model.ErrColumnFull)
	s.Equal([]model.PlayerID{host}, m.ExpectedActors())
}

func (s *MachineSuite) TestConnectFourComputerBlocks() {
	m := s.newMachine(model.GameConnectFour, model.ModeComputer, model.DifficultyHard)
	s.random.QueueIntn(6, 6)

	s.play(m, host, model.ActionColumn, "3") // computer random -> 6
	s.play(m, host, model.ActionColumn, "3") // computer random -> 6
	step := s.play(m, host, model.ActionColumn, "3")

	s.Nil(step.Result)
	c4 := m.(*connectFour)
	s.Equal(model.MarkO, c4.board.Get(2, 3))
}

// Hangman

func (s *MachineSuite) TestHangmanWin() {
	s.random.QueueIntn(0) // CAT
	m := s.newMachine(model.GameHangman, model.ModeSolo, model.DifficultyEasy)

	s.play(m, host, model.ActionText, "c")
	s.play(m, host, model.ActionLetter, "A")
	step := s.play(m, host, model.ActionText, " t ")

	s.Require().NotNil(step.Result)
	s.Equal(model.OutcomeWin, step.Result.Outcomes[host].Outcome)
	s.Equal(3, step.Result.Outcomes[host].Aux.Attempts)
}

func (s *MachineSuite) TestHangmanRepeatedLetterRejected() {
	s.random.QueueIntn(0)
	m := s.newMachine(model.GameHangman, model.ModeSolo, model.DifficultyEasy)
	s.play(m, host, model.ActionText, "Z")

	_, err := m.Handle(act(host, model.ActionText, "z"))
	s.ErrorIs(err, model.ErrAlreadyGuessed)
	s.Equal(1, m.(*hangman).wrong)

	_, err = m.Handle(act(host, model.ActionText, "4"))
	s.ErrorIs(err, model.ErrMalformedAction)
}

func (s *MachineSuite) TestHangmanWrongSolveCostsLifeAndLoses() {
	s.random.QueueIntn(0)
	m := s.newMachine(model.GameHangman, model.ModeSolo, model.DifficultyEasy)

	s.play(m, host, model.ActionText, "dog")
	s.Equal(1, m.(*hangman).wrong)

	var step Step
	for _, l := range []string{"B", "D", "E", "F", "G"} {
		step = s.play(m, host, model.ActionText, l)
	}

	s.Require().NotNil(step.Result)
	s.Equal(model.OutcomeLoss, step.Result.Outcomes[host].Outcome)
	s.Contains(step.Result.Summary, "CAT")
}

func (s *MachineSuite) TestHangmanSolveWins() {
	s.random.QueueIntn(0)
	m := s.newMachine(model.GameHangman, model.ModeComputer, model.DifficultyEasy)

	step := s.play(m, host, model.ActionText, "Cat")

	s.Require().NotNil(step.Result)
	s.Equal(host, step.Result.Winner)
}

// Wordle

func (s *MachineSuite) TestScoreWordle() {
	s.Equal([]LetterResult{LetterAbsent, LetterCorrect, LetterCorrect, LetterPresent, LetterCorrect},
		ScoreWordle("TRACE", "CRANE"))
}

func (s *MachineSuite) TestScoreWordleRepeatedLetters() {
	// Only one E is left over after the exact match at the end
	s.Equal([]LetterResult{LetterPresent, LetterAbsent, LetterCorrect, LetterAbsent, LetterCorrect},
		ScoreWordle("EERIE", "THREE"))
}

func (s *MachineSuite) TestWordleWinAndValidation() {
	s.random.QueueIntn(8) // CRANE
	m := s.newMachine(model.GameWordle, model.ModeSolo, model.DifficultyHard)

	_, err := m.Handle(act(host, model.ActionText, "CRAN"))
	s.ErrorIs(err, model.ErrWrongLength)
	_, err = m.Handle(act(host, model.ActionText, "CR4NE"))
	s.ErrorIs(err, model.ErrMalformedAction)

	step := s.play(m, host, model.ActionText, "trace")
	s.Nil(step.Result)
	s.Require().Len(step.Renders[0].Board, 1)
	s.Contains(step.Renders[0].Board[0], "⬛🟩🟩🟨🟩")

	step = s.play(m, host, model.ActionText, "crane")
	s.Require().NotNil(step.Result)
	s.Equal(2, step.Result.Outcomes[host].Aux.Attempts)
}

func (s *MachineSuite) TestWordleLosesAfterSixAttempts() {
	s.random.QueueIntn(8)
	m := s.newMachine(model.GameWordle, model.ModeSolo, model.DifficultyHard)

	var step Step
	for i := 0; i < WordleAttempts; i++ {
		step = s.play(m, host, model.ActionText, "TRACE")
	}

	s.Require().NotNil(step.Result)
	s.Equal(model.OutcomeLoss, step.Result.Outcomes[host].Outcome)
}

// Memory

func pairsOf(m *memory) [][2]int {
	seen := map[string]int{}
	var out [][2]int
	for i, c := range m.cards {
		if j, ok := seen[c]; ok {
			out = append(out, [2]int{j, i})
			continue
		}
		seen[c] = i
	}
	return out
}

func (s *MachineSuite) TestMemorySoloCompletes() {
	m := s.newMachine(model.GameMemory, model.ModeSolo, model.DifficultyHard)
	mem := m.(*memory)
	pairs := pairsOf(mem)
	s.Require().Len(pairs, 8)

	// One mismatch first
	s.play(m, host, model.ActionFlip, strconv.Itoa(pairs[0][0]))
	s.play(m, host, model.ActionFlip, strconv.Itoa(pairs[1][0]))
	s.Len(mem.shown, 2)

	var step Step
	for _, p := range pairs {
		s.play(m, host, model.ActionFlip, strconv.Itoa(p[0]))
		s.Empty(mem.shown)
		step = s.play(m, host, model.ActionFlip, strconv.Itoa(p[1]))
	}

	s.Require().NotNil(step.Result)
	s.Equal(model.OutcomeWin, step.Result.Outcomes[host].Outcome)
	s.Equal(9, step.Result.Outcomes[host].Aux.Moves)
}

func (s *MachineSuite) TestMemoryRejectsUnavailableCards() {
	m := s.newMachine(model.GameMemory, model.ModeSolo, model.DifficultyHard)
	pairs := pairsOf(m.(*memory))

	s.play(m, host, model.ActionFlip, strconv.Itoa(pairs[0][0]))
	_, err := m.Handle(act(host, model.ActionFlip, strconv.Itoa(pairs[0][0])))
	s.ErrorIs(err, model.ErrCardUnavailable)

	s.play(m, host, model.ActionFlip, strconv.Itoa(pairs[0][1]))
	_, err = m.Handle(act(host, model.ActionFlip, strconv.Itoa(pairs[0][1])))
	s.ErrorIs(err, model.ErrCardUnavailable)

	_, err = m.Handle(act(host, model.ActionFlip, "16"))
	s.ErrorIs(err, model.ErrOutOfRange)
}

func (s *MachineSuite) TestMemoryMultiplayerTurns() {
	m := s.newMachine(model.GameMemory, model.ModeMultiplayer, model.DifficultyHard)
	pairs := pairsOf(m.(*memory))

	// A match keeps the turn
	s.play(m, host, model.ActionFlip, strconv.Itoa(pairs[0][0]))
	s.play(m, host, model.ActionFlip, strconv.Itoa(pairs[0][1]))
	s.Equal([]model.PlayerID{host}, m.ExpectedActors())

	// A miss passes it
	s.play(m, host, model.ActionFlip, strconv.Itoa(pairs[1][0]))
	s.play(m, host, model.ActionFlip, strconv.Itoa(pairs[2][0]))
	s.Equal([]model.PlayerID{guest}, m.ExpectedActors())

	var step Step
	for _, p := range pairs[1:] {
		s.play(m, guest, model.ActionFlip, strconv.Itoa(p[0]))
		step = s.play(m, guest, model.ActionFlip, strconv.Itoa(p[1]))
	}

	s.Require().NotNil(step.Result)
	s.Equal(guest, step.Result.Winner)
	s.Equal(7, step.Result.Outcomes[guest].Aux.Score)
	s.Equal(1, step.Result.Outcomes[host].Aux.Score)
}

// Number guess

func (s *MachineSuite) TestNumberGuessHintsAndWin() {
	s.random.QueueIntn(26) // secret 27
	m := s.newMachine(model.GameNumberGuess, model.ModeSolo, model.DifficultyEasy)

	step := s.play(m, host, model.ActionText, "10")
	s.Contains(step.Renders[0].Text, "higher")
	step = s.play(m, host, model.ActionNumber, "40")
	s.Contains(step.Renders[0].Text, "lower")
	step = s.play(m, host, model.ActionText, "27")

	s.Require().NotNil(step.Result)
	s.Equal(model.OutcomeWin, step.Result.Outcomes[host].Outcome)
	s.Equal(3, step.Result.Outcomes[host].Aux.Attempts)
}

func (s *MachineSuite) TestNumberGuessOutOfRangeKeepsAttempts() {
	s.random.QueueIntn(26)
	m := s.newMachine(model.GameNumberGuess, model.ModeSolo, model.DifficultyEasy)

	_, err := m.Handle(act(host, model.ActionText, "51"))
	s.ErrorIs(err, model.ErrOutOfRange)
	_, err = m.Handle(act(host, model.ActionText, "zero"))
	s.ErrorIs(err, model.ErrMalformedAction)

	s.Zero(m.(*numberGuess).attempts)
}

func (s *MachineSuite) TestNumberGuessRunsOutOfAttempts() {
	s.random.QueueIntn(199) // secret 200
	m := s.newMachine(model.GameNumberGuess, model.ModeSolo, model.DifficultyImpossible)

	var step Step
	for i := 1; i <= 5; i++ {
		step = s.play(m, host, model.ActionText, strconv.Itoa(i))
	}

	s.Require().NotNil(step.Result)
	s.Equal(model.OutcomeLoss, step.Result.Outcomes[host].Outcome)
}

func (s *MachineSuite) TestNumberGuessComputerRace() {
	s.random.QueueIntn(74) // secret 75
	m := s.newMachine(model.GameNumberGuess, model.ModeComputer, model.DifficultyHard)

	// Human 50 -> window 51..100, computer guesses 75
	step := s.play(m, host, model.ActionText, "50")

	s.Require().NotNil(step.Result)
	s.Equal(model.ComputerID, step.Result.Winner)
	s.Equal(model.OutcomeLoss, step.Result.Outcomes[host].Outcome)
	s.Equal(ComputerDelay, step.Renders[len(step.Renders)-1].Delay)
}

// Trivia

func (s *MachineSuite) TestTriviaScoresAndTimesOut() {
	m := s.newMachine(model.GameTrivia, model.ModeSolo, model.DifficultyHard)
	tr := m.(*trivia)
	first := tr.tick

	step := s.play(m, host, model.ActionChoice, "1") // Paris
	s.Equal([]string{first}, step.Cancel)
	s.Require().Len(step.Schedule, 1)
	s.Equal(QuestionTime, step.Schedule[0].After)

	// A stale tick from the first question is ignored
	stale, err := m.Tick(first)
	s.Require().NoError(err)
	s.Empty(stale.Renders)

	step, err = m.Tick(step.Schedule[0].Kind)
	s.Require().NoError(err)
	s.Contains(step.Renders[0].Text, "Time's up")

	s.play(m, host, model.ActionChoice, "2")
	s.play(m, host, model.ActionChoice, "0")
	step = s.play(m, host, model.ActionChoice, "1")

	s.Require().NotNil(step.Result)
	s.Equal(model.OutcomeComplete, step.Result.Outcomes[host].Outcome)
	s.Equal(3, step.Result.Outcomes[host].Aux.Correct)
	s.Empty(m.ExpectedActors())
}

// Rock-paper-scissors

func (s *MachineSuite) TestRPSComputerMatch() {
	m := s.newMachine(model.GameRPS, model.ModeComputer, model.DifficultyEasy)
	s.random.QueueIntn(2, 2, 2) // computer throws scissors

	s.play(m, host, model.ActionChoice, "rock")
	step := s.play(m, host, model.ActionChoice, "rock")
	s.Nil(step.Result)
	s.Equal(ComputerDelay, step.Renders[0].Delay)
	step = s.play(m, host, model.ActionChoice, "ROCK")

	s.Require().NotNil(step.Result)
	s.Equal(host, step.Result.Winner)
	s.Equal(3, step.Result.Outcomes[host].Aux.Score)
}

func (s *MachineSuite) TestRPSMultiplayerHidesChoices() {
	m := s.newMachine(model.GameRPS, model.ModeMultiplayer, model.DifficultyEasy)

	step := s.play(m, host, model.ActionChoice, "rock")
	s.Require().Len(step.Renders, 2)
	s.Equal(host, step.Renders[0].Recipient)
	s.Empty(step.Renders[1].Recipient)
	s.NotContains(step.Renders[1].Text, "rock")

	_, err := m.Handle(act(host, model.ActionChoice, "paper"))
	s.ErrorIs(err, model.ErrAlreadyAnswered)
	_, err = m.Handle(act(guest, model.ActionChoice, "lizard"))
	s.ErrorIs(err, model.ErrInvalidAction)

	step = s.play(m, guest, model.ActionChoice, "paper")
	s.Nil(step.Result)
	s.Equal(1, m.(*rps).wins[guest])
}

func (s *MachineSuite) TestRPSDrawAfterFiveRounds() {
	m := s.newMachine(model.GameRPS, model.ModeMultiplayer, model.DifficultyEasy)

	var step Step
	for i := 0; i < 5; i++ {
		s.play(m, host, model.ActionChoice, "rock")
		step = s.play(m, guest, model.ActionChoice, "rock")
	}

	s.Require().NotNil(step.Result)
	s.Empty(step.Result.Winner)
	s.Equal(model.OutcomeDraw, step.Result.Outcomes[host].Outcome)
	s.Equal(model.OutcomeDraw, step.Result.Outcomes[guest].Outcome)
}

// Reaction

func (s *MachineSuite) TestReactionRounds() {
	s.random.QueueIntn(500)
	m := s.newMachine(model.GameReaction, model.ModeSolo, model.DifficultyEasy)
	r := m.(*reaction)

	_, err := m.Handle(act(host, model.ActionClick, "click"))
	s.ErrorIs(err, model.ErrTooEarly)

	var step Step
	for _, ms := range []int{200, 300, 400} {
		s.clock.Advance(4500 * time.Millisecond)
		_, err := m.Tick(r.tick)
		s.Require().NoError(err)
		s.clock.Advance(time.Duration(ms) * time.Millisecond)
		step = s.play(m, host, model.ActionClick, "click")
	}

	s.Require().NotNil(step.Result)
	aux := step.Result.Outcomes[host].Aux
	s.Equal(300, aux.AvgTimeMs)
	s.Equal(200, aux.BestTimeMs)
	s.Equal(model.OutcomeComplete, step.Result.Outcomes[host].Outcome)
}

func (s *MachineSuite) TestReactionSchedulesGoWithinBounds() {
	s.random.QueueIntn(1000)
	sess := &model.Session{ID: "s1", GameType: model.GameReaction, HostID: host, Players: []model.PlayerID{host}, Mode: model.ModeSolo, Difficulty: model.DifficultyEasy}
	m, err := s.registry.New(Setup{Session: sess, Engine: opponent.New(s.random), Random: s.random, Clock: s.clock})
	s.Require().NoError(err)

	step, err := m.Start()
	s.Require().NoError(err)

	s.Require().Len(step.Schedule, 1)
	s.Equal(5*time.Second, step.Schedule[0].After)
}

func (s *MachineSuite) TestReactionShortestWaitPerDifficulty() {
	for d, want := range map[model.Difficulty]time.Duration{
		model.DifficultyEasy:       4 * time.Second,
		model.DifficultyHard:       2 * time.Second,
		model.DifficultyImpossible: 500 * time.Millisecond,
	} {
		s.random.QueueIntn(0)
		sess := &model.Session{ID: "s1", GameType: model.GameReaction, HostID: host, Players: []model.PlayerID{host}, Mode: model.ModeSolo, Difficulty: d}
		m, err := s.registry.New(Setup{Session: sess, Engine: opponent.New(s.random), Random: s.random, Clock: s.clock})
		s.Require().NoError(err)

		step, err := m.Start()
		s.Require().NoError(err)
		s.Require().Len(step.Schedule, 1)
		s.Equal(want, step.Schedule[0].After, d)
	}
}

func (s *MachineSuite) TestReactionEasyWaitIsLongerAndSteadier() {
	mean := func(b [2]time.Duration) time.Duration { return (b[0] + b[1]) / 2 }
	width := func(b [2]time.Duration) time.Duration { return b[1] - b[0] }
	easy := reactionWaits[model.DifficultyEasy]
	hard := reactionWaits[model.DifficultyHard]
	impossible := reactionWaits[model.DifficultyImpossible]

	s.Greater(easy[0], mean(hard))
	s.Greater(mean(hard), mean(impossible))
	s.Less(width(easy), width(hard))
	s.Less(width(hard), width(impossible))
}

// Quiz battle

func (s *MachineSuite) TestQuizBattleMultiplayer() {
	m := s.newMachine(model.GameQuizBattle, model.ModeMultiplayer, model.DifficultyHard)
	answers := []string{"1", "2", "2", "1", "1"}

	var step Step
	for i, a := range answers {
		step = s.play(m, host, model.ActionChoice, a)
		if i == 0 {
			s.Equal(host, step.Renders[0].Recipient)
			_, err := m.Handle(act(host, model.ActionChoice, a))
			s.ErrorIs(err, model.ErrAlreadyAnswered)
		}
		step = s.play(m, guest, model.ActionChoice, "0")
	}

	s.Require().NotNil(step.Result)
	s.Equal(host, step.Result.Winner)
	s.Equal(5, step.Result.Outcomes[host].Aux.Correct)
	s.Equal(0, step.Result.Outcomes[guest].Aux.Correct)
}

func (s *MachineSuite) TestQuizBattleComputerDraw() {
	m := s.newMachine(model.GameQuizBattle, model.ModeComputer, model.DifficultyHard)

	var step Step
	for _, a := range []string{"1", "2", "2", "1", "1"} {
		step = s.play(m, host, model.ActionChoice, a)
	}

	s.Require().NotNil(step.Result)
	s.Empty(step.Result.Winner)
	s.Equal(model.OutcomeDraw, step.Result.Outcomes[host].Outcome)
}

func (s *MachineSuite) TestQuizBattleTickRevealsUnanswered() {
	m := s.newMachine(model.GameQuizBattle, model.ModeMultiplayer, model.DifficultyHard)
	s.play(m, host, model.ActionChoice, "1")

	step, err := m.Tick(m.(*quizBattle).tick)
	s.Require().NoError(err)

	s.Contains(step.Renders[0].Text, "did not answer")
	s.Equal(1, m.(*quizBattle).correct[host])
	s.Equal(1, m.(*quizBattle).current)
}

// Target shooter

func (s *MachineSuite) TestComboBonus() {
	s.Equal(0, ComboBonus(1))
	s.Equal(5, ComboBonus(2))
	s.Equal(10, ComboBonus(3))
	s.Equal(10, ComboBonus(4))
	s.Equal(15, ComboBonus(5))
	s.Equal(15, ComboBonus(9))
}

func (s *MachineSuite) TestShooterScoring() {
	s.random.QueueIntn(4, 4, 4, 4, 4, 4, 4, 4, 4, 4)
	m := s.newMachine(model.GameShooter, model.ModeSolo, model.DifficultyHard)

	// Three hits in a row: 10, 15, 20
	s.play(m, host, model.ActionShoot, "4")
	s.play(m, host, model.ActionShoot, "4")
	step := s.play(m, host, model.ActionShoot, "4")
	s.Require().Len(step.Schedule, 1)
	s.Equal(3*time.Second, step.Schedule[0].After)

	// A miss and a timeout reset the combo
	s.play(m, host, model.ActionShoot, "0")
	_, err := m.Tick(m.(*shooter).tick)
	s.Require().NoError(err)
	s.play(m, host, model.ActionShoot, "4")

	for i := 0; i < 3; i++ {
		s.play(m, host, model.ActionShoot, "0")
	}
	step = s.play(m, host, model.ActionShoot, "4")

	s.Require().NotNil(step.Result)
	aux := step.Result.Outcomes[host].Aux
	s.Equal(65, aux.Score)
	s.Equal(5, aux.Hits)
}
