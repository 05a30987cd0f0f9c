package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jeet1511/EliteZero/internal/dependencies/random"
	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/opponent"
)

// SimulationResult tallies computer games against a random player
type SimulationResult struct {
	Game         model.GameType   `json:"game"`
	Difficulty   model.Difficulty `json:"difficulty"`
	Games        int              `json:"games"`
	Seed         uint64           `json:"seed"`
	ComputerWins int              `json:"computer_wins"`
	PlayerWins   int              `json:"player_wins"`
	Draws        int              `json:"draws"`
}

func newSimulateCmd() *cobra.Command {
	var difficulty string
	var games int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "simulate <tictactoe|rps>",
		Short: "Pit the computer opponent against a random player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := model.ParseGameType(args[0])
			if err != nil {
				return err
			}
			d, err := model.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}

			result, err := simulate(game, d, games, seed)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", string(model.DefaultDifficulty), "easy, hard or impossible")
	cmd.Flags().IntVar(&games, "games", 100, "Number of games")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")

	return cmd
}

// simulate plays games rounds of the given game. The computer and the
// player draw from separate streams derived from seed.
func simulate(game model.GameType, d model.Difficulty, games int, seed uint64) (SimulationResult, error) {
	if games <= 0 {
		return SimulationResult{}, fmt.Errorf("games must be positive, got %d", games)
	}

	result := SimulationResult{Game: game, Difficulty: d, Games: games, Seed: seed}
	engine := opponent.New(random.NewSeeded(seed))
	player := random.NewSeeded(seed + 1)

	var play func(i int) model.Outcome
	switch game {
	case model.GameTicTacToe:
		play = func(i int) model.Outcome { return simulateTicTacToe(engine, player, d, i%2 == 0) }
	case model.GameRPS:
		var history []opponent.Throw
		play = func(int) model.Outcome {
			human := opponent.Throws[player.Intn(len(opponent.Throws))]
			computer := engine.RPSMove(d, history)
			history = append(history, human)
			switch {
			case opponent.Beats(computer, human):
				return model.OutcomeLoss
			case opponent.Beats(human, computer):
				return model.OutcomeWin
			}
			return model.OutcomeDraw
		}
	default:
		return SimulationResult{}, fmt.Errorf("simulation not supported for %s", game)
	}

	for i := range games {
		switch play(i) {
		case model.OutcomeWin:
			result.PlayerWins++
		case model.OutcomeLoss:
			result.ComputerWins++
		default:
			result.Draws++
		}
	}
	return result, nil
}

// simulateTicTacToe plays one game and returns the player's outcome. The
// player holds X and moves first when playerFirst is set.
func simulateTicTacToe(engine *opponent.Engine, player random.Random, d model.Difficulty, playerFirst bool) model.Outcome {
	board := model.NewGrid(3, 3)
	human, ai := model.MarkX, model.MarkO
	humanTurn := playerFirst

	for opponent.TicTacToeWinner(board) == model.MarkEmpty && !board.IsFull() {
		var cell int
		if humanTurn {
			empty := board.EmptyCells()
			cell = empty[player.Intn(len(empty))]
			board.Cells[cell] = human
		} else {
			cell = engine.TicTacToeMove(board, d, ai, human)
			board.Cells[cell] = ai
		}
		humanTurn = !humanTurn
	}

	switch opponent.TicTacToeWinner(board) {
	case human:
		return model.OutcomeWin
	case ai:
		return model.OutcomeLoss
	}
	return model.OutcomeDraw
}
