package opponent

import "github.com/Jeet1511/EliteZero/internal/model"

// NumberGuess returns the computer's guess inside the narrowed [low, high]
// window: random on easy, binary-search midpoint otherwise.
func (e *Engine) NumberGuess(d model.Difficulty, low, high int) int {
	if low > high {
		panic("opponent: empty number-guess window")
	}
	if d == model.DifficultyEasy {
		return low + e.random.Intn(high-low+1)
	}
	return low + (high-low)/2
}

var quizAccuracy = map[model.Difficulty]float64{
	model.DifficultyEasy:       0.4,
	model.DifficultyHard:       0.7,
	model.DifficultyImpossible: 0.95,
}

// QuizAnswer returns the choice index the computer contestant picks
func (e *Engine) QuizAnswer(d model.Difficulty, q Question) int {
	if e.random.Float64() < quizAccuracy[d] || len(q.Choices) < 2 {
		return q.Answer
	}
	wrong := make([]int, 0, len(q.Choices)-1)
	for i := range q.Choices {
		if i != q.Answer {
			wrong = append(wrong, i)
		}
	}
	return pick(e.random, wrong)
}
