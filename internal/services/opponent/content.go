package opponent

import (
	"slices"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// Question is a multiple-choice question
type Question struct {
	Prompt  string
	Choices []string
	Answer  int
}

// Correct returns the text of the right answer
func (q Question) Correct() string {
	return q.Choices[q.Answer]
}

var hangmanWords = map[model.Difficulty][]string{
	model.DifficultyEasy:       {"CAT", "DOG", "FISH", "BIRD", "TREE", "BOOK", "CAKE", "BALL"},
	model.DifficultyHard:       {"JAVASCRIPT", "DISCORD", "COMPUTER", "DEVELOPER", "FUNCTION", "VARIABLE"},
	model.DifficultyImpossible: {"ASYNCHRONOUS", "CRYPTOCURRENCY", "INFRASTRUCTURE", "PHILOSOPHICAL", "EXTRAORDINARY"},
}

var wordleWords = map[model.Difficulty][]string{
	model.DifficultyEasy:       {"CATS", "DOGS", "FISH", "BIRD", "TREE", "BOOK", "CAKE", "BALL"},
	model.DifficultyHard:       {"REACT", "CODES", "GAMES", "MUSIC", "DANCE", "PARTY", "SMART", "BRAIN", "CRANE"},
	model.DifficultyImpossible: {"RHYTHM", "PSYCHE", "SPHINX", "QUARTZ", "OXYGEN", "ENZYME"},
}

var questions = map[model.Difficulty][]Question{
	model.DifficultyEasy: {
		{Prompt: "What color is the sky on a clear day?", Choices: []string{"Blue", "Green", "Red", "Yellow"}, Answer: 0},
		{Prompt: "How many legs does a spider have?", Choices: []string{"6", "8", "10", "12"}, Answer: 1},
		{Prompt: "What is 2 + 2?", Choices: []string{"3", "4", "5", "22"}, Answer: 1},
		{Prompt: "Which planet is known as the Red Planet?", Choices: []string{"Venus", "Mars", "Jupiter", "Saturn"}, Answer: 1},
		{Prompt: "What is the largest ocean on Earth?", Choices: []string{"Atlantic", "Indian", "Arctic", "Pacific"}, Answer: 3},
		{Prompt: "How many days are in a week?", Choices: []string{"5", "6", "7", "8"}, Answer: 2},
		{Prompt: "Which animal is known as the King of the Jungle?", Choices: []string{"Tiger", "Elephant", "Lion", "Bear"}, Answer: 2},
		{Prompt: "What do bees make?", Choices: []string{"Milk", "Honey", "Silk", "Wax paper"}, Answer: 1},
	},
	model.DifficultyHard: {
		{Prompt: "What is the capital of France?", Choices: []string{"London", "Paris", "Berlin", "Madrid"}, Answer: 1},
		{Prompt: "Who painted the Mona Lisa?", Choices: []string{"Vincent van Gogh", "Pablo Picasso", "Leonardo da Vinci", "Michelangelo"}, Answer: 2},
		{Prompt: "In which year did World War II end?", Choices: []string{"1943", "1944", "1945", "1946"}, Answer: 2},
		{Prompt: "What is the smallest country in the world?", Choices: []string{"Monaco", "Vatican City", "San Marino", "Liechtenstein"}, Answer: 1},
		{Prompt: "Who wrote 'Romeo and Juliet'?", Choices: []string{"Charles Dickens", "William Shakespeare", "Jane Austen", "Mark Twain"}, Answer: 1},
		{Prompt: "What is the chemical symbol for gold?", Choices: []string{"Go", "Gd", "Au", "Ag"}, Answer: 2},
		{Prompt: "How many continents are there?", Choices: []string{"5", "6", "7", "8"}, Answer: 2},
		{Prompt: "What is the hardest natural substance?", Choices: []string{"Gold", "Iron", "Diamond", "Quartz"}, Answer: 2},
	},
	model.DifficultyImpossible: {
		{Prompt: "What is the smallest prime number?", Choices: []string{"0", "1", "2", "3"}, Answer: 2},
		{Prompt: "What is the speed of light in vacuum?", Choices: []string{"299,792 km/s", "150,000 km/s", "450,000 km/s", "1,000,000 km/s"}, Answer: 0},
		{Prompt: "Who wrote '1984'?", Choices: []string{"George Orwell", "Aldous Huxley", "Ray Bradbury", "H.G. Wells"}, Answer: 0},
		{Prompt: "What is the atomic number of carbon?", Choices: []string{"4", "6", "8", "12"}, Answer: 1},
		{Prompt: "In which year did the Berlin Wall fall?", Choices: []string{"1987", "1989", "1991", "1993"}, Answer: 1},
		{Prompt: "What is the powerhouse of the cell?", Choices: []string{"Nucleus", "Ribosome", "Mitochondria", "Golgi apparatus"}, Answer: 2},
		{Prompt: "Which element has the symbol 'W'?", Choices: []string{"Tungsten", "Tin", "Titanium", "Vanadium"}, Answer: 0},
		{Prompt: "What is the square root of 144?", Choices: []string{"11", "12", "13", "14"}, Answer: 1},
	},
}

func bucket[T any](tables map[model.Difficulty][]T, d model.Difficulty) []T {
	if items, ok := tables[d]; ok {
		return items
	}
	return tables[model.DefaultDifficulty]
}

// HangmanWord picks a hangman word from the difficulty bucket
func (e *Engine) HangmanWord(d model.Difficulty) string {
	return pick(e.random, bucket(hangmanWords, d))
}

// WordleWord picks a wordle target from the difficulty bucket
func (e *Engine) WordleWord(d model.Difficulty) string {
	return pick(e.random, bucket(wordleWords, d))
}

// Questions draws n distinct questions from the difficulty bucket
func (e *Engine) Questions(d model.Difficulty, n int) []Question {
	pool := slices.Clone(bucket(questions, d))
	n = min(n, len(pool))
	// Partial Fisher-Yates: the first n slots end up a uniform sample
	for i := 0; i < n; i++ {
		j := i + e.random.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
