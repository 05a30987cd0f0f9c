package opponent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jeet1511/EliteZero/internal/model"
)

func TestWordleBucketLengths(t *testing.T) {
	lengths := map[model.Difficulty]int{
		model.DifficultyEasy:       4,
		model.DifficultyHard:       5,
		model.DifficultyImpossible: 6,
	}
	for d, n := range lengths {
		for _, w := range wordleWords[d] {
			assert.Len(t, w, n, "%s word %s", d, w)
			assert.Equal(t, strings.ToUpper(w), w)
		}
	}
}

func TestHangmanBucketsAreUpperCase(t *testing.T) {
	for d, words := range hangmanWords {
		assert.NotEmpty(t, words, d)
		for _, w := range words {
			assert.Equal(t, strings.ToUpper(w), w)
		}
	}
}
