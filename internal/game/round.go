package game

import (
	"math/rand"

	"github.com/benbotluks/staffear/internal/music"
	"github.com/benbotluks/staffear/internal/staff"
)

// Round is one ear-training exercise: a hidden answer the user tries to
// reproduce on the staff.
type Round struct {
	Answer     []music.Note
	Difficulty int // note count
}

// DifficultyName buckets a note count for display and statistics.
func DifficultyName(difficulty int) string {
	switch {
	case difficulty <= 2:
		return "easy"
	case difficulty <= 4:
		return "medium"
	default:
		return "hard"
	}
}

// NewRound draws a random answer of minNotes..maxNotes notes on distinct
// staff positions. Accidentals are drawn from the spellings available at
// each position, biased toward naturals.
func NewRound(rng *rand.Rand, minNotes, maxNotes int) Round {
	if minNotes < 1 {
		minNotes = 1
	}
	if maxNotes < minNotes {
		maxNotes = minNotes
	}
	count := minNotes + rng.Intn(maxNotes-minNotes+1)

	positions := rng.Perm(staff.MaxPosition - staff.MinPosition + 1)[:count]
	answer := make([]music.Note, 0, count)
	for _, p := range positions {
		variants := staff.VariantsAt(staff.MinPosition + p)
		// Half the time take the natural; otherwise any spelling.
		v := variants[0]
		if rng.Intn(2) == 1 {
			v = variants[rng.Intn(len(variants))]
		}
		answer = append(answer, v)
	}
	return Round{Answer: answer, Difficulty: count}
}
