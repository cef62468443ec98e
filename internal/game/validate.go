package game

import "github.com/benbotluks/staffear/internal/music"

// Stats is the outcome of comparing the user's answer against the
// round's answer. Accuracy is a percentage of the correct set.
type Stats struct {
	Correct   int
	Incorrect int
	Missing   int
	Total     int
	Accuracy  float64
}

// Matches pairs selected notes with correct notes as pitch multisets:
// each correct note is matched by at most one selected note. It returns
// a matched flag per selected note and the correct notes left unmatched,
// for per-note result styling.
func Matches(selected, correct []music.Note) (matched []bool, missing []music.Note) {
	matched = make([]bool, len(selected))
	for _, want := range correct {
		found := false
		for i, have := range selected {
			if !matched[i] && have.SamePitch(want) {
				matched[i] = true
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	return matched, missing
}

// Validate compares the selected notes against the correct set.
func Validate(selected, correct []music.Note) Stats {
	matched, missing := Matches(selected, correct)
	stats := Stats{Total: len(correct), Missing: len(missing)}
	for _, ok := range matched {
		if ok {
			stats.Correct++
		}
	}
	stats.Incorrect = len(selected) - stats.Correct

	if stats.Total > 0 {
		stats.Accuracy = 100 * float64(stats.Correct) / float64(stats.Total)
	}
	return stats
}

// Perfect reports a fully correct answer with no extra notes.
func (s Stats) Perfect() bool {
	return s.Total > 0 && s.Correct == s.Total && s.Incorrect == 0
}
