package music

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// noteRe accepts both textual encodings in use at the render boundary:
// the compact form ("C#4", "Bb3") and the notation-library form
// ("c#/4", "bb/3").
var noteRe = regexp.MustCompile(`^([A-Ga-g])(#|b|♯|♭|n|♮)?/?(-?\d+)$`)

// accidentalRe picks the accidental out of either encoding without
// requiring the rest of the string to be well formed.
var accidentalRe = regexp.MustCompile(`^[A-Ga-g](#|♯|b|♭)`)

// ParseNote parses either textual note encoding into a structured Note
// with a fresh identity.
func ParseNote(s string) (Note, error) {
	m := noteRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Note{}, fmt.Errorf("unrecognized note %q", s)
	}
	class := NoteClass(strings.IndexByte("CDEFGAB", upper(m[1])[0]))
	octave, err := strconv.Atoi(m[3])
	if err != nil {
		return Note{}, fmt.Errorf("bad octave in %q: %w", s, err)
	}
	return New(class, octave, accidentalFromToken(m[2])), nil
}

// DetectAccidental extracts the accidental from a textual pitch in
// either encoding. Unrecognized input is treated as natural rather than
// failing; this feeds interactive rendering where degradation beats a
// crash.
func DetectAccidental(s string) Accidental {
	m := accidentalRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Natural
	}
	return accidentalFromToken(m[1])
}

func accidentalFromToken(tok string) Accidental {
	switch tok {
	case "#", "♯":
		return Sharp
	case "b", "♭":
		return Flat
	default:
		return Natural
	}
}

func upper(s string) string {
	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'g' {
		return string(s[0] - ('a' - 'A'))
	}
	return s
}
