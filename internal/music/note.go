// Package music defines the note value type shared by the staff, game
// and audio packages.
package music

import (
	"fmt"
	"sync/atomic"
)

// MIDI pitch bounds for every note the trainer can place. They match the
// staff table range (F3 bottom ledger area to E6 above the staff).
const (
	MinMIDI = 53 // F3
	MaxMIDI = 88 // E6
)

// DefaultOctave is where note input starts when nothing is selected yet.
const DefaultOctave = 4

// NoteClass is a natural letter name, C through B.
type NoteClass int

const (
	C NoteClass = iota
	D
	E
	F
	G
	A
	B
)

const numClasses = 7

var classNames = [numClasses]string{"C", "D", "E", "F", "G", "A", "B"}

// Semitone offset of each class above C.
var classSemitones = [numClasses]int{0, 2, 4, 5, 7, 9, 11}

func (c NoteClass) String() string {
	if c < 0 || c >= numClasses {
		return "?"
	}
	return classNames[c]
}

// Accidental modifies a letter name by at most one semitone.
type Accidental int

const (
	Natural Accidental = iota
	Sharp
	Flat
)

// Offset is the semitone adjustment the accidental applies.
func (a Accidental) Offset() int {
	switch a {
	case Sharp:
		return 1
	case Flat:
		return -1
	default:
		return 0
	}
}

// Suffix is the compact textual form of the accidental ("" / "#" / "b").
func (a Accidental) Suffix() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	default:
		return ""
	}
}

// Glyph is the display form of the accidental.
func (a Accidental) Glyph() string {
	switch a {
	case Sharp:
		return "♯"
	case Flat:
		return "♭"
	default:
		return "♮"
	}
}

// Note is an immutable pitch value. Class, Octave and Accidental fully
// determine the pitch; the id distinguishes otherwise identical notes
// placed independently (two C4 naturals added separately are pitch-equal
// but not identity-equal).
type Note struct {
	Class      NoteClass
	Octave     int
	Accidental Accidental

	id uint64
}

var lastID atomic.Uint64

// New builds a note with a fresh identity.
func New(class NoteClass, octave int, accidental Accidental) Note {
	return Note{
		Class:      class,
		Octave:     octave,
		Accidental: accidental,
		id:         lastID.Add(1),
	}
}

// MIDI returns the note's MIDI pitch number (C4 = 60).
func (n Note) MIDI() int {
	return (n.Octave+1)*12 + classSemitones[n.Class] + n.Accidental.Offset()
}

// InRange reports whether the pitch lies within the trainer's MIDI bounds.
func (n Note) InRange() bool {
	p := n.MIDI()
	return p >= MinMIDI && p <= MaxMIDI
}

// SamePitch compares class, octave and accidental, ignoring identity.
func (n Note) SamePitch(o Note) bool {
	return n.Class == o.Class && n.Octave == o.Octave && n.Accidental == o.Accidental
}

// Equals compares identity only.
func (n Note) Equals(o Note) bool {
	return n.id != 0 && n.id == o.id
}

// Naturalized strips the accidental, keeping the identity. Line position
// depends only on letter and octave, so the staff lookup uses this form.
func (n Note) Naturalized() Note {
	n.Accidental = Natural
	return n
}

// WithOctave returns a new note at the given octave.
func (n Note) WithOctave(octave int) Note {
	return New(n.Class, octave, n.Accidental)
}

// WithAccidental returns a new note with the given accidental.
func (n Note) WithAccidental(a Accidental) Note {
	return New(n.Class, n.Octave, a)
}

// WithClass returns a new note with the given letter class.
func (n Note) WithClass(c NoteClass) Note {
	return New(c, n.Octave, n.Accidental)
}

// MoveStep walks the note through the natural letter sequence, carrying
// the octave at the B/C boundary. The move is rejected (ok=false) when
// the result would leave the MIDI bounds; the note is never clamped.
func (n Note) MoveStep(offset int) (Note, bool) {
	idx := int(n.Class) + offset
	octave := n.Octave
	for idx < 0 {
		idx += numClasses
		octave--
	}
	for idx >= numClasses {
		idx -= numClasses
		octave++
	}
	moved := New(NoteClass(idx), octave, n.Accidental)
	if !moved.InRange() {
		return n, false
	}
	return moved, true
}

// MoveOctave shifts the note by whole octaves, bounded like MoveStep.
func (n Note) MoveOctave(distance int) (Note, bool) {
	moved := New(n.Class, n.Octave+distance, n.Accidental)
	if !moved.InRange() {
		return n, false
	}
	return moved, true
}

// String renders the compact encoding, e.g. "C4", "F#5", "Bb3".
func (n Note) String() string {
	return fmt.Sprintf("%s%s%d", n.Class, n.Accidental.Suffix(), n.Octave)
}

// Display renders the notation-library style encoding, e.g. "c#/4".
func (n Note) Display() string {
	suffix := n.Accidental.Suffix()
	return fmt.Sprintf("%s%s/%d", lower(n.Class.String()), suffix, n.Octave)
}

func lower(s string) string {
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'G' {
		return string(s[0] + ('a' - 'A'))
	}
	return s
}
