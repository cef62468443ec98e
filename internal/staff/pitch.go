// Package staff maps between staff line positions, pitches and rendered
// coordinates for a treble-clef staff.
package staff

import "github.com/benbotluks/staffear/internal/music"

// Line positions are counted in scale steps from the bottom staff line:
// 0 is the bottom line (E4), even positions are lines, odd positions are
// spaces. The five-line staff spans 0..8; everything outside needs
// ledger lines.
const (
	MinPosition = -6 // F3, third ledger position below
	MaxPosition = 14 // E6, third ledger position above
	BottomLine  = 0
	TopLine     = 8
)

// pitchTable is the canonical treble-clef mapping from line position to
// natural pitch. Index i holds position MinPosition+i.
var pitchTable = [MaxPosition - MinPosition + 1]struct {
	Class  music.NoteClass
	Octave int
}{
	{music.F, 3}, // -6
	{music.G, 3}, // -5
	{music.A, 3}, // -4
	{music.B, 3}, // -3
	{music.C, 4}, // -2, middle C
	{music.D, 4}, // -1
	{music.E, 4}, // 0, bottom line
	{music.F, 4}, // 1
	{music.G, 4}, // 2
	{music.A, 4}, // 3
	{music.B, 4}, // 4, middle line
	{music.C, 5}, // 5
	{music.D, 5}, // 6
	{music.E, 5}, // 7
	{music.F, 5}, // 8, top line
	{music.G, 5}, // 9
	{music.A, 5}, // 10
	{music.B, 5}, // 11
	{music.C, 6}, // 12
	{music.D, 6}, // 13
	{music.E, 6}, // 14
}

// reverseIndex maps naturalized letter+octave back to a line position.
var reverseIndex = func() map[[2]int]int {
	idx := make(map[[2]int]int, len(pitchTable))
	for i, e := range pitchTable {
		idx[[2]int{int(e.Class), e.Octave}] = MinPosition + i
	}
	return idx
}()

// PitchForPosition returns the natural pitch at a line position.
// Positions outside the table extrapolate to the nearest tabulated
// entry; the mapping feeds interactive input and must never fail.
func PitchForPosition(position int) music.Note {
	position = clamp(position, MinPosition, MaxPosition)
	e := pitchTable[position-MinPosition]
	return music.New(e.Class, e.Octave, music.Natural)
}

// PositionForNote returns the line position of a note. The accidental is
// stripped first; position depends only on letter and octave. Notes
// outside the table snap to the nearest end.
func PositionForNote(n music.Note) int {
	if p, ok := reverseIndex[[2]int{int(n.Class), n.Octave}]; ok {
		return p
	}
	if n.Naturalized().MIDI() < music.MinMIDI {
		return MinPosition
	}
	return MaxPosition
}

// RequiresLedgerLine reports whether a position lies off the five-line
// staff.
func RequiresLedgerLine(position int) bool {
	return position < BottomLine || position > TopLine
}

// LedgerLineOffset returns how many ledger lines a position needs.
func LedgerLineOffset(position int) int {
	if position < BottomLine {
		return -position / 2
	}
	if position > TopLine {
		return (position - TopLine) / 2
	}
	return 0
}

// cycleOrder is the accidental cycle used by repeated right-click /
// cycle requests.
var cycleOrder = [3]music.Accidental{music.Natural, music.Sharp, music.Flat}

// VariantsAt enumerates the accidental spellings available at a line
// position, in cycle order. A spelling is available when its pitch stays
// inside the MIDI bounds.
func VariantsAt(position int) []music.Note {
	base := PitchForPosition(position)
	variants := make([]music.Note, 0, len(cycleOrder))
	for _, a := range cycleOrder {
		v := base.WithAccidental(a)
		if v.InRange() {
			variants = append(variants, v)
		}
	}
	return variants
}

// CycleAccidental returns the note respelled with the next accidental
// available at its line position. When only one spelling exists the note
// comes back unchanged.
func CycleAccidental(n music.Note) music.Note {
	variants := VariantsAt(PositionForNote(n))
	if len(variants) <= 1 {
		return n
	}
	for i, v := range variants {
		if v.Accidental == n.Accidental {
			next := variants[(i+1)%len(variants)]
			return n.WithAccidental(next.Accidental)
		}
	}
	// Current spelling not available here; restart the cycle.
	return n.WithAccidental(variants[0].Accidental)
}

// Position is a derived, ephemeral description of one staff position.
type Position struct {
	LinePosition   int
	Pitch          music.Note
	Ledger         bool
	AccidentalHint music.Accidental
}

// PositionInfo builds the full description of a line position.
func PositionInfo(position int) Position {
	position = clamp(position, MinPosition, MaxPosition)
	pitch := PitchForPosition(position)
	return Position{
		LinePosition:   position,
		Pitch:          pitch,
		Ledger:         RequiresLedgerLine(position),
		AccidentalHint: pitch.Accidental,
	}
}

// AllPositions enumerates every valid position bottom to top, for
// keyboard navigation across the full ledger-line range.
func AllPositions() []Position {
	out := make([]Position, 0, MaxPosition-MinPosition+1)
	for p := MinPosition; p <= MaxPosition; p++ {
		out = append(out, PositionInfo(p))
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
