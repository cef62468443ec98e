// Package game holds the note selection, answer validation and round
// generation for the trainer.
package game

import (
	"github.com/benbotluks/staffear/internal/music"
	"github.com/benbotluks/staffear/internal/staff"
)

// Selection is the ordered set of notes the user has placed on the
// staff. Notes are tracked by identity, so two independently placed C4
// naturals coexist. The capacity limit is enforced here, not in the
// interaction layer.
type Selection struct {
	notes    []music.Note
	maxNotes int
	limited  bool
}

// NewSelection builds a selection capped at maxNotes.
func NewSelection(maxNotes int) *Selection {
	return &Selection{maxNotes: maxNotes, limited: true}
}

// SetMaxNotes changes the capacity. Existing notes are kept even when
// they exceed the new cap; only further adds are rejected.
func (s *Selection) SetMaxNotes(n int) {
	s.maxNotes = n
}

// SetLimited toggles capacity enforcement.
func (s *Selection) SetLimited(limited bool) {
	s.limited = limited
}

// Select adds a note. It reports false when the selection is full.
func (s *Selection) Select(n music.Note) bool {
	if s.limited && len(s.notes) >= s.maxNotes {
		return false
	}
	s.notes = append(s.notes, n)
	return true
}

// Deselect removes a note by identity.
func (s *Selection) Deselect(n music.Note) bool {
	for i, have := range s.notes {
		if have.Equals(n) {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps old for new in place as a single operation, so observers
// never see both or neither. It reports false when old is not selected.
func (s *Selection) Replace(old, new music.Note) bool {
	for i, have := range s.notes {
		if have.Equals(old) {
			s.notes[i] = new
			return true
		}
	}
	return false
}

// AtPosition returns the first selected note sitting on the given staff
// line position.
func (s *Selection) AtPosition(position int) (music.Note, bool) {
	for _, n := range s.notes {
		if staff.PositionForNote(n) == position {
			return n, true
		}
	}
	return music.Note{}, false
}

// Contains reports whether the exact note (by identity) is selected.
func (s *Selection) Contains(n music.Note) bool {
	for _, have := range s.notes {
		if have.Equals(n) {
			return true
		}
	}
	return false
}

// Last returns the most recently added note.
func (s *Selection) Last() (music.Note, bool) {
	if len(s.notes) == 0 {
		return music.Note{}, false
	}
	return s.notes[len(s.notes)-1], true
}

// Notes returns a copy of the selected notes in placement order.
func (s *Selection) Notes() []music.Note {
	out := make([]music.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Len is the number of selected notes.
func (s *Selection) Len() int {
	return len(s.notes)
}

// Full reports whether further adds would be rejected.
func (s *Selection) Full() bool {
	return s.limited && len(s.notes) >= s.maxNotes
}

// Clear removes every note.
func (s *Selection) Clear() {
	s.notes = s.notes[:0]
}
