// Package builder implements the incremental note-input state machine:
// a letter key places a note, arrow-style moves adjust it in place, and
// confirm leaves it on the staff.
package builder

import (
	"sync"

	"github.com/benbotluks/staffear/internal/game"
	"github.com/benbotluks/staffear/internal/music"
)

// Builder edits at most one "active" note at a time. Every edit goes
// through Selection.Replace so observers never see two representations
// of the in-progress note. Mutations are serialized with a mutex; the
// TUI event loop is single-threaded but audio callbacks are not.
type Builder struct {
	mu       sync.Mutex
	sel      *game.Selection
	active   music.Note
	building bool
}

// New builds a note builder over the given selection.
func New(sel *game.Selection) *Builder {
	return &Builder{sel: sel}
}

// Active returns the note currently being edited.
func (b *Builder) Active() (music.Note, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active, b.building
}

// Building reports whether a note is being edited.
func (b *Builder) Building() bool {
	_, ok := b.Active()
	return ok
}

// Start places a new note of the given class and begins editing it. The
// starting octave follows the last selected note: a same-or-lower
// letter bumps the octave so input keeps ascending, clamped into the
// MIDI range. Returns false when the selection is full.
func (b *Builder) Start(class music.NoteClass) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.building {
		return false
	}

	octave := music.DefaultOctave
	if last, ok := b.sel.Last(); ok {
		octave = last.Octave
		if class <= last.Class {
			octave++
		}
	}
	note := music.New(class, octave, music.Natural)
	for note.MIDI() > music.MaxMIDI {
		note = note.WithOctave(note.Octave - 1)
	}
	for note.MIDI() < music.MinMIDI {
		note = note.WithOctave(note.Octave + 1)
	}

	if !b.sel.Select(note) {
		return false
	}
	b.active = note
	b.building = true
	return true
}

// StepUp moves the active note one letter up, carrying the octave.
func (b *Builder) StepUp() bool { return b.step(1) }

// StepDown moves the active note one letter down.
func (b *Builder) StepDown() bool { return b.step(-1) }

func (b *Builder) step(offset int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.building {
		return false
	}
	moved, ok := b.active.MoveStep(offset)
	if !ok {
		return false
	}
	return b.replace(moved)
}

// OctaveUp shifts the active note an octave up, bounded.
func (b *Builder) OctaveUp() bool { return b.octave(1) }

// OctaveDown shifts the active note an octave down, bounded.
func (b *Builder) OctaveDown() bool { return b.octave(-1) }

func (b *Builder) octave(distance int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.building {
		return false
	}
	moved, ok := b.active.MoveOctave(distance)
	if !ok {
		return false
	}
	return b.replace(moved)
}

// SetAccidental respells the active note.
func (b *Builder) SetAccidental(a music.Accidental) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.building {
		return false
	}
	next := b.active.WithAccidental(a)
	if !next.InRange() {
		return false
	}
	return b.replace(next)
}

func (b *Builder) replace(next music.Note) bool {
	if !b.sel.Replace(b.active, next) {
		// The active note vanished under us; drop back to idle.
		b.building = false
		return false
	}
	b.active = next
	return true
}

// Confirm keeps the active note selected and returns to idle.
func (b *Builder) Confirm() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.building {
		return false
	}
	b.building = false
	return true
}

// Remove deselects the in-progress note and returns to idle.
func (b *Builder) Remove() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.building {
		return false
	}
	b.sel.Deselect(b.active)
	b.building = false
	return true
}

// Clear is a hard reset of builder state. The placed note, if any, is
// left in the selection.
func (b *Builder) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.building = false
	b.active = music.Note{}
}
