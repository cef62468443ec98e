package builder

import (
	"testing"

	"github.com/benbotluks/staffear/internal/game"
	"github.com/benbotluks/staffear/internal/music"
)

func newBuilder(max int) (*Builder, *game.Selection) {
	sel := game.NewSelection(max)
	return New(sel), sel
}

func TestStartDefaultsToConfiguredOctave(t *testing.T) {
	b, sel := newBuilder(8)
	if !b.Start(music.C) {
		t.Fatal("start rejected")
	}
	active, ok := b.Active()
	if !ok || active.Octave != music.DefaultOctave || active.Class != music.C {
		t.Errorf("active = %v, %v", active, ok)
	}
	if sel.Len() != 1 {
		t.Error("starting should place the note immediately")
	}
}

func TestStartAscendsFromLastNote(t *testing.T) {
	tests := []struct {
		last       music.Note
		class      music.NoteClass
		wantOctave int
	}{
		// Higher letter keeps the octave.
		{music.New(music.C, 4, music.Natural), music.E, 4},
		// Same letter bumps the octave.
		{music.New(music.C, 4, music.Natural), music.C, 5},
		// Lower letter bumps the octave.
		{music.New(music.G, 4, music.Natural), music.D, 5},
		// Bump clamps back into the MIDI range.
		{music.New(music.D, 6, music.Natural), music.C, 6},
	}
	for _, tt := range tests {
		b, sel := newBuilder(8)
		sel.Select(tt.last)
		if !b.Start(tt.class) {
			t.Fatalf("start(%v after %v) rejected", tt.class, tt.last)
		}
		active, _ := b.Active()
		if active.Octave != tt.wantOctave {
			t.Errorf("start %v after %v: octave = %d, want %d",
				tt.class, tt.last, active.Octave, tt.wantOctave)
		}
		b.Confirm()
	}
}

func TestStartRejectedWhenSelectionFull(t *testing.T) {
	b, sel := newBuilder(1)
	sel.Select(music.New(music.C, 4, music.Natural))
	if b.Start(music.D) {
		t.Error("start should fail on a full selection")
	}
	if b.Building() {
		t.Error("builder should stay idle")
	}
}

func TestStepReplacesInPlace(t *testing.T) {
	b, sel := newBuilder(8)
	b.Start(music.B) // B4
	if !b.StepUp() {
		t.Fatal("step up rejected")
	}
	active, _ := b.Active()
	if active.Class != music.C || active.Octave != 5 {
		t.Errorf("after step up: %v, want C5", active)
	}
	if sel.Len() != 1 {
		t.Errorf("selection holds %d notes, want the single active note", sel.Len())
	}
	if !sel.Contains(active) {
		t.Error("selection should hold the stepped note")
	}
}

func TestMovesDisabledAtBounds(t *testing.T) {
	b, _ := newBuilder(8)
	b.Start(music.E) // E4
	for b.OctaveUp() {
	}
	active, _ := b.Active()
	if active.Octave != 6 {
		t.Fatalf("ceiling octave = %d, want 6", active.Octave)
	}
	if b.StepUp() {
		t.Error("step above E6 should be rejected")
	}
	if b.OctaveUp() {
		t.Error("octave above E6 should be rejected")
	}
	after, _ := b.Active()
	if !after.SamePitch(active) {
		t.Error("rejected move changed the active note")
	}
}

func TestSetAccidental(t *testing.T) {
	b, sel := newBuilder(8)
	b.Start(music.G)
	if !b.SetAccidental(music.Sharp) {
		t.Fatal("set accidental rejected")
	}
	active, _ := b.Active()
	if active.Accidental != music.Sharp {
		t.Errorf("accidental = %v", active.Accidental)
	}
	if got := sel.Notes()[0]; got.Accidental != music.Sharp {
		t.Errorf("selection note accidental = %v", got.Accidental)
	}
}

func TestConfirmKeepsNote(t *testing.T) {
	b, sel := newBuilder(8)
	b.Start(music.A)
	active, _ := b.Active()
	if !b.Confirm() {
		t.Fatal("confirm rejected")
	}
	if b.Building() {
		t.Error("confirm should return to idle")
	}
	if !sel.Contains(active) {
		t.Error("confirmed note should stay selected")
	}
	if b.Confirm() {
		t.Error("confirm while idle should fail")
	}
}

func TestRemoveDeselects(t *testing.T) {
	b, sel := newBuilder(8)
	b.Start(music.F)
	if !b.Remove() {
		t.Fatal("remove rejected")
	}
	if sel.Len() != 0 {
		t.Error("remove should deselect the in-progress note")
	}
	if b.Building() {
		t.Error("remove should return to idle")
	}
}

func TestClearIsHardReset(t *testing.T) {
	b, sel := newBuilder(8)
	b.Start(music.F)
	b.Clear()
	if b.Building() {
		t.Error("clear should return to idle")
	}
	if sel.Len() != 1 {
		t.Error("clear must not touch the selection")
	}
}
