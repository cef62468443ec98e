package music

import "testing"

func TestMIDIPitch(t *testing.T) {
	tests := []struct {
		class      NoteClass
		octave     int
		accidental Accidental
		want       int
	}{
		{C, 4, Natural, 60},
		{A, 4, Natural, 69},
		{C, 4, Sharp, 61},
		{D, 4, Flat, 61},
		{F, 3, Natural, 53},
		{E, 6, Natural, 88},
		{B, 3, Natural, 59},
	}
	for _, tt := range tests {
		n := New(tt.class, tt.octave, tt.accidental)
		if got := n.MIDI(); got != tt.want {
			t.Errorf("%s: MIDI = %d, want %d", n, got, tt.want)
		}
	}
}

func TestIdentityVsPitchEquality(t *testing.T) {
	a := New(C, 4, Natural)
	b := New(C, 4, Natural)

	if !a.SamePitch(b) {
		t.Error("two C4 naturals should be pitch-equal")
	}
	if a.Equals(b) {
		t.Error("independently created notes must not be identity-equal")
	}
	if !a.Equals(a) {
		t.Error("a note should equal itself")
	}
	if (Note{}).Equals(Note{}) {
		t.Error("zero-value notes have no identity")
	}
}

func TestMoveStepOctaveCarry(t *testing.T) {
	b3 := New(B, 3, Natural)
	up, ok := b3.MoveStep(1)
	if !ok || up.Class != C || up.Octave != 4 {
		t.Errorf("B3 step up = %v (ok=%v), want C4", up, ok)
	}

	c4 := New(C, 4, Natural)
	down, ok := c4.MoveStep(-1)
	if !ok || down.Class != B || down.Octave != 3 {
		t.Errorf("C4 step down = %v (ok=%v), want B3", down, ok)
	}
}

func TestMoveStepRejectsOutOfRange(t *testing.T) {
	low := New(F, 3, Natural) // MIDI 53, the lower bound
	if got, ok := low.MoveStep(-1); ok {
		t.Errorf("F3 step down should be rejected, got %v", got)
	} else if !got.SamePitch(low) {
		t.Errorf("rejected move should return the original note, got %v", got)
	}

	high := New(E, 6, Natural) // MIDI 88, the upper bound
	if _, ok := high.MoveStep(1); ok {
		t.Error("E6 step up should be rejected")
	}
	if _, ok := high.MoveOctave(1); ok {
		t.Error("E6 octave up should be rejected")
	}
	if _, ok := New(C, 5, Natural).MoveOctave(1); !ok {
		t.Error("C5 octave up should be allowed")
	}
}

func TestWithersCreateFreshIdentity(t *testing.T) {
	n := New(D, 4, Natural)
	m := n.WithAccidental(Sharp)
	if m.Accidental != Sharp || m.Class != D || m.Octave != 4 {
		t.Errorf("WithAccidental = %v", m)
	}
	if n.Equals(m) {
		t.Error("derived note should carry a new identity")
	}
	if n.Accidental != Natural {
		t.Error("original note mutated")
	}
}

func TestStringForms(t *testing.T) {
	tests := []struct {
		note    Note
		compact string
		display string
	}{
		{New(C, 4, Natural), "C4", "c/4"},
		{New(F, 5, Sharp), "F#5", "f#/5"},
		{New(B, 3, Flat), "Bb3", "bb/3"},
	}
	for _, tt := range tests {
		if got := tt.note.String(); got != tt.compact {
			t.Errorf("String = %q, want %q", got, tt.compact)
		}
		if got := tt.note.Display(); got != tt.display {
			t.Errorf("Display = %q, want %q", got, tt.display)
		}
	}
}

func TestParseNoteBothEncodings(t *testing.T) {
	tests := map[string]Note{
		"C4":   New(C, 4, Natural),
		"F#5":  New(F, 5, Sharp),
		"Bb3":  New(B, 3, Flat),
		"c#/4": New(C, 4, Sharp),
		"eb/5": New(E, 5, Flat),
		"g/3":  New(G, 3, Natural),
	}
	for in, want := range tests {
		got, err := ParseNote(in)
		if err != nil {
			t.Errorf("ParseNote(%q): %v", in, err)
			continue
		}
		if !got.SamePitch(want) {
			t.Errorf("ParseNote(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseNote("H4"); err == nil {
		t.Error("H4 should not parse")
	}
	if _, err := ParseNote(""); err == nil {
		t.Error("empty string should not parse")
	}
}

func TestDetectAccidental(t *testing.T) {
	tests := map[string]Accidental{
		"C#4":      Sharp,
		"c#/4":     Sharp,
		"Bb3":      Flat,
		"bb/3":     Flat,
		"C4":       Natural,
		"c/4":      Natural,
		"garbage":  Natural,
		"":         Natural,
		"e♭/5":     Flat,
		"F♯2":      Sharp,
	}
	for in, want := range tests {
		if got := DetectAccidental(in); got != want {
			t.Errorf("DetectAccidental(%q) = %v, want %v", in, got, want)
		}
	}
}
