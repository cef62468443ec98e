// Package midifile writes an exercise out as a standard MIDI file so a
// round can be replayed in other software.
package midifile

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/benbotluks/staffear/internal/music"
)

const (
	ticksPerQuarterNote = 960
	noteVelocity        = 100
	answerChannel       = 0
	userChannel         = 1
)

// Export writes the round's answer chord followed by the user's answer
// (when present) to path. The answer sounds as one whole-note chord;
// the user's notes follow one beat apart on a second track.
func Export(path string, answer, userAnswer []music.Note, bpm int) error {
	if len(answer) == 0 {
		return fmt.Errorf("nothing to export")
	}
	if bpm <= 0 {
		bpm = 120
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(ticksPerQuarterNote)

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(float64(bpm)))
	tempo.Close(0)
	if err := sm.Add(tempo); err != nil {
		return fmt.Errorf("error adding tempo track: %w", err)
	}

	wholeNote := uint32(ticksPerQuarterNote * 4)

	var chord smf.Track
	for _, n := range answer {
		chord.Add(0, midi.NoteOn(answerChannel, uint8(n.MIDI()), noteVelocity)) //nolint:gosec // pitches are bounded by music.MaxMIDI
	}
	for i, n := range answer {
		delta := uint32(0)
		if i == 0 {
			delta = wholeNote
		}
		chord.Add(delta, midi.NoteOff(answerChannel, uint8(n.MIDI()))) //nolint:gosec // pitches are bounded by music.MaxMIDI
	}
	chord.Close(0)
	if err := sm.Add(chord); err != nil {
		return fmt.Errorf("error adding answer track: %w", err)
	}

	if len(userAnswer) > 0 {
		var user smf.Track
		for _, n := range userAnswer {
			user.Add(0, midi.NoteOn(userChannel, uint8(n.MIDI()), noteVelocity))                //nolint:gosec // bounded
			user.Add(uint32(ticksPerQuarterNote), midi.NoteOff(userChannel, uint8(n.MIDI()))) //nolint:gosec // bounded
		}
		user.Close(0)
		if err := sm.Add(user); err != nil {
			return fmt.Errorf("error adding user track: %w", err)
		}
	}

	if err := sm.WriteFile(path); err != nil {
		return fmt.Errorf("error writing MIDI file: %w", err)
	}
	return nil
}
