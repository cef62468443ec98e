// Package audio provides the playback collaborator: a small polyphonic
// synthesizer used to sound the exercise notes.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/benbotluks/staffear/internal/music"
)

const (
	sampleRate   = 44100
	channelCount = 2 // stereo
	bitDepth     = 2 // 16-bit
)

// NoteDuration is how long each exercise note sounds.
const NoteDuration = 900 * time.Millisecond

// voice is a single sounding note.
type voice struct {
	pitch     int
	frequency float64
	phase     float64
	envelope  float64
	releasing bool
	active    bool
}

// Engine is the synthesizer. A nil Engine is valid and reports
// unavailable; every playback method on it is a no-op, so callers can
// hold the result of a failed NewEngine without checking everywhere.
type Engine struct {
	mu           sync.Mutex
	otoCtx       *oto.Context
	player       *oto.Player
	voices       []*voice
	maxVoices    int
	masterVolume float64
}

// NewEngine starts the audio stream. Failure (no audio device,
// unsupported platform) is reported once; the caller keeps the nil
// engine and the trainer runs silent.
func NewEngine() (*Engine, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	e := &Engine{
		otoCtx:       otoCtx,
		maxVoices:    16,
		masterVolume: 0.75,
	}
	e.player = otoCtx.NewPlayer(&engineReader{engine: e})
	e.player.Play()
	return e, nil
}

// Available is the capability check the UI consults before offering
// playback.
func (e *Engine) Available() bool {
	return e != nil && e.otoCtx != nil
}

// SetVolume sets the master volume, clamped to [0,1].
func (e *Engine) SetVolume(vol float64) {
	if !e.Available() {
		return
	}
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	e.mu.Lock()
	e.masterVolume = vol
	e.mu.Unlock()
}

// PlayChord sounds all notes simultaneously for the fixed duration.
// Fire-and-forget: the release is scheduled, nothing waits on it.
func (e *Engine) PlayChord(notes []music.Note, d time.Duration) {
	if !e.Available() {
		return
	}
	for _, n := range notes {
		e.noteOn(n.MIDI())
	}
	pitches := make([]int, len(notes))
	for i, n := range notes {
		pitches[i] = n.MIDI()
	}
	time.AfterFunc(d, func() {
		for _, p := range pitches {
			e.noteOff(p)
		}
	})
}

// PlaySequence sounds the notes one after another, each for the fixed
// duration.
func (e *Engine) PlaySequence(notes []music.Note, d time.Duration) {
	if !e.Available() {
		return
	}
	for i, n := range notes {
		pitch := n.MIDI()
		start := time.Duration(i) * d
		time.AfterFunc(start, func() { e.noteOn(pitch) })
		time.AfterFunc(start+d, func() { e.noteOff(pitch) })
	}
}

// StopAll releases every sounding note.
func (e *Engine) StopAll() {
	if !e.Available() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, v := range e.voices {
		if v.active {
			v.releasing = true
		}
	}
}

// Close shuts the engine down.
func (e *Engine) Close() error {
	if !e.Available() {
		return nil
	}
	e.StopAll()
	return nil
}

func (e *Engine) noteOn(pitch int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var free *voice
	for _, v := range e.voices {
		if !v.active {
			free = v
			break
		}
	}
	if free == nil {
		if len(e.voices) < e.maxVoices {
			free = &voice{}
			e.voices = append(e.voices, free)
		} else {
			// Steal the oldest voice.
			free = e.voices[0]
		}
	}

	free.pitch = pitch
	free.frequency = pitchToFreq(pitch)
	free.phase = 0
	free.envelope = 0
	free.releasing = false
	free.active = true
}

func (e *Engine) noteOff(pitch int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, v := range e.voices {
		if v.active && v.pitch == pitch && !v.releasing {
			v.releasing = true
			break
		}
	}
}

// engineReader implements io.Reader for continuous sample generation.
type engineReader struct {
	engine *Engine
}

func (r *engineReader) Read(buf []byte) (int, error) {
	e := r.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	numSamples := len(buf) / (channelCount * bitDepth)
	for i := 0; i < numSamples; i++ {
		var sample float64

		for _, v := range e.voices {
			if !v.active {
				continue
			}
			sample += math.Sin(2*math.Pi*v.phase) * v.envelope * 0.2

			v.phase += v.frequency / sampleRate
			if v.phase >= 1.0 {
				v.phase -= 1.0
			}

			if v.releasing {
				v.envelope *= 0.9995
				if v.envelope < 0.001 {
					v.active = false
				}
			} else if v.envelope < 1.0 {
				v.envelope += 0.001
				if v.envelope > 1.0 {
					v.envelope = 1.0
				}
			}
		}

		sample *= e.masterVolume
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		sampleInt := int16(sample * 32767)

		idx := i * channelCount * bitDepth
		buf[idx] = byte(sampleInt)
		buf[idx+1] = byte(sampleInt >> 8)
		buf[idx+2] = byte(sampleInt)
		buf[idx+3] = byte(sampleInt >> 8)
	}
	return len(buf), nil
}

// pitchToFreq converts a MIDI pitch number to Hz. A4 (69) = 440 Hz.
func pitchToFreq(pitch int) float64 {
	return 440.0 * math.Pow(2.0, (float64(pitch)-69.0)/12.0)
}
