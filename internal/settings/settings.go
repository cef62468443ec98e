// Package settings persists user preferences as a version-tagged JSON
// record. A missing, corrupt or version-mismatched file falls back to
// defaults; persistence failures are non-fatal and the in-memory record
// keeps working.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Version tags the stored record. Bump it when the schema changes; a
// mismatched file is discarded and defaults re-saved.
const Version = 1

// Note-count bounds for a round.
const (
	MinNoteCount = 1
	MaxNoteCount = 8
)

// Settings is the persisted preference record.
type Settings struct {
	Version    int     `json:"version"`
	MinNotes   int     `json:"minNotes"`
	MaxNotes   int     `json:"maxNotes"`
	Volume     float64 `json:"volume"`
	AutoReplay bool    `json:"autoReplay"`
}

// Default returns the settings used on first run and after any load
// failure.
func Default() Settings {
	return Settings{
		Version:    Version,
		MinNotes:   1,
		MaxNotes:   3,
		Volume:     0.75,
		AutoReplay: true,
	}
}

// Validate rejects records the rest of the app must never see.
func (s Settings) Validate() error {
	if s.MinNotes < MinNoteCount || s.MinNotes > MaxNoteCount {
		return fmt.Errorf("minNotes %d outside [%d,%d]", s.MinNotes, MinNoteCount, MaxNoteCount)
	}
	if s.MaxNotes < MinNoteCount || s.MaxNotes > MaxNoteCount {
		return fmt.Errorf("maxNotes %d outside [%d,%d]", s.MaxNotes, MinNoteCount, MaxNoteCount)
	}
	if s.MinNotes > s.MaxNotes {
		return fmt.Errorf("minNotes %d greater than maxNotes %d", s.MinNotes, s.MaxNotes)
	}
	if s.Volume < 0 || s.Volume > 1 {
		return fmt.Errorf("volume %v outside [0,1]", s.Volume)
	}
	return nil
}

// Store reads and writes the settings file.
type Store struct {
	path string
}

// NewStore builds a store over an explicit file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the settings file under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("no user config dir: %w", err)
	}
	return filepath.Join(dir, "staffear", "settings.json"), nil
}

// Load reads the stored record. Any failure — missing file, bad JSON,
// version mismatch, invalid values — yields the defaults and a non-nil
// error describing why; the caller surfaces it as a warning and keeps
// going. On version mismatch the defaults are re-saved.
func (st *Store) Load() (Settings, error) {
	defaults := Default()

	data, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}
		return defaults, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return defaults, fmt.Errorf("parse settings: %w", err)
	}
	if s.Version != Version {
		_ = st.Save(defaults)
		return defaults, fmt.Errorf("settings version %d, want %d; reset to defaults", s.Version, Version)
	}
	if err := s.Validate(); err != nil {
		return defaults, fmt.Errorf("stored settings invalid: %w", err)
	}
	return s, nil
}

// Save validates and writes the record.
func (st *Store) Save(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.Version = Version

	if err := os.MkdirAll(filepath.Dir(st.path), 0o750); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(st.path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
