// Package stats records ear-training results in a local SQLite
// database: running totals, per-difficulty accuracy and a bounded
// session history.
package stats

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// historyCap bounds the session history; the oldest rows are dropped
// once the cap is exceeded.
const historyCap = 1000

// Session is one answered round.
type Session struct {
	When        time.Time
	Difficulty  int
	Correct     bool
	NotesPlayed []string // compact note encodings of the answer
	UserAnswer  []string // compact note encodings of what the user placed
}

// Summary aggregates the whole history.
type Summary struct {
	TotalAttempts        int
	CorrectAnswers       int
	AccuracyByDifficulty map[int]float64 // percent per difficulty level
}

// Store wraps the statistics database.
type Store struct {
	db *sql.DB
}

// DefaultPath places the database next to the settings file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("no user config dir: %w", err)
	}
	return filepath.Join(dir, "staffear", "stats.db"), nil
}

// Open opens or creates the statistics database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create stats dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}

	initStatement := `
	create table if not exists sessions
	  (
		  id integer not null primary key,
		  at integer not null,
		  difficulty integer not null,
		  correct integer not null,
		  notes_played text,
		  user_answer text
	  );
	`
	if _, err := db.Exec(initStatement); err != nil {
		db.Close()
		return nil, fmt.Errorf("init stats db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores one session and trims the history to the cap.
func (s *Store) Record(sess Session) error {
	played, err := json.Marshal(sess.NotesPlayed)
	if err != nil {
		return err
	}
	answer, err := json.Marshal(sess.UserAnswer)
	if err != nil {
		return err
	}
	when := sess.When
	if when.IsZero() {
		when = time.Now()
	}

	_, err = s.db.Exec(
		"insert into sessions(at, difficulty, correct, notes_played, user_answer) values(?, ?, ?, ?, ?)",
		when.Unix(), sess.Difficulty, sess.Correct, played, answer)
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}

	_, err = s.db.Exec(
		"delete from sessions where id not in (select id from sessions order by id desc limit ?)",
		historyCap)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// Summary computes totals and per-difficulty accuracy over the stored
// history.
func (s *Store) Summary() (Summary, error) {
	sum := Summary{AccuracyByDifficulty: make(map[int]float64)}

	rows, err := s.db.Query(
		"select difficulty, count(*), sum(correct) from sessions group by difficulty")
	if err != nil {
		return sum, fmt.Errorf("load summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var difficulty, attempts, correct int
		if err := rows.Scan(&difficulty, &attempts, &correct); err != nil {
			return sum, err
		}
		sum.TotalAttempts += attempts
		sum.CorrectAnswers += correct
		if attempts > 0 {
			sum.AccuracyByDifficulty[difficulty] = 100 * float64(correct) / float64(attempts)
		}
	}
	return sum, rows.Err()
}

// History returns the most recent sessions, newest first.
func (s *Store) History(limit int) ([]Session, error) {
	if limit <= 0 || limit > historyCap {
		limit = historyCap
	}
	rows, err := s.db.Query(
		"select at, difficulty, correct, notes_played, user_answer from sessions order by id desc limit ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var (
			at             int64
			sess           Session
			played, answer []byte
		)
		if err := rows.Scan(&at, &sess.Difficulty, &sess.Correct, &played, &answer); err != nil {
			return nil, err
		}
		sess.When = time.Unix(at, 0)
		if err := json.Unmarshal(played, &sess.NotesPlayed); err != nil {
			continue // skip unreadable rows rather than failing the whole load
		}
		if err := json.Unmarshal(answer, &sess.UserAnswer); err != nil {
			continue
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}
