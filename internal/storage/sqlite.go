// Package storage provides SQLite-based run history for gotchi: one row per
// run with its outcome, and one row per auto-player turn.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one pet's life, from start to its final status.
type Run struct {
	ID         int64
	Mode       string // play, sim or auto
	Seed       int64
	Status     string // pet.Status.String(); "ongoing" until finished
	Ticks      int64
	Hunger     float64
	Happiness  float64
	Energy     float64
	Friendship float64
	AwayUsed   int
	Summary    string
	StartedAt  time.Time
	EndedAt    time.Time // zero while the run is open
}

// Outcome is the final state recorded by FinishRun.
type Outcome struct {
	Status     string
	Ticks      int64
	Hunger     float64
	Happiness  float64
	Energy     float64
	Friendship float64
	AwayUsed   int
}

// Turn is one auto-player decision and the stats it was taken against.
type Turn struct {
	ID        int64
	RunID     int64
	Command   string
	Reply     string // raw model reply
	Hunger    float64
	Happiness float64
	Energy    float64
	CreatedAt time.Time
}

// Total is the sum of the three primary stats.
func (t Turn) Total() float64 {
	return t.Hunger + t.Happiness + t.Energy
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'ongoing',
			ticks INTEGER NOT NULL DEFAULT 0,
			hunger REAL NOT NULL DEFAULT 0,
			happiness REAL NOT NULL DEFAULT 0,
			energy REAL NOT NULL DEFAULT 0,
			friendship REAL NOT NULL DEFAULT 0,
			away_used INTEGER NOT NULL DEFAULT 0,
			summary TEXT NOT NULL DEFAULT '',
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);

		CREATE TABLE IF NOT EXISTS turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			command TEXT NOT NULL,
			reply TEXT NOT NULL DEFAULT '',
			hunger REAL NOT NULL,
			happiness REAL NOT NULL,
			energy REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_turns_run_id ON turns(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartRun opens a run row and returns its ID.
func (s *Store) StartRun(mode string, seed int64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (mode, seed) VALUES (?, ?)",
		mode, seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot start run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// FinishRun records the outcome of run id and stamps its end time.
func (s *Store) FinishRun(id int64, o Outcome) error {
	_, err := s.db.Exec(
		`UPDATE runs
		 SET status = ?, ticks = ?, hunger = ?, happiness = ?, energy = ?,
		     friendship = ?, away_used = ?, ended_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		o.Status, o.Ticks, o.Hunger, o.Happiness, o.Energy, o.Friendship, o.AwayUsed, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run %d: %w", id, err)
	}
	return nil
}

// SetSummary stores the retrospective written for run id.
func (s *Store) SetSummary(id int64, summary string) error {
	_, err := s.db.Exec("UPDATE runs SET summary = ? WHERE id = ?", summary, id)
	if err != nil {
		return fmt.Errorf("storage: cannot save summary for run %d: %w", id, err)
	}
	return nil
}

const runColumns = `id, mode, seed, status, ticks, hunger, happiness, energy,
	friendship, away_used, summary, started_at, ended_at`

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunByID retrieves a single run. It returns nil if no such run exists.
func (s *Store) RunByID(id int64) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var startedAt, endedAt any
	err := sc.Scan(
		&r.ID, &r.Mode, &r.Seed, &r.Status, &r.Ticks,
		&r.Hunger, &r.Happiness, &r.Energy, &r.Friendship,
		&r.AwayUsed, &r.Summary, &startedAt, &endedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan run: %w", err)
	}
	r.StartedAt = parseTime(startedAt)
	r.EndedAt = parseTime(endedAt)
	return r, nil
}

// SaveTurn records one auto-player turn. Returns the ID of the inserted record.
func (s *Store) SaveTurn(t Turn) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO turns (run_id, command, reply, hunger, happiness, energy)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.RunID, t.Command, t.Reply, t.Hunger, t.Happiness, t.Energy,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save turn: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Turns retrieves every turn of a run in the order they were taken.
func (s *Store) Turns(runID int64) ([]Turn, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, command, reply, hunger, happiness, energy, created_at
		 FROM turns
		 WHERE run_id = ?
		 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var createdAt any
		if err := rows.Scan(&t.ID, &t.RunID, &t.Command, &t.Reply, &t.Hunger, &t.Happiness, &t.Energy, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		t.CreatedAt = parseTime(createdAt)
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return turns, nil
}

// RunStats contains aggregated statistics over finished runs.
type RunStats struct {
	Runs         int
	LongestTicks int64
	AvgTicks     float64
	ByStatus     map[string]int
}

// Stats aggregates every finished run.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{ByStatus: make(map[string]int)}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(ticks), 0), COALESCE(AVG(ticks), 0)
		 FROM runs WHERE ended_at IS NOT NULL`,
	).Scan(&stats.Runs, &stats.LongestTicks, &stats.AvgTicks)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT status, COUNT(*) FROM runs WHERE ended_at IS NOT NULL GROUP BY status`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats.ByStatus[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
