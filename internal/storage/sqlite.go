// Package storage provides SQLite-based persistence for experiment runs and
// interactive play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunMetric is one estimated probability stored with a run.
type RunMetric struct {
	Name     string
	Value    float64
	Expected float64
}

// RunRecord is the summary of one experiment run.
type RunRecord struct {
	ID         string
	Experiment string
	Strategy   string // Empty for experiments without strategies
	Doors      int
	Trials     int
	Wins       int
	Seed       int64
	Metrics    []RunMetric
	CreatedAt  time.Time
}

// SuccessRate returns wins per trial, 0 for empty runs.
func (r RunRecord) SuccessRate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Trials)
}

// PlaySession is the tally of one interactive session.
type PlaySession struct {
	ID        int64
	Doors     int
	Rounds    int
	Wins      int
	Switches  int
	CreatedAt time.Time
}

// StrategyStats aggregates every stored Monty Hall run for one strategy and
// door count.
type StrategyStats struct {
	Strategy   string
	Doors      int
	Runs       int
	Rounds     int
	Wins       int
	LastPlayed time.Time
}

// SuccessRate returns the pooled success rate.
func (s StrategyStats) SuccessRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

const timeLayout = "2006-01-02 15:04:05"

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
			id TEXT PRIMARY KEY,
			experiment TEXT NOT NULL,
			strategy TEXT NOT NULL DEFAULT '',
			doors INTEGER NOT NULL DEFAULT 0,
			trials INTEGER NOT NULL,
			wins INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_experiment ON runs(experiment, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_strategy ON runs(strategy, doors);

		CREATE TABLE IF NOT EXISTS run_metrics (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			value REAL NOT NULL,
			expected REAL NOT NULL,
			PRIMARY KEY (run_id, position)
		);

		CREATE TABLE IF NOT EXISTS play_sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			doors INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			wins INTEGER NOT NULL,
			switches INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// SaveRun records a run and its metrics. A fresh UUID is assigned when the
// record has no ID. Returns the run ID.
func (s *Store) SaveRun(run RunRecord) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, experiment, strategy, doors, trials, wins, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Experiment, run.Strategy, run.Doors, run.Trials, run.Wins, run.Seed,
	); err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	for i, m := range run.Metrics {
		if _, err := tx.Exec(
			`INSERT INTO run_metrics (run_id, position, name, value, expected) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, m.Name, m.Value, m.Expected,
		); err != nil {
			return "", fmt.Errorf("storage: cannot save run metric %q: %w", m.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return run.ID, nil
}

// RecentRuns retrieves the most recent runs of any experiment.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, experiment, strategy, doors, trials, wins, seed, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
}

// RunsByExperiment retrieves the most recent runs of one experiment.
func (s *Store) RunsByExperiment(experiment string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, experiment, strategy, doors, trials, wins, seed, created_at
		 FROM runs
		 WHERE experiment = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		experiment, limit,
	)
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	runs, err := s.queryRuns(
		`SELECT id, experiment, strategy, doors, trials, wins, seed, created_at
		 FROM runs WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Experiment, &r.Strategy, &r.Doors, &r.Trials, &r.Wins, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	for i := range runs {
		metrics, err := s.runMetrics(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Metrics = metrics
	}
	return runs, nil
}

func (s *Store) runMetrics(runID string) ([]RunMetric, error) {
	rows, err := s.db.Query(
		`SELECT name, value, expected FROM run_metrics WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run metrics: %w", err)
	}
	defer rows.Close()

	var metrics []RunMetric
	for rows.Next() {
		var m RunMetric
		if err := rows.Scan(&m.Name, &m.Value, &m.Expected); err != nil {
			return nil, fmt.Errorf("storage: cannot scan metric row: %w", err)
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return metrics, nil
}

// StrategyStats pools all stored runs of an experiment by strategy and door
// count. Runs without a strategy are skipped.
func (s *Store) StrategyStats(experiment string) ([]StrategyStats, error) {
	rows, err := s.db.Query(
		`SELECT strategy, doors, COUNT(*), SUM(trials), SUM(wins), MAX(created_at)
		 FROM runs
		 WHERE experiment = ? AND strategy != ''
		 GROUP BY strategy, doors
		 ORDER BY strategy, doors`,
		experiment,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get strategy stats: %w", err)
	}
	defer rows.Close()

	var stats []StrategyStats
	for rows.Next() {
		var st StrategyStats
		var lastPlayed any
		if err := rows.Scan(&st.Strategy, &st.Doors, &st.Runs, &st.Rounds, &st.Wins, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearRuns deletes all runs of the given experiment.
func (s *Store) ClearRuns(experiment string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM run_metrics WHERE run_id IN (SELECT id FROM runs WHERE experiment = ?)`,
		experiment,
	); err != nil {
		return fmt.Errorf("storage: cannot clear run metrics: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE experiment = ?", experiment); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// SavePlaySession records the totals of an interactive session.
// Returns the ID of the inserted record.
func (s *Store) SavePlaySession(p PlaySession) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO play_sessions (doors, rounds, wins, switches) VALUES (?, ?, ?, ?)",
		p.Doors, p.Rounds, p.Wins, p.Switches,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save play session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentPlaySessions retrieves the most recent interactive sessions.
func (s *Store) RecentPlaySessions(limit int) ([]PlaySession, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, doors, rounds, wins, switches, created_at
		 FROM play_sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query play sessions: %w", err)
	}
	defer rows.Close()

	var sessions []PlaySession
	for rows.Next() {
		var p PlaySession
		var createdAt any
		if err := rows.Scan(&p.ID, &p.Doors, &p.Rounds, &p.Wins, &p.Switches, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sessions, nil
}

// parseTime handles both time.Time and string DATETIME values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
