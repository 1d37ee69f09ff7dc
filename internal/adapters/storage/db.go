package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by the SQLite backend.
// *sql.DB, *sql.Conn and *sql.Tx satisfy it.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// OpenSQLite opens a SQLite database with WAL mode and a busy timeout.
// PRE: the modernc.org/sqlite driver is registered (blank import in main or tests)
// POST: returns a pinged connection pool
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would get its own empty in-memory database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}

// InitDB initializes the database schema.
// Relationships are by id only; the application, not the store, keeps them consistent.
// PRE: db is a valid database connection
// POST: All tables are created
func InitDB(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		birth_date TEXT,
		email TEXT,
		phone TEXT,
		level TEXT,
		age_group TEXT,
		notes TEXT,
		created_at TEXT,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS tournaments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		start_date TEXT,
		end_date TEXT,
		location TEXT,
		type TEXT,
		level TEXT,
		description TEXT,
		created_at TEXT
	);

	CREATE TABLE IF NOT EXISTS tournament_registrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tournament_id INTEGER NOT NULL,
		player_id INTEGER NOT NULL,
		registration_date TEXT
	);

	CREATE TABLE IF NOT EXISTS group_training_sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT,
		time TEXT,
		level TEXT,
		max_participants INTEGER,
		notes TEXT,
		created_at TEXT
	);

	CREATE TABLE IF NOT EXISTS training_plans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id INTEGER NOT NULL,
		start_date TEXT,
		end_date TEXT,
		focus_area TEXT,
		intensity INTEGER,
		technical_goal TEXT,
		fitness_goal TEXT,
		tactical_goal TEXT,
		notes TEXT,
		created_at TEXT
	);

	CREATE TABLE IF NOT EXISTS training_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		training_type TEXT NOT NULL,
		session_id INTEGER,
		training_plan_id INTEGER,
		report_date TEXT,
		performance_rating INTEGER,
		attendance TEXT,
		achievements TEXT,
		areas_for_improvement TEXT,
		coach_notes TEXT,
		created_at TEXT
	);

	CREATE TABLE IF NOT EXISTS player_pse_scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id INTEGER NOT NULL,
		report_id INTEGER NOT NULL,
		pse_score INTEGER NOT NULL,
		created_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_registrations_tournament ON tournament_registrations(tournament_id);
	CREATE INDEX IF NOT EXISTS idx_reports_session ON training_reports(session_id);
	CREATE INDEX IF NOT EXISTS idx_pse_scores_report ON player_pse_scores(report_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
