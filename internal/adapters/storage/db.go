package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"
)

// Pragmas appended to every file-backed SQLite DSN.
const sqlitePragmas = "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"

// OpenSQLite opens a SQLite database with WAL, busy timeout and foreign keys enabled.
// ":memory:" is accepted for tests and demos; it is pinned to one connection so every
// query sees the same database.
// PRE: path is non-empty
// POST: Returns a pinged connection pool
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if strings.Contains(path, "?") {
		dsn += "&" + sqlitePragmas
	} else {
		dsn += "?" + sqlitePragmas
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}
	return db, nil
}

type migration struct {
	version int
	name    string
	sql     string
}

// migrations are applied in order; each runs once and is recorded in schema_version.
var migrations = []migration{
	{1, "core tables", `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		login_id TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		provider TEXT NOT NULL DEFAULT 'local',
		provider_user_id TEXT NOT NULL DEFAULT '',
		preferred_language TEXT NOT NULL DEFAULT 'KR',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS hospital (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		intro TEXT NOT NULL DEFAULT '',
		departments TEXT NOT NULL DEFAULT '',
		rating REAL NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		opening_hours TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS treatment (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		hospital_id INTEGER NOT NULL DEFAULT 0,
		hospital_name TEXT NOT NULL DEFAULT '',
		category_large TEXT NOT NULL DEFAULT '',
		category_mid TEXT NOT NULL DEFAULT '',
		category_small TEXT NOT NULL DEFAULT '',
		hashtags TEXT NOT NULL DEFAULT '',
		selling_price INTEGER NOT NULL DEFAULT 0,
		original_price INTEGER NOT NULL DEFAULT 0,
		dis_rate INTEGER NOT NULL DEFAULT 0,
		rating REAL NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		popularity_count INTEGER NOT NULL DEFAULT 0,
		thumbnail_url TEXT NOT NULL DEFAULT '',
		platform TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS favorite (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		target_id TEXT NOT NULL,
		title TEXT NOT NULL,
		clinic TEXT NOT NULL DEFAULT '',
		price INTEGER NOT NULL DEFAULT 0,
		rating REAL NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		address TEXT NOT NULL DEFAULT '',
		departments TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE (account_id, kind, target_id),
		FOREIGN KEY (account_id) REFERENCES account(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS procedure_review (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		category TEXT NOT NULL,
		procedure_name TEXT NOT NULL,
		hospital_name TEXT NOT NULL DEFAULT '',
		cost INTEGER NOT NULL,
		procedure_rating INTEGER NOT NULL,
		hospital_rating INTEGER NOT NULL,
		gender TEXT NOT NULL DEFAULT '',
		age_group TEXT NOT NULL DEFAULT '',
		surgery_date TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		images TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS hospital_review (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		hospital_name TEXT NOT NULL,
		category_large TEXT NOT NULL,
		procedure_name TEXT NOT NULL DEFAULT '',
		visit_date TEXT NOT NULL DEFAULT '',
		overall_satisfaction INTEGER NOT NULL,
		hospital_kindness INTEGER NOT NULL,
		has_translation INTEGER NOT NULL DEFAULT 0,
		translation_satisfaction INTEGER NOT NULL DEFAULT 0,
		content TEXT NOT NULL,
		images TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS travel_period (
		account_id TEXT PRIMARY KEY,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS schedule_entry (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		treatment_id INTEGER NOT NULL DEFAULT 0,
		treatment_name TEXT NOT NULL DEFAULT '',
		hospital_name TEXT NOT NULL DEFAULT '',
		entry_date TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		external_id TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT ''
	);
	`},
	{2, "consultation inquiries", `
	CREATE TABLE IF NOT EXISTS inquiry (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		hospital_id INTEGER NOT NULL,
		hospital_name TEXT NOT NULL DEFAULT '',
		treatment_id INTEGER NOT NULL DEFAULT 0,
		channel TEXT NOT NULL,
		contact TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id) ON DELETE CASCADE
	);
	`},
	{3, "lookup indexes", `
	CREATE INDEX IF NOT EXISTS idx_treatment_hospital ON treatment(hospital_id);
	CREATE INDEX IF NOT EXISTS idx_treatment_category ON treatment(category_large, category_mid);
	CREATE INDEX IF NOT EXISTS idx_favorite_account ON favorite(account_id, created_at);
	CREATE INDEX IF NOT EXISTS idx_procedure_review_category ON procedure_review(category, created_at);
	CREATE INDEX IF NOT EXISTS idx_hospital_review_hospital ON hospital_review(hospital_name, created_at);
	CREATE INDEX IF NOT EXISTS idx_schedule_entry_account ON schedule_entry(account_id, entry_date);
	CREATE INDEX IF NOT EXISTS idx_outbox_status ON outbox(status, created_at);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_account_provider ON account(provider, provider_user_id)
		WHERE provider_user_id != '';
	`},
}

// LatestSchemaVersion is the version MigrateDB brings a database to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// MigrateDB applies every pending migration inside its own transaction.
// PRE: db is a valid database connection
// POST: schema_version holds LatestSchemaVersion(); re-running is a no-op
func MigrateDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
	)`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	current, err := SchemaVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version, name) VALUES (?, ?)`, m.version, m.name); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.version, err)
		}
		slog.Info("migration_applied", "version", m.version, "name", m.name)
	}
	return nil
}

// SchemaVersion returns the highest applied migration, or 0 for a fresh database.
func SchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v sql.NullInt64
	if err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(v.Int64), nil
}
