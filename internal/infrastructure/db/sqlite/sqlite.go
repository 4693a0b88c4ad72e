// Package sqlite implements persistence on an embedded SQLite database using
// the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gestorfincas/gestor-fincas-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to open the database.
type Config struct {
	Path    string
	Timeout time.Duration
}

// Store wraps the SQLite handle. It owns schema creation and first-run
// seeding; repositories are thin views over it.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at cfg.Path, applies the
// schema, and seeds the default rows. A default timeout is applied when none
// is provided.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// A single connection serializes writers (SQLite allows only one
	// anyway) and keeps :memory: databases coherent across queries.
	db.SetMaxOpenConns(1)

	openCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(openCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(openCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.seed(openCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// DB exposes the underlying handle for repositories and health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			username   TEXT UNIQUE NOT NULL,
			password   TEXT NOT NULL,
			role       TEXT NOT NULL DEFAULT 'Resident',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS test_table (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			message    TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite schema: %w", err)
		}
	}
	return nil
}

// seed inserts the default administrator account and the smoke-test marker
// row, each only when its table is empty. The password is stored as plain
// text, matching how every other account in this system is stored.
func (s *Store) seed(ctx context.Context) error {
	now := time.Now().UTC().Unix()

	var users int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		return fmt.Errorf("sqlite seed: %w", err)
	}
	if users == 0 {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO users (username, password, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			"admin", "admin123", domain.RoleAdministrator, now, now,
		)
		if err != nil {
			return fmt.Errorf("sqlite seed admin: %w", err)
		}
	}

	var messages int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM test_table`).Scan(&messages); err != nil {
		return fmt.Errorf("sqlite seed: %w", err)
	}
	if messages == 0 {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO test_table (message, created_at) VALUES (?, ?)`,
			"Database initialized successfully", now,
		)
		if err != nil {
			return fmt.Errorf("sqlite seed test_table: %w", err)
		}
	}

	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
