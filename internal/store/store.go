package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite handle and hands out repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and migrates the tables in schema.go.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withConnPragmas(dsn))
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, &StorageError{Op: "apply pragmas", Err: err}
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	ctx := context.Background()

	migrate, err := schema.NewMigrate(drv)
	if err != nil {
		drv.Close()
		return nil, &StorageError{Op: "auto-migrate", Err: err}
	}
	if err := migrate.Create(ctx, Tables...); err != nil {
		drv.Close()
		return nil, &StorageError{Op: "auto-migrate", Err: err}
	}

	seq, err := newSequenceCounter(ctx, drv)
	if err != nil {
		drv.Close()
		return nil, &StorageError{Op: "sequence", Err: err}
	}

	return &Store{db: db, drv: drv, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// DirectoryRepo returns the registered-user directory.
func (s *Store) DirectoryRepo() DirectoryRepo {
	return &directoryRepo{kv: s.kv()}
}

// SessionRepo returns the active-session pointer.
func (s *Store) SessionRepo() SessionRepo {
	return &sessionRepo{kv: s.kv()}
}

// ResultRepo returns the latest-profile record.
func (s *Store) ResultRepo() ResultRepo {
	return &resultRepo{kv: s.kv()}
}

// EventRepo returns the append-only event log.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq}
}

// Reset deletes every stored record: directory, session and result.
// The event log is kept.
func (s *Store) Reset(ctx context.Context) error {
	return s.kv().deleteAll(ctx)
}

func (s *Store) kv() *kvStore {
	return &kvStore{drv: s.drv}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// withConnPragmas adds per-connection pragmas to dsn so every pooled
// connection, not only the first, has foreign keys and a busy timeout.
func withConnPragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// DefaultDBPath resolves the database file path in priority order:
// 1. KARMALOOP_DB environment variable
// 2. $XDG_DATA_HOME/karmaloop/karmaloop.db
// 3. ~/.local/share/karmaloop/karmaloop.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("KARMALOOP_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "karmaloop", "karmaloop.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
