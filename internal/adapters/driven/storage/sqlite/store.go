package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lillianfidler/churchill-falls-assistant/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
)

// Store is a SQLite-based storage that hands out typed stores over one
// database connection.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database file at dbPath and applies
// pending migrations.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("database path is required")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// UsageStore returns the voice usage tracker. now selects the calendar
// month; nil means time.Now.
func (s *Store) UsageStore(now func() time.Time) *UsageStore {
	if now == nil {
		now = time.Now
	}
	return &UsageStore{db: s.db, now: now}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_voice_usage.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// apply executes one migration and records its version in a single transaction.
func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ==================== Usage Store ====================

const monthFormat = "2006-01"

// MonthUsage is the recorded voice usage of one calendar month.
type MonthUsage struct {
	Month      string
	Characters int
}

// UsageStore implements driven.UsageTracker with one row per UTC calendar
// month. A new month starts from zero without a reset.
type UsageStore struct {
	db  *sql.DB
	now func() time.Time
}

// Verify interface compliance.
var _ driven.UsageTracker = (*UsageStore)(nil)

func (u *UsageStore) month() string {
	return u.now().UTC().Format(monthFormat)
}

// Get returns the characters used in the current month.
func (u *UsageStore) Get(ctx context.Context) (int, error) {
	var used int
	err := u.db.QueryRowContext(ctx,
		"SELECT characters FROM voice_usage WHERE month = ?", u.month()).Scan(&used)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("querying voice usage: %w", err)
	}
	return used, nil
}

// Increment adds n characters to the current month and returns the new total.
func (u *UsageStore) Increment(ctx context.Context, n int) (int, error) {
	_, err := u.db.ExecContext(ctx, `
		INSERT INTO voice_usage (month, characters, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(month) DO UPDATE SET
			characters = characters + excluded.characters,
			updated_at = CURRENT_TIMESTAMP
	`, u.month(), n)
	if err != nil {
		return 0, fmt.Errorf("incrementing voice usage: %w", err)
	}
	return u.Get(ctx)
}

// Reset zeroes the current month's counter.
func (u *UsageStore) Reset(ctx context.Context) error {
	_, err := u.db.ExecContext(ctx, `
		INSERT INTO voice_usage (month, characters, updated_at)
		VALUES (?, 0, CURRENT_TIMESTAMP)
		ON CONFLICT(month) DO UPDATE SET characters = 0, updated_at = CURRENT_TIMESTAMP
	`, u.month())
	if err != nil {
		return fmt.Errorf("resetting voice usage: %w", err)
	}
	return nil
}

// History returns up to limit recorded months, newest first.
func (u *UsageStore) History(ctx context.Context, limit int) ([]MonthUsage, error) {
	if limit <= 0 {
		limit = 12
	}
	rows, err := u.db.QueryContext(ctx,
		"SELECT month, characters FROM voice_usage ORDER BY month DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("querying voice usage history: %w", err)
	}
	defer rows.Close()

	history := []MonthUsage{}
	for rows.Next() {
		var m MonthUsage
		if err := rows.Scan(&m.Month, &m.Characters); err != nil {
			return nil, fmt.Errorf("scanning voice usage: %w", err)
		}
		history = append(history, m)
	}
	return history, rows.Err()
}
