package diagnostics

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// StoreConfig contains configuration for the SQLite event store.
type StoreConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultStoreConfig returns the default store configuration.
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		Path:         "data/diagnostics.db",
		MaxOpenConns: 4,
		BusyTimeout:  5 * time.Second,
	}
}

// schema holds one row per detected signature occurrence. The table stays
// tiny: only recognized patterns are recorded, never every fault.
const schema = `
CREATE TABLE IF NOT EXISTS diagnostic_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	pattern     TEXT NOT NULL,
	message     TEXT NOT NULL,
	observed_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_diagnostic_events_pattern ON diagnostic_events(pattern);
CREATE INDEX IF NOT EXISTS idx_diagnostic_events_observed_at ON diagnostic_events(observed_at);
`

// Store persists diagnostic events to SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenStore opens (and if needed creates) the event store at the configured
// path.
func OpenStore(cfg *StoreConfig) (*Store, error) {
	if cfg == nil {
		cfg = DefaultStoreConfig()
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open diagnostics store %q: %w", cfg.Path, err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 4
	}
	db.SetMaxOpenConns(maxOpen)

	s := &Store{
		db:     db,
		logger: slog.Default().With("component", "diagnostics.store"),
	}

	if err := s.initialize(cfg); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("diagnostics store initialized", "path", cfg.Path)
	return s, nil
}

// initialize enables WAL mode, sets the busy timeout, and creates the schema.
func (s *Store) initialize(cfg *StoreConfig) error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL mode: %w", err)
	}

	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busy.Milliseconds())); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Record inserts one detected signature occurrence.
func (s *Store) Record(ctx context.Context, pattern, message string, observedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO diagnostic_events (pattern, message, observed_at) VALUES (?, ?, ?)`,
		pattern, message, observedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record diagnostic event: %w", err)
	}
	return nil
}

// CountsSince returns per-pattern occurrence counts for events observed at
// or after since.
func (s *Store) CountsSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pattern, COUNT(*) FROM diagnostic_events WHERE observed_at >= ? GROUP BY pattern`,
		since.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("query diagnostic counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var pattern string
		var n int64
		if err := rows.Scan(&pattern, &n); err != nil {
			return nil, fmt.Errorf("scan diagnostic count: %w", err)
		}
		counts[pattern] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diagnostic counts: %w", err)
	}
	return counts, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
