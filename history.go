package repopick

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hayeah/goo"
	"github.com/jmoiron/sqlx"
)

// ErrHistoryDisabled is returned when reading history without a database.
var ErrHistoryDisabled = errors.New("run history is disabled (history_db is empty)")

// Run is one packaging run.
type Run struct {
	ID        int64  `db:"id"`
	Directory string `db:"directory"`
	Include   string `db:"include"`
	Style     string `db:"style"`
	Files     int    `db:"files"`
	Bytes     int    `db:"bytes"`
	Tokens    int    `db:"tokens"`
	// Destination is "clipboard", a file path, or empty for display only.
	Destination string    `db:"destination"`
	Error       string    `db:"error"`
	CreatedAt   time.Time `db:"created_at"`
}

// HistoryStore records packaging runs in sqlite.
type HistoryStore struct {
	DB       *sqlx.DB
	Migrator *goo.DBMigrator
	Logger   *slog.Logger
}

// ProvideHistoryStore creates a HistoryStore and migrates its schema. A nil
// db disables history and skips the migrations.
func ProvideHistoryStore(db *sqlx.DB, migrator *goo.DBMigrator, logger *slog.Logger) (*HistoryStore, error) {
	hs := &HistoryStore{DB: db, Migrator: migrator, Logger: logger}
	if db == nil {
		return hs, nil
	}
	if err := hs.Migrate(); err != nil {
		return nil, err
	}
	return hs, nil
}

// Migrate applies the pending schema migrations.
func (hs *HistoryStore) Migrate() error {
	if err := hs.Migrator.Up(historyMigrations); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

var historyMigrations = []goo.Migration{
	{
		Name: "create_runs_table",
		Up: `
			CREATE TABLE IF NOT EXISTS runs (
				id INTEGER PRIMARY KEY,
				directory TEXT NOT NULL,
				include TEXT NOT NULL,
				style TEXT NOT NULL,
				files INTEGER NOT NULL DEFAULT 0,
				bytes INTEGER NOT NULL DEFAULT 0,
				tokens INTEGER NOT NULL DEFAULT 0,
				destination TEXT NOT NULL DEFAULT '',
				error TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP NOT NULL
			);
		`,
	},
	{
		Name: "index_runs_directory",
		Up:   `CREATE INDEX IF NOT EXISTS runs_directory_created_at ON runs (directory, created_at);`,
	},
}

// Enabled reports whether runs are persisted.
func (hs *HistoryStore) Enabled() bool {
	return hs != nil && hs.DB != nil
}

// Record stores run and returns its ID. Without a database it does nothing.
func (hs *HistoryStore) Record(ctx context.Context, run Run) (int64, error) {
	if !hs.Enabled() {
		return 0, nil
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	// stored as text; one zone keeps ORDER BY created_at chronological
	run.CreatedAt = run.CreatedAt.UTC()

	result, err := hs.DB.NamedExecContext(ctx,
		`INSERT INTO runs (directory, include, style, files, bytes, tokens, destination, error, created_at)
		VALUES (:directory, :include, :style, :files, :bytes, :tokens, :destination, :error, :created_at)`,
		run,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	hs.Logger.Debug("recorded run", "id", id, "directory", run.Directory)
	return id, nil
}

// Recent returns up to limit runs, newest first. A non-empty dir restricts
// the result to that directory.
func (hs *HistoryStore) Recent(ctx context.Context, dir string, limit int) ([]Run, error) {
	if !hs.Enabled() {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	var err error
	if dir == "" {
		err = hs.DB.SelectContext(ctx, &runs,
			"SELECT * FROM runs ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	} else {
		err = hs.DB.SelectContext(ctx, &runs,
			"SELECT * FROM runs WHERE directory = ? ORDER BY created_at DESC, id DESC LIMIT ?", dir, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
