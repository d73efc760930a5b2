// Package repopick wires the shared application services: configuration,
// logging and the run history database.
package repopick

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-cz/devslog"
	"github.com/google/wire"
	"github.com/hayeah/goo"
	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	_ "github.com/mattn/go-sqlite3" // Import SQLite driver
)

// Flags are the global command line settings that feed the providers.
type Flags struct {
	// ConfigPath replaces the user config file when set.
	ConfigPath string
	// Dir is the directory being picked; its .repopick.toml is applied.
	Dir     string
	LogFile string
	Verbose bool
	Repomix string
	// Interactive is set when a full screen UI owns the terminal.
	Interactive bool
}

// App holds the services shared by every subcommand.
type App struct {
	Flags    Flags
	Config   *Config
	Logger   *slog.Logger
	DB       *sqlx.DB
	History  *HistoryStore
	Shutdown *goo.ShutdownContext
}

// ProvideConfig loads the config files named by flags and applies flag
// overrides.
func ProvideConfig(flags Flags) (*Config, error) {
	userPath := flags.ConfigPath
	if userPath == "" {
		userPath = UserConfigPath()
	}
	var dirPath string
	if flags.Dir != "" {
		dirPath = filepath.Join(flags.Dir, ConfigFileName)
	}

	cfg, err := LoadConfig(userPath, dirPath)
	if err != nil {
		return nil, err
	}

	if flags.LogFile != "" {
		cfg.LogFile = flags.LogFile
	}
	if flags.Repomix != "" {
		cfg.RepomixCommand = flags.Repomix
	}
	if flags.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// ProvideLogger picks a handler: JSON lines when a log file is configured,
// nothing when an interactive UI owns the terminal, devslog on a terminal
// and JSON on a plain stderr.
func ProvideLogger(cfg *Config, flags Flags) (*slog.Logger, func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return slog.New(slog.NewJSONHandler(f, opts)), func() { f.Close() }, nil
	}

	if flags.Interactive {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	return slog.New(newStderrHandler(os.Stderr, opts)), func() {}, nil
}

func newStderrHandler(w *os.File, opts *slog.HandlerOptions) slog.Handler {
	if term.IsTerminal(int(w.Fd())) {
		return devslog.NewHandler(w, &devslog.Options{HandlerOptions: opts})
	}
	return slog.NewJSONHandler(io.Writer(w), opts)
}

// ProvideDB opens the history database. It returns a nil DB when history is
// disabled by an empty history_db.
func ProvideDB(cfg *Config, logger *slog.Logger) (*sqlx.DB, func(), error) {
	if cfg.HistoryDB == "" {
		logger.Debug("run history disabled")
		return nil, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.HistoryDB), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := OpenDB(cfg.HistoryDB)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

// OpenDB opens a sqlite database at path.
func OpenDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	// sqlite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return db, nil
}

// Wires collects the providers for App.
var Wires = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideDB,
	goo.ProvideDBMigrator,
	ProvideHistoryStore,
	goo.ProvideShutdownContext,
	wire.Struct(new(App), "*"),
)
