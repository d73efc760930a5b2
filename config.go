package repopick

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hayeah/repopick/repomix"
)

// ConfigFileName is the per-directory config file.
const ConfigFileName = ".repopick.toml"

// Config is read from the user config file, then the picked directory's
// .repopick.toml, then command line flags. Later sources override earlier
// ones field by field.
type Config struct {
	Style            string   `toml:"style"`
	RemoveComments   bool     `toml:"remove_comments"`
	RemoveEmptyLines bool     `toml:"remove_empty_lines"`
	Copy             bool     `toml:"copy"`
	DefaultFilesOnly bool     `toml:"default_files_only"`
	Ignore           []string `toml:"ignore"`
	NoGitignore      bool     `toml:"no_gitignore"`
	RepomixCommand   string   `toml:"repomix_command"`
	TokenEstimator   string   `toml:"token_estimator"`
	HistoryDB        string   `toml:"history_db"`
	LogFile          string   `toml:"log_file"`
	LogLevel         string   `toml:"log_level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Style:            string(repomix.StylePlain),
		DefaultFilesOnly: true,
		RepomixCommand:   "repomix",
		TokenEstimator:   "simple",
		HistoryDB:        defaultHistoryDB(),
		LogLevel:         "warn",
	}
}

// UserConfigPath is $XDG_CONFIG_HOME/repopick/config.toml, falling back to
// the OS user config directory.
func UserConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "repopick", "config.toml")
}

func defaultHistoryDB() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "repopick", "history.db")
}

// LoadConfig applies each existing file in order on top of the defaults.
// Missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := cfg.merge(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(path string) error {
	md, err := toml.DecodeFile(path, c)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys in config %s: %v", path, undecoded)
	}
	return nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if _, err := repomix.ParseStyle(c.Style); err != nil {
		return err
	}
	switch c.TokenEstimator {
	case "", "simple", "tiktoken":
	default:
		return fmt.Errorf("unknown token_estimator %q (want simple or tiktoken)", c.TokenEstimator)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// RepomixOptions returns the tool options implied by the config for dir.
func (c *Config) RepomixOptions(dir string) repomix.Options {
	style, _ := repomix.ParseStyle(c.Style)
	opts := repomix.Options{
		Directories:      []string{dir},
		NoGitignore:      c.NoGitignore,
		Style:            style,
		RemoveComments:   c.RemoveComments,
		RemoveEmptyLines: c.RemoveEmptyLines,
	}
	if len(c.Ignore) > 0 {
		opts.Ignore = strings.Join(c.Ignore, ",")
	}
	return opts
}
