package main

import (
	"log/slog"

	"github.com/hayeah/goo"

	"github.com/hayeah/repopick"
	"github.com/hayeah/repopick/ignore"
	"github.com/hayeah/repopick/internal/clipboard"
	"github.com/hayeah/repopick/internal/metrics"
	"github.com/hayeah/repopick/listing"
	"github.com/hayeah/repopick/repomix"
	"github.com/hayeah/repopick/session"
)

func ProvideConfig(app *repopick.App) *repopick.Config { return app.Config }

func ProvideLogger(app *repopick.App) *slog.Logger { return app.Logger }

func ProvideHistory(app *repopick.App) *repopick.HistoryStore { return app.History }

func ProvideShutdown(app *repopick.App) *goo.ShutdownContext { return app.Shutdown }

// ProvideLister builds a lister that hides what repomix would ignore.
func ProvideLister(cfg *repopick.Config, logger *slog.Logger) *listing.Lister {
	return &listing.Lister{
		Logger: logger,
		Ignore: ignore.Options{
			Gitignore:     !cfg.NoGitignore,
			RepomixIgnore: true,
			Patterns:      cfg.Ignore,
		},
	}
}

func ProvideRunner(cfg *repopick.Config, logger *slog.Logger) repomix.Runner {
	return repomix.NewExecRunner(cfg.RepomixCommand, logger)
}

func ProvideFetcher(runner repomix.Runner, logger *slog.Logger) *repomix.DefaultsFetcher {
	return repomix.NewDefaultsFetcher(runner, logger)
}

func ProvideLoader(lister *listing.Lister, fetcher *repomix.DefaultsFetcher, logger *slog.Logger) *session.Loader {
	return session.NewLoader(lister, fetcher, logger)
}

// ProvideCounter falls back to the simple estimator when tiktoken is
// unavailable.
func ProvideCounter(cfg *repopick.Config, logger *slog.Logger) metrics.Counter {
	c, err := metrics.NewCounter(cfg.TokenEstimator)
	if err != nil {
		logger.Warn("falling back to simple token estimator", "error", err)
		return &metrics.SimpleCounter{}
	}
	return c
}

func ProvideClipboard() clipboard.Copier { return clipboard.System{} }
