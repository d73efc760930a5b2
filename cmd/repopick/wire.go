//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/hayeah/repopick"
)

func BuildPipeline(app *repopick.App) (*Pipeline, error) {
	wire.Build(
		ProvideConfig,
		ProvideLogger,
		ProvideHistory,
		ProvideLister,
		ProvideRunner,
		ProvideFetcher,
		ProvideLoader,
		ProvideCounter,
		ProvideClipboard,
		ProvideShutdown,
		wire.Struct(new(Pipeline), "Config", "Logger", "History", "Runner", "Loader", "Counter", "Clipboard", "Shutdown"),
	)
	return nil, nil
}
