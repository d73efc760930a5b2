//go:build wireinject

package repopick

import (
	"github.com/google/wire"
)

// InitApp builds the shared services for flags.
func InitApp(flags Flags) (*App, func(), error) {
	panic(wire.Build(Wires))
}
