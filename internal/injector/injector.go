//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/starframe/starframe/internal/core/sim"
)

// ProvideWorld assembles a session world from its configuration and logger.
func ProvideWorld(cfg sim.Config, logger *zap.Logger) *sim.World {
	wire.Build(sim.NewWorld)
	return nil
}
