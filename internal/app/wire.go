//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package app

import (
	"context"

	"github.com/google/wire"
	"github.com/hordeloop/engine/internal/config"
	"github.com/hordeloop/engine/internal/scripting"
	"github.com/hordeloop/engine/internal/spawn"
	"github.com/hordeloop/engine/internal/system"
	"go.uber.org/zap"
)

var engineSet = wire.NewSet(
	ProvideBus,
	ProvideTimeScale,
	ProvideTemplates,
	ProvideState,
	ProvideRand,
	ProvidePools,
	wire.FieldsOf(new(*Pools), "Enemies", "Bullets"),
	ProvideScripts,
	wire.Bind(new(spawn.Difficulty), new(*scripting.Engine)),
	wire.Bind(new(system.IntervalCurve), new(*scripting.Engine)),
	ProvideSpawner,
	ProvideController,
	ProvideLedger,
	ProvideSystems,
	NewEngine,
)

// InitializeEngine builds the engine. The cleanup closes the Lua VM and the
// database pool; call it after the ledger writer has returned.
func InitializeEngine(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Engine, func(), error) {
	wire.Build(engineSet)
	return nil, nil, nil
}
