// Package app assembles the engine from configuration. Construction is
// explicit: every pool, registry and controller is built here and injected.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/hordeloop/engine/internal/config"
	"github.com/hordeloop/engine/internal/core/errs"
	"github.com/hordeloop/engine/internal/core/event"
	coresys "github.com/hordeloop/engine/internal/core/system"
	"github.com/hordeloop/engine/internal/data"
	"github.com/hordeloop/engine/internal/persist"
	"github.com/hordeloop/engine/internal/pool"
	"github.com/hordeloop/engine/internal/scripting"
	"github.com/hordeloop/engine/internal/spawn"
	"github.com/hordeloop/engine/internal/system"
	"github.com/hordeloop/engine/internal/timescale"
	"github.com/hordeloop/engine/internal/world"
	"go.uber.org/zap"
)

// Pools holds the two template registries. Enemies and bullets are pooled
// separately because they are different instance types.
type Pools struct {
	Enemies *pool.Registry[string, *world.Enemy]
	Bullets *pool.Registry[string, *world.Bullet]
}

// Ledger is the death ledger: rows are recorded on the game loop and written
// by Writer on its own goroutine. With the database disabled the writer
// discards what it receives.
type Ledger struct {
	RunID    uuid.UUID
	Recorder *persist.Recorder
	Writer   *persist.Writer
	Enabled  bool
}

func ProvideBus() *event.Bus {
	return event.NewBus()
}

// ProvideTimeScale builds the time-scale registry and republishes every scale
// change on the bus.
func ProvideTimeScale(bus *event.Bus, log *zap.Logger) *timescale.Registry {
	r := timescale.NewRegistry(log)
	r.OnChange(func(scale float64) {
		event.Emit(bus, event.TimeScaleChanged{Scale: scale})
	})
	return r
}

func ProvideTemplates(cfg *config.Config) (*data.TemplateTable, error) {
	t, err := data.LoadTemplateTable(cfg.Data.TemplateList)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return t, nil
}

func ProvideState(cfg *config.Config) *world.State {
	return world.NewState(world.NewClock(cfg.Engine.Minute, cfg.Engine.ClearTime))
}

func ProvideRand(cfg *config.Config) *rand.Rand {
	return rand.New(rand.NewSource(cfg.Engine.RandSeed()))
}

// ProvidePools pre-warms one pool per pool_list entry. A duplicate entry is
// reported and skipped; anything else aborts startup.
func ProvidePools(cfg *config.Config, templates *data.TemplateTable, state *world.State, log *zap.Logger) (*Pools, error) {
	entries, err := data.LoadPoolList(cfg.Data.PoolList)
	if err != nil {
		return nil, fmt.Errorf("load pools: %w", err)
	}
	p := &Pools{
		Enemies: pool.NewRegistry[string, *world.Enemy](log),
		Bullets: pool.NewRegistry[string, *world.Bullet](log),
	}
	for _, e := range entries {
		tmpl := templates.Get(e.Template)
		if tmpl == nil {
			return nil, fmt.Errorf("pool_list: %w: unknown template %q", errs.ErrConfig, e.Template)
		}
		switch tmpl.Kind {
		case data.KindEnemy:
			factory, ferr := state.EnemyFactory(tmpl, cfg.Lifecycle.DeathDelay)
			if ferr != nil {
				return nil, fmt.Errorf("pool_list %s: %w", e.Template, ferr)
			}
			err = p.Enemies.RegisterPool(e.Template, factory, e.InitialPoolSize)
		case data.KindBullet:
			err = p.Bullets.RegisterPool(e.Template, state.BulletFactory(tmpl), e.InitialPoolSize)
		}
		if errors.Is(err, pool.ErrDuplicateTemplate) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("pool_list: %w", err)
		}
	}
	return p, nil
}

func ProvideScripts(cfg *config.Config, log *zap.Logger) (*scripting.Engine, func(), error) {
	e, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return nil, nil, fmt.Errorf("init scripting: %w", err)
	}
	return e, e.Close, nil
}

func ProvideSpawner(bullets *pool.Registry[string, *world.Bullet], state *world.State, log *zap.Logger) *world.BulletSpawner {
	return world.NewBulletSpawner(bullets, state, log)
}

func ProvideController(
	cfg *config.Config,
	templates *data.TemplateTable,
	enemies *pool.Registry[string, *world.Enemy],
	scale *timescale.Registry,
	state *world.State,
	bus *event.Bus,
	difficulty spawn.Difficulty,
	rng *rand.Rand,
	log *zap.Logger,
) (*spawn.Controller, error) {
	entries, err := data.LoadSpawnList(cfg.Data.SpawnList)
	if err != nil {
		return nil, fmt.Errorf("load spawns: %w", err)
	}
	c, err := spawn.NewController(spawn.Config{
		Interval:  cfg.Spawn.Interval,
		MaxActive: cfg.Spawn.MaxActive,
		Origin:    world.V(cfg.Spawn.SpawnX, cfg.Spawn.SpawnY),
		Scatter:   cfg.Spawn.Scatter,
		Target:    world.V(cfg.Spawn.TargetX, cfg.Spawn.TargetY),
		Immediate: cfg.Spawn.SpawnOnStart,
	}, entries, spawn.Deps{
		Templates:  templates,
		Enemies:    enemies,
		TimeScale:  scale,
		State:      state,
		Bus:        bus,
		Difficulty: difficulty,
		Rand:       rng,
		Log:        log.Named("spawn"),
	})
	if err != nil {
		return nil, fmt.Errorf("spawn controller: %w", err)
	}
	return c, nil
}

type discardSink struct{}

func (discardSink) InsertDeaths(context.Context, []persist.DeathRow) error { return nil }

// ProvideLedger connects to Postgres and migrates the schema when the ledger
// is enabled.
func ProvideLedger(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Ledger, func(), error) {
	runID := uuid.New()
	l := &Ledger{RunID: runID, Recorder: persist.NewRecorder(runID)}
	if !cfg.Database.Enabled {
		l.Writer = persist.NewWriter(discardSink{}, 1, log)
		return l, func() {}, nil
	}

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, nil, fmt.Errorf("init database: %w", err)
	}
	if _, err := persist.RunMigrations(ctx, db.Pool, log); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	l.Writer = persist.NewWriter(persist.NewDeathRepo(db), cfg.Database.QueueSize, log.Named("ledger"))
	l.Enabled = true
	return l, db.Close, nil
}

// Systems is the phase runner plus handles to systems the engine reports on.
type Systems struct {
	Runner      *coresys.Runner
	Lifecycle   *system.LifecycleSystem
	AutoFire    *system.AutoFireSystem
	Persistence *system.PersistenceSystem // nil when the ledger is disabled
}

// ProvideSystems registers every system in phase order.
func ProvideSystems(
	cfg *config.Config,
	bus *event.Bus,
	scale *timescale.Registry,
	state *world.State,
	spawner *world.BulletSpawner,
	controller *spawn.Controller,
	curve system.IntervalCurve,
	ledger *Ledger,
	log *zap.Logger,
) *Systems {
	target := world.V(cfg.Spawn.TargetX, cfg.Spawn.TargetY)
	sys := &Systems{
		Lifecycle: system.NewLifecycleSystem(state),
		AutoFire: system.NewAutoFireSystem(state, spawner, target,
			cfg.Combat.BulletTemplate, cfg.Combat.BulletDamage, cfg.Combat.FireInterval, log),
	}

	runner := coresys.NewRunner()
	runner.SetBudget(cfg.Engine.TickRate)
	sys.Runner = runner
	runner.Register(system.NewEventSystem(bus))
	runner.Register(system.NewTimeScaleSystem(scale, bus, cfg.TimeScale, log))
	runner.Register(system.NewClockSystem(state.Clock, scale, bus))
	runner.Register(system.NewMovementSystem(state))
	runner.Register(system.NewBulletSystem(state, spawner, bus))
	runner.Register(sys.AutoFire)
	runner.Register(sys.Lifecycle)
	runner.Register(system.NewSpawnSystem(controller, curve, bus, log.Named("spawn")))
	if ledger.Enabled {
		sys.Persistence = system.NewPersistenceSystem(ledger.Recorder, ledger.Writer, bus, log, cfg.Database.FlushInterval)
		runner.Register(sys.Persistence)
	}
	runner.Register(system.NewCleanupSystem(state))

	system.TrackScore(bus, state)
	event.Subscribe(bus, func(ev event.TimeScaleChanged) {
		log.Debug("time scale changed", zap.Float64("scale", ev.Scale))
	})
	return sys
}
