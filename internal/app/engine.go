package app

import (
	"time"

	"github.com/hordeloop/engine/internal/config"
	"github.com/hordeloop/engine/internal/core/event"
	"github.com/hordeloop/engine/internal/data"
	"github.com/hordeloop/engine/internal/spawn"
	"github.com/hordeloop/engine/internal/timescale"
	"github.com/hordeloop/engine/internal/world"
	"go.uber.org/zap"
)

// Engine is the assembled simulation. All methods run on the game loop
// goroutine except Ledger.Writer.Run.
type Engine struct {
	Config     *config.Config
	Templates  *data.TemplateTable
	Bus        *event.Bus
	TimeScale  *timescale.Registry
	State      *world.State
	Pools      *Pools
	Controller *spawn.Controller
	Ledger     *Ledger
	Systems    *Systems
	log        *zap.Logger
}

func NewEngine(
	cfg *config.Config,
	templates *data.TemplateTable,
	bus *event.Bus,
	scale *timescale.Registry,
	state *world.State,
	pools *Pools,
	controller *spawn.Controller,
	ledger *Ledger,
	systems *Systems,
	log *zap.Logger,
) *Engine {
	return &Engine{
		Config:     cfg,
		Templates:  templates,
		Bus:        bus,
		TimeScale:  scale,
		State:      state,
		Pools:      pools,
		Controller: controller,
		Ledger:     ledger,
		Systems:    systems,
		log:        log,
	}
}

// Start begins spawning.
func (e *Engine) Start() {
	e.Controller.Start()
}

// Tick runs one full tick of every phase.
func (e *Engine) Tick(dt time.Duration) {
	e.Systems.Runner.Tick(dt)
}

// Summary is a point-in-time view of the run for logs and tests.
type Summary struct {
	Ticks        uint64
	Elapsed      time.Duration
	Active       int
	Spawned      int
	Kills        int
	Experience   int
	Score        int
	TimeScale    float64
	EnemyPooled  int // instances owned by enemy pools
	BulletPooled int
	Fired        int
	Overruns     uint64 // ticks that took longer than the tick rate
}

func (e *Engine) Summary() Summary {
	s := Summary{
		Ticks:      e.Systems.Runner.Ticks(),
		Elapsed:    e.State.Clock.Elapsed(),
		Active:     e.Controller.Active(),
		Spawned:    e.Controller.Spawned(),
		Kills:      e.State.Tally.Kills,
		Experience: e.State.Tally.Experience,
		Score:      e.State.Tally.Score,
		TimeScale:  e.TimeScale.Scale(),
		Fired:      e.Systems.AutoFire.Fired(),
		Overruns:   e.Systems.Runner.Overruns(),
	}
	for _, id := range e.Pools.Enemies.Templates() {
		s.EnemyPooled += e.Pools.Enemies.Pool(id).Size()
	}
	for _, id := range e.Pools.Bullets.Templates() {
		s.BulletPooled += e.Pools.Bullets.Pool(id).Size()
	}
	return s
}

// Shutdown stops spawning, hands the last ledger rows to the writer and
// closes it, then tears the pools down. The writer goroutine returns once it
// has drained its queue.
func (e *Engine) Shutdown() {
	e.Controller.Stop()
	e.TimeScale.RestoreNow()
	if e.Systems.Persistence != nil {
		e.Systems.Persistence.Flush()
	}
	e.Ledger.Writer.Close()

	sum := e.Summary()
	e.log.Info("run finished",
		zap.Uint64("ticks", sum.Ticks),
		zap.Duration("elapsed", sum.Elapsed),
		zap.Int("spawned", sum.Spawned),
		zap.Int("kills", sum.Kills),
		zap.Int("score", sum.Score),
		zap.Uint64("overruns", sum.Overruns),
		zap.String("run_id", e.Ledger.RunID.String()))

	e.Pools.Enemies.Teardown(true)
	e.Pools.Bullets.Teardown(true)
}
