// Package spawn keeps a weighted-random enemy population topped up from the
// pools.
package spawn

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/hordeloop/engine/internal/core/errs"
	"github.com/hordeloop/engine/internal/core/event"
	"github.com/hordeloop/engine/internal/data"
	"github.com/hordeloop/engine/internal/pool"
	"github.com/hordeloop/engine/internal/scripting"
	"github.com/hordeloop/engine/internal/timescale"
	"github.com/hordeloop/engine/internal/world"
	"go.uber.org/zap"
)

// MinInterval is the floor SetInterval applies.
const MinInterval = 100 * time.Millisecond

// Difficulty scales spawn stats over the run. *scripting.Engine implements it.
type Difficulty interface {
	CalcSpawnStats(ctx scripting.SpawnContext) scripting.SpawnStats
}

// Config drives a Controller.
type Config struct {
	Interval  time.Duration
	MaxActive int
	Origin    world.Vec2
	Scatter   float64 // spawn radius around Origin
	Target    world.Vec2
	Immediate bool // first spawn on the first tick after Start
}

type activeEnemy struct {
	entry    data.SpawnEntry
	stats    data.Stats
	observer world.ObserverID
}

// Controller spawns enemies at a fixed interval up to a population cap and
// sends them back to their pools when their death sequence completes.
type Controller struct {
	cfg       Config
	table     *Table[data.SpawnEntry]
	templates *data.TemplateTable

	enemies    *pool.Registry[string, *world.Enemy]
	timeScale  *timescale.Registry
	state      *world.State
	bus        *event.Bus
	difficulty Difficulty
	rng        *rand.Rand
	log        *zap.Logger

	running bool
	timer   time.Duration
	active  map[*world.Enemy]activeEnemy

	spawned int
	failed  int
}

// Deps are the collaborators a Controller needs.
type Deps struct {
	Templates  *data.TemplateTable
	Enemies    *pool.Registry[string, *world.Enemy]
	TimeScale  *timescale.Registry
	State      *world.State
	Bus        *event.Bus
	Difficulty Difficulty // optional
	Rand       *rand.Rand
	Log        *zap.Logger
}

// NewController validates the spawn list against the template table and the
// enemy pools. Any problem is a configuration error and no controller is
// returned.
func NewController(cfg Config, entries []data.SpawnEntry, deps Deps) (*Controller, error) {
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("%w: spawn interval %s", errs.ErrConfig, cfg.Interval)
	}
	if cfg.MaxActive <= 0 {
		return nil, fmt.Errorf("%w: max active %d", errs.ErrConfig, cfg.MaxActive)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: spawn list is empty", errs.ErrConfig)
	}
	if deps.Enemies == nil {
		return nil, fmt.Errorf("%w: no enemy pools", errs.ErrConfig)
	}
	weights := make([]int, len(entries))
	for i, e := range entries {
		tmpl := deps.Templates.Get(e.Template)
		if tmpl == nil || tmpl.Kind != data.KindEnemy {
			return nil, fmt.Errorf("%w: spawn entry %d: unknown enemy template %q", errs.ErrConfig, i, e.Template)
		}
		if deps.Enemies.Pool(e.Template) == nil {
			return nil, fmt.Errorf("%w: spawn entry %d: no pool for %q", errs.ErrConfig, i, e.Template)
		}
		weights[i] = e.Weight
	}
	table, err := NewTable(entries, weights)
	if err != nil {
		return nil, fmt.Errorf("spawn list: %w", err)
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Controller{
		cfg:        cfg,
		table:      table,
		templates:  deps.Templates,
		enemies:    deps.Enemies,
		timeScale:  deps.TimeScale,
		state:      deps.State,
		bus:        deps.Bus,
		difficulty: deps.Difficulty,
		rng:        deps.Rand,
		log:        deps.Log,
		active:     make(map[*world.Enemy]activeEnemy, cfg.MaxActive),
	}, nil
}

// Start begins spawning. The first spawn waits one interval unless the
// config asks for an immediate one.
func (c *Controller) Start() {
	if c.running {
		return
	}
	c.running = true
	if c.cfg.Immediate {
		c.timer = 0
	} else {
		c.timer = c.cfg.Interval
	}
}

// Stop halts spawning. Enemies already in play are left alone.
func (c *Controller) Stop() { c.running = false }

// SetInterval changes the spawn interval, floored at MinInterval. A pending
// wait longer than the new interval is shortened to it.
func (c *Controller) SetInterval(d time.Duration) {
	c.cfg.Interval = max(d, MinInterval)
	if c.timer > c.cfg.Interval {
		c.timer = c.cfg.Interval
	}
}

// Tick advances the spawn timer with unscaled time. When it runs out and the
// population is below the cap, one enemy is spawned and the timer restarts.
// A failed spawn leaves the timer expired so the next tick retries.
func (c *Controller) Tick(dt time.Duration) {
	if !c.running {
		return
	}
	c.timer -= dt
	if c.timer > 0 || len(c.active) >= c.cfg.MaxActive {
		return
	}
	if c.spawnEnemy() {
		c.timer = c.cfg.Interval
	}
}

func (c *Controller) spawnEnemy() bool {
	entry := c.table.Pick(c.rng)
	e, err := c.enemies.Acquire(entry.Template)
	if err != nil {
		c.failed++
		c.log.Warn("spawn skipped", zap.String("template", entry.Template), zap.Error(err))
		return false
	}

	stats := c.scaledStats(entry)
	pos := c.spawnPoint()
	e.Initialize(stats, pos, c.cfg.Target)
	c.timeScale.Register(e)
	observer := e.Lifecycle().OnDeathComplete(c.onDeathComplete)
	c.active[e] = activeEnemy{entry: entry, stats: stats, observer: observer}
	c.state.TrackEnemy(e)
	c.spawned++

	event.Emit(c.bus, event.EnemySpawned{
		EntityID: e.ID,
		Template: entry.Template,
		X:        pos.X,
		Y:        pos.Y,
	})
	return true
}

func (c *Controller) scaledStats(entry data.SpawnEntry) data.Stats {
	stats := entry.Resolve(c.templates.Get(entry.Template))
	if c.difficulty == nil {
		return stats
	}
	m := c.difficulty.CalcSpawnStats(scripting.SpawnContext{
		Template: entry.Template,
		Elapsed:  c.state.Clock.Elapsed(),
		Minute:   c.state.Clock.Minutes(),
		Active:   len(c.active),
		Kills:    c.state.Tally.Kills,
	})
	stats.MaxHealth *= m.HealthMult
	stats.MoveSpeed *= m.SpeedMult
	return stats
}

// spawnPoint is uniform over the scatter disc around the origin.
func (c *Controller) spawnPoint() world.Vec2 {
	if c.cfg.Scatter <= 0 {
		return c.cfg.Origin
	}
	angle := c.rng.Float64() * 2 * math.Pi
	r := c.cfg.Scatter * math.Sqrt(c.rng.Float64())
	return c.cfg.Origin.Add(world.V(math.Cos(angle)*r, math.Sin(angle)*r))
}

func (c *Controller) onDeathComplete(e *world.Enemy) {
	a, ok := c.active[e]
	if !ok {
		return
	}
	e.Lifecycle().RemoveObserver(a.observer)
	delete(c.active, e)
	c.timeScale.Unregister(e)
	c.state.UntrackEnemy(e)
	lifetime := e.Age()

	if err := c.enemies.Release(e); err != nil {
		c.log.Warn("enemy release failed", zap.String("template", a.entry.Template), zap.Error(err))
	}
	event.Emit(c.bus, event.EnemyDied{
		EntityID:   e.ID,
		Template:   a.entry.Template,
		Experience: a.stats.Experience,
		Score:      a.stats.Score,
		Lifetime:   lifetime,
	})
}

// Despawn releases every active enemy without a death sequence, e.g. when a
// run is reset.
func (c *Controller) Despawn() int {
	n := 0
	for e, a := range c.active {
		e.Lifecycle().RemoveObserver(a.observer)
		delete(c.active, e)
		c.timeScale.Unregister(e)
		c.state.UntrackEnemy(e)
		if err := c.enemies.Release(e); err != nil {
			c.log.Warn("enemy release failed", zap.String("template", a.entry.Template), zap.Error(err))
			continue
		}
		n++
	}
	return n
}

func (c *Controller) Active() int             { return len(c.active) }
func (c *Controller) Running() bool           { return c.running }
func (c *Controller) Interval() time.Duration { return c.cfg.Interval }
func (c *Controller) Spawned() int            { return c.spawned }
func (c *Controller) Failed() int             { return c.failed }
func (c *Controller) Until() time.Duration    { return c.timer }
