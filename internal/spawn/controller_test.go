package spawn

import (
	"math/rand"
	"testing"
	"time"

	"github.com/hordeloop/engine/internal/core/errs"
	"github.com/hordeloop/engine/internal/core/event"
	"github.com/hordeloop/engine/internal/data"
	"github.com/hordeloop/engine/internal/pool"
	"github.com/hordeloop/engine/internal/scripting"
	"github.com/hordeloop/engine/internal/timescale"
	"github.com/hordeloop/engine/internal/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const rigTemplates = `
templates:
  - id: zombie
    kind: enemy
    stats:
      max_health: 10
      move_speed: 1
      experience: 3
      score: 7
      hit_radius: 0.5
  - id: ghost
    kind: enemy
    stats:
      max_health: 4
  - id: arrow
    kind: bullet
`

type rig struct {
	templates *data.TemplateTable
	enemies   *pool.Registry[string, *world.Enemy]
	scale     *timescale.Registry
	state     *world.State
	bus       *event.Bus

	spawned []event.EnemySpawned
	died    []event.EnemyDied
}

// newRig registers a pool for zombie only; ghost is a valid enemy template
// with no pool behind it.
func newRig(t *testing.T) *rig {
	t.Helper()
	log := zaptest.NewLogger(t)
	templates, err := data.ParseTemplateTable([]byte(rigTemplates))
	require.NoError(t, err)

	r := &rig{
		templates: templates,
		enemies:   pool.NewRegistry[string, *world.Enemy](log),
		scale:     timescale.NewRegistry(log),
		state:     world.NewState(world.NewClock(time.Minute, 0)),
		bus:       event.NewBus(),
	}
	factory, err := r.state.EnemyFactory(templates.Get("zombie"), 0)
	require.NoError(t, err)
	require.NoError(t, r.enemies.RegisterPool("zombie", factory, 1))

	event.Subscribe(r.bus, func(e event.EnemySpawned) { r.spawned = append(r.spawned, e) })
	event.Subscribe(r.bus, func(e event.EnemyDied) { r.died = append(r.died, e) })
	return r
}

func (r *rig) deps(t *testing.T) Deps {
	return Deps{
		Templates: r.templates,
		Enemies:   r.enemies,
		TimeScale: r.scale,
		State:     r.state,
		Bus:       r.bus,
		Rand:      rand.New(rand.NewSource(1)),
		Log:       zaptest.NewLogger(t),
	}
}

func (r *rig) dispatch() {
	r.bus.SwapBuffers()
	r.bus.DispatchAll()
}

func (r *rig) inPlay() []*world.Enemy {
	var out []*world.Enemy
	r.state.EachEnemy(func(e *world.Enemy) {
		if e.Active() {
			out = append(out, e)
		}
	})
	return out
}

func zombies() []data.SpawnEntry {
	return []data.SpawnEntry{{Template: "zombie", Weight: 1}}
}

func TestNewControllerValidation(t *testing.T) {
	r := newRig(t)
	good := Config{Interval: time.Second, MaxActive: 3}
	tests := []struct {
		name    string
		cfg     Config
		entries []data.SpawnEntry
	}{
		{"zero interval", Config{MaxActive: 3}, zombies()},
		{"zero cap", Config{Interval: time.Second}, zombies()},
		{"no entries", good, nil},
		{"unknown template", good, []data.SpawnEntry{{Template: "dragon", Weight: 1}}},
		{"bullet template", good, []data.SpawnEntry{{Template: "arrow", Weight: 1}}},
		{"zero weight", good, []data.SpawnEntry{{Template: "zombie", Weight: 1}, {Template: "zombie"}}},
		{"template without pool", good, []data.SpawnEntry{{Template: "zombie", Weight: 1}, {Template: "ghost", Weight: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewController(tt.cfg, tt.entries, r.deps(t))
			require.ErrorIs(t, err, errs.ErrConfig)
			require.Nil(t, c)
		})
	}

	t.Run("no pool registry", func(t *testing.T) {
		deps := r.deps(t)
		deps.Enemies = nil
		c, err := NewController(good, zombies(), deps)
		require.ErrorIs(t, err, errs.ErrConfig)
		require.Nil(t, c)
	})
}

func TestControllerSpawnCycle(t *testing.T) {
	r := newRig(t)
	c, err := NewController(Config{Interval: time.Second, MaxActive: 2, Target: world.V(5, 5)}, zombies(), r.deps(t))
	require.NoError(t, err)

	c.Tick(time.Hour)
	require.Zero(t, c.Active(), "not started")

	c.Start()
	c.Tick(500 * time.Millisecond)
	require.Zero(t, c.Active())
	c.Tick(500 * time.Millisecond)
	require.Equal(t, 1, c.Active())
	require.Equal(t, time.Second, c.Until())

	c.Tick(time.Second)
	require.Equal(t, 2, c.Active())
	c.Tick(time.Second)
	require.Equal(t, 2, c.Active(), "cap reached")
	require.LessOrEqual(t, c.Until(), time.Duration(0))

	zombiePool := r.enemies.Pool("zombie")
	require.Equal(t, 2, zombiePool.Size(), "pool grew from one to two")
	require.Equal(t, 2, r.scale.Len())

	r.dispatch()
	require.Len(t, r.spawned, 2)
	require.Equal(t, "zombie", r.spawned[0].Template)

	victim := r.inPlay()[0]
	victim.Lifecycle().TakeDamage(100)
	require.True(t, victim.AdvanceLifecycle(0))
	require.Equal(t, 1, c.Active())
	require.Equal(t, 1, zombiePool.Available())
	require.Equal(t, 1, r.scale.Len())
	require.Zero(t, victim.Lifecycle().Observers())

	r.dispatch()
	require.Len(t, r.died, 1)
	require.Equal(t, event.EnemyDied{EntityID: victim.ID, Template: "zombie", Experience: 3, Score: 7}, r.died[0])

	// The freed slot is refilled on the next tick because the timer already expired.
	c.Tick(0)
	require.Equal(t, 2, c.Active())
	require.Equal(t, 3, c.Spawned())
	require.Equal(t, 2, zombiePool.Size())
}

func TestControllerFailedSpawnKeepsTimerExpired(t *testing.T) {
	r := newRig(t)
	c, err := NewController(Config{Interval: time.Second, MaxActive: 5, Immediate: true}, zombies(), r.deps(t))
	require.NoError(t, err)

	// Pools torn down after startup make every acquire fail.
	r.enemies.Teardown(true)
	c.Start()
	c.Tick(0)
	c.Tick(0)
	require.Zero(t, c.Active())
	require.Equal(t, 2, c.Failed())
	require.LessOrEqual(t, c.Until(), time.Duration(0))
}

func TestControllerStatsAndPlacement(t *testing.T) {
	r := newRig(t)
	deps := r.deps(t)
	deps.Difficulty = fixedDifficulty{HealthMult: 2, SpeedMult: 1.5}
	entries := []data.SpawnEntry{{Template: "zombie", Weight: 1, Stats: data.Stats{MoveSpeed: 2}}}
	cfg := Config{Interval: time.Second, MaxActive: 20, Origin: world.V(10, 10), Scatter: 3, Immediate: true}
	c, err := NewController(cfg, entries, deps)
	require.NoError(t, err)

	c.Start()
	for i := 0; i < 20; i++ {
		c.Tick(time.Second)
	}
	require.Equal(t, 20, c.Active())
	for _, e := range r.inPlay() {
		require.Equal(t, 20.0, e.Health().Max())
		require.Equal(t, 3.0, e.Stats().MoveSpeed)
		require.Equal(t, 3, e.Stats().Experience)
		require.LessOrEqual(t, e.Transform.Pos.Dist(world.V(10, 10)), 3.0+1e-9)
	}
}

func TestControllerTimeScale(t *testing.T) {
	r := newRig(t)
	c, err := NewController(Config{Interval: time.Second, MaxActive: 1, Immediate: true}, zombies(), r.deps(t))
	require.NoError(t, err)

	r.scale.SlowAll(0.5, time.Second)
	c.Start()
	c.Tick(0)
	e := r.inPlay()[0]
	require.Equal(t, 0.5, e.TimeScale(), "new spawns take the current scale")

	r.scale.FreezeAll(time.Second)
	require.Zero(t, e.TimeScale())

	c.Tick(10 * time.Second)
	require.Equal(t, 1, c.Active(), "spawn timer runs on unscaled time but the cap holds")
}

func TestControllerIntervalAndStop(t *testing.T) {
	r := newRig(t)
	c, err := NewController(Config{Interval: 2 * time.Second, MaxActive: 5}, zombies(), r.deps(t))
	require.NoError(t, err)

	c.Start()
	c.SetInterval(10 * time.Millisecond)
	require.Equal(t, MinInterval, c.Interval())
	require.Equal(t, MinInterval, c.Until())

	c.Tick(MinInterval)
	require.Equal(t, 1, c.Active())

	c.Stop()
	require.False(t, c.Running())
	c.Tick(time.Minute)
	require.Equal(t, 1, c.Active())

	require.Equal(t, 1, c.Despawn())
	require.Zero(t, c.Active())
	require.Zero(t, r.enemies.Outstanding())
	require.Zero(t, r.scale.Len())
}

type fixedDifficulty scripting.SpawnStats

func (f fixedDifficulty) CalcSpawnStats(scripting.SpawnContext) scripting.SpawnStats {
	return scripting.SpawnStats(f)
}
