package world

import (
	"fmt"
	"time"

	"github.com/hordeloop/engine/internal/core/ecs"
	"github.com/hordeloop/engine/internal/core/timer"
	"github.com/hordeloop/engine/internal/data"
)

// Enemy is a pooled hostile actor. One pool exists per template; every
// instance keeps its entity ID across reuse.
type Enemy struct {
	ID       ecs.EntityID
	Template string

	Transform Transform
	stats     data.Stats
	attack    AttackShape
	target    Vec2

	active    bool
	destroyed bool
	motion    Flag // movement / AI
	body      Flag // hit collider
	health    *Health
	life      *Lifecycle[*Enemy]

	timeScale float64
	age       time.Duration // scaled time alive since the last acquire

	retire func(ecs.EntityID) // set by State factories; gives the ID back
}

// NewEnemy builds an inactive enemy. presenter may be nil.
func NewEnemy(id ecs.EntityID, template string, attack AttackShape, deathDelay time.Duration, presenter DeathPresenter) *Enemy {
	e := &Enemy{
		ID:        id,
		Template:  template,
		attack:    attack,
		health:    NewHealth(1),
		timeScale: 1,
	}
	e.life = NewLifecycle(e, LifecycleParts{
		Health:     e.health,
		Motion:     &e.motion,
		Colliders:  []Toggle{&e.body},
		Presenter:  presenter,
		DeathDelay: deathDelay,
	})
	return e
}

// Pool hooks.

func (e *Enemy) SetActive(active bool) { e.active = active }

func (e *Enemy) OnCreatedInPool() {
	e.motion.SetEnabled(false)
	e.body.SetEnabled(false)
}

func (e *Enemy) OnAcquired() {
	e.life.Reset()
	e.age = 0
	e.timeScale = 1
}

func (e *Enemy) OnReleased() {
	e.life.ClearObservers()
	e.Transform.Vel = Vec2{}
}

// OnDestroyed drops observers and hands the entity ID back to its world.
func (e *Enemy) OnDestroyed() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.life.ClearObservers()
	if e.retire != nil {
		e.retire(e.ID)
	}
}

func (e *Enemy) String() string { return fmt.Sprintf("%s#%d", e.Template, e.ID.Index()) }

// Initialize applies resolved stats and places the enemy. Health is refilled
// to the new maximum.
func (e *Enemy) Initialize(stats data.Stats, pos, target Vec2) {
	e.stats = stats
	e.health.SetMax(stats.MaxHealth)
	e.SetPosition(pos)
	e.target = target
}

func (e *Enemy) SetPosition(p Vec2) { e.Transform.Pos = p }

func (e *Enemy) SetTarget(p Vec2) { e.target = p }

// SetTimeScale receives the global time scale broadcast.
func (e *Enemy) SetTimeScale(scale float64) { e.timeScale = scale }

// Step seeks the target at the enemy's local time and stops once the target
// is inside attack reach. A dying enemy keeps its position.
func (e *Enemy) Step(dt time.Duration) {
	if !e.active || !e.motion.Enabled() {
		return
	}
	local := timer.Scale(dt, e.timeScale)
	e.age += local

	to := e.target.Sub(e.Transform.Pos)
	dist := to.Len()
	reach := e.attack.Reach()
	if dist <= reach || local == 0 {
		e.Transform.Vel = Vec2{}
		return
	}
	e.Transform.Vel = to.Normalize().Scale(e.stats.MoveSpeed)
	step := e.stats.MoveSpeed * local.Seconds()
	if step > dist-reach {
		step = dist - reach
	}
	e.Transform.Pos = e.Transform.Pos.Add(to.Normalize().Scale(step))
}

// AdvanceLifecycle runs the death delay at the enemy's local time and
// reports whether the enemy became Dead.
func (e *Enemy) AdvanceLifecycle(dt time.Duration) bool {
	return e.life.Advance(timer.Scale(dt, e.timeScale))
}

// CanCollide reports whether bullets may hit this enemy.
func (e *Enemy) CanCollide() bool {
	return e.active && e.body.Enabled() && e.life.State() == Alive
}

func (e *Enemy) Lifecycle() *Lifecycle[*Enemy] { return e.life }
func (e *Enemy) Health() *Health               { return e.health }
func (e *Enemy) Stats() data.Stats             { return e.stats }
func (e *Enemy) Attack() AttackShape           { return e.attack }
func (e *Enemy) Active() bool                  { return e.active }
func (e *Enemy) Destroyed() bool               { return e.destroyed }
func (e *Enemy) Moving() bool                  { return e.motion.Enabled() }
func (e *Enemy) TimeScale() float64            { return e.timeScale }
func (e *Enemy) Age() time.Duration            { return e.age }
