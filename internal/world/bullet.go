package world

import (
	"fmt"
	"time"

	"github.com/hordeloop/engine/internal/core/ecs"
	"github.com/hordeloop/engine/internal/core/timer"
	"github.com/hordeloop/engine/internal/data"
)

// Bullet is a pooled projectile. It flies in a straight line until it hits
// an enemy or its lifetime runs out. Bullets ignore the global time scale.
type Bullet struct {
	ID       ecs.EntityID
	Template string

	Transform Transform
	speed     float64
	radius    float64
	lifetime  time.Duration
	damage    float64

	active bool
	spent  bool // hit something this flight
	life   timer.Countdown

	retire func(ecs.EntityID)
}

func NewBullet(id ecs.EntityID, template string, spec data.BulletSpec) *Bullet {
	return &Bullet{
		ID:       id,
		Template: template,
		speed:    spec.Speed,
		radius:   spec.Radius,
		lifetime: spec.Lifetime,
	}
}

func (b *Bullet) SetActive(active bool) { b.active = active }
func (b *Bullet) OnCreatedInPool()      {}

func (b *Bullet) OnDestroyed() {
	b.life.Cancel()
	if b.retire != nil {
		b.retire(b.ID)
		b.retire = nil
	}
}

func (b *Bullet) OnAcquired() {
	b.spent = false
}

func (b *Bullet) OnReleased() {
	b.life.Cancel()
	b.Transform.Vel = Vec2{}
	b.damage = 0
}

func (b *Bullet) String() string { return fmt.Sprintf("%s#%d", b.Template, b.ID.Index()) }

// Launch places the bullet at from and sends it towards dir.
func (b *Bullet) Launch(from, dir Vec2, damage float64) {
	b.Transform.Pos = from
	b.Transform.Vel = dir.Normalize().Scale(b.speed)
	b.damage = damage
	b.life.Start(b.lifetime)
}

// Step moves the bullet and reports whether its lifetime ended.
func (b *Bullet) Step(dt time.Duration) (expired bool) {
	if !b.active {
		return false
	}
	b.Transform.Pos = b.Transform.Pos.Add(b.Transform.Vel.Scale(dt.Seconds()))
	return b.life.Advance(dt)
}

// Hits is the point-vs-radius test against an enemy's hit circle.
func (b *Bullet) Hits(e *Enemy) bool {
	if !b.active || b.spent || !e.CanCollide() {
		return false
	}
	r := b.radius + e.Stats().HitRadius
	return b.Transform.Pos.DistSq(e.Transform.Pos) <= r*r
}

// Strike damages e and marks the bullet spent.
func (b *Bullet) Strike(e *Enemy) {
	b.spent = true
	e.Lifecycle().TakeDamage(b.damage)
}

func (b *Bullet) Active() bool             { return b.active }
func (b *Bullet) Spent() bool              { return b.spent }
func (b *Bullet) Damage() float64          { return b.damage }
func (b *Bullet) Remaining() time.Duration { return b.life.Remaining() }
