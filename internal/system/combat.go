package system

import (
	"time"

	"github.com/hordeloop/engine/internal/core/event"
	coresys "github.com/hordeloop/engine/internal/core/system"
	"github.com/hordeloop/engine/internal/world"
	"go.uber.org/zap"
)

// BulletSystem flies bullets, applies hits and recycles spent or expired
// bullets. Phase 2 (Update).
type BulletSystem struct {
	world   *world.State
	spawner *world.BulletSpawner
	bus     *event.Bus
}

func NewBulletSystem(ws *world.State, spawner *world.BulletSpawner, bus *event.Bus) *BulletSystem {
	return &BulletSystem{world: ws, spawner: spawner, bus: bus}
}

func (s *BulletSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *BulletSystem) Update(dt time.Duration) {
	s.world.EachBullet(func(b *world.Bullet) {
		if !b.Active() {
			return
		}
		expired := b.Step(dt)
		if target := s.closestHit(b); target != nil {
			b.Strike(target)
			s.retire(b, true)
			return
		}
		if expired {
			s.retire(b, false)
		}
	})
}

// closestHit picks the nearest enemy inside the bullet's hit circle so the
// result does not depend on store iteration order.
func (s *BulletSystem) closestHit(b *world.Bullet) *world.Enemy {
	var best *world.Enemy
	bestDist := 0.0
	s.world.EachEnemy(func(e *world.Enemy) {
		if !b.Hits(e) {
			return
		}
		d := e.Transform.Pos.DistSq(b.Transform.Pos)
		if best == nil || d < bestDist || (d == bestDist && e.ID < best.ID) {
			best, bestDist = e, d
		}
	})
	return best
}

func (s *BulletSystem) retire(b *world.Bullet, hit bool) {
	s.spawner.Recycle(b)
	event.Emit(s.bus, event.BulletExpired{EntityID: b.ID, Hit: hit})
}

// AutoFireSystem shoots at the nearest live enemy from the target point on a
// fixed unscaled interval. Phase 2 (Update).
type AutoFireSystem struct {
	world    *world.State
	spawner  *world.BulletSpawner
	origin   world.Vec2
	template string
	damage   float64
	interval time.Duration
	cooldown time.Duration
	log      *zap.Logger

	fired int
}

func NewAutoFireSystem(ws *world.State, spawner *world.BulletSpawner, origin world.Vec2, template string, damage float64, interval time.Duration, log *zap.Logger) *AutoFireSystem {
	return &AutoFireSystem{
		world:    ws,
		spawner:  spawner,
		origin:   origin,
		template: template,
		damage:   damage,
		interval: interval,
		cooldown: interval,
		log:      log,
	}
}

func (s *AutoFireSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AutoFireSystem) Update(dt time.Duration) {
	if s.interval <= 0 {
		return
	}
	s.cooldown -= dt
	if s.cooldown > 0 {
		return
	}
	target, ok := s.world.NearestEnemy(s.origin)
	if !ok {
		return // hold fire; shoot as soon as something shows up
	}
	s.cooldown = s.interval
	if _, err := s.spawner.Fire(s.template, s.origin, target.Transform.Pos, s.damage); err != nil {
		s.log.Warn("auto fire failed", zap.String("template", s.template), zap.Error(err))
		return
	}
	s.fired++
}

func (s *AutoFireSystem) Fired() int { return s.fired }
