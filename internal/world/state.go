package world

import (
	"time"

	"github.com/hordeloop/engine/internal/core/ecs"
	"github.com/hordeloop/engine/internal/data"
)

// State is the in-memory simulation state: which pooled actors are in play,
// the run clock and the score tally. Pooled actors keep their entity ID for
// their whole life; tracking only moves them in and out of the stores.
// Accessed only from the game loop goroutine.
type State struct {
	ecs     *ecs.World
	enemies *ecs.Store[Enemy]  // in-play enemies, alive or dying
	bullets *ecs.Store[Bullet] // in-flight bullets

	Clock *Clock
	Tally Tally

	deathEffects int // death effects played, presentation stand-in
}

func NewState(clock *Clock) *State {
	s := &State{
		ecs:     ecs.NewWorld(),
		enemies: ecs.NewStore[Enemy](256),
		bullets: ecs.NewStore[Bullet](512),
		Clock:   clock,
	}
	s.ecs.Registry().Register(s.enemies)
	s.ecs.Registry().Register(s.bullets)
	return s
}

// EnemyFactory returns a pool factory for one enemy template.
func (s *State) EnemyFactory(tmpl *data.ActorTemplate, deathDelay time.Duration) (func() *Enemy, error) {
	attack, err := ShapeFromSpec(tmpl.Attack)
	if err != nil {
		return nil, err
	}
	presenter := PresenterFunc(func() { s.deathEffects++ })
	return func() *Enemy {
		e := NewEnemy(s.ecs.CreateEntity(), tmpl.ID, attack, deathDelay, presenter)
		e.retire = s.retire
		return e
	}, nil
}

// BulletFactory returns a pool factory for one bullet template.
func (s *State) BulletFactory(tmpl *data.ActorTemplate) func() *Bullet {
	return func() *Bullet {
		b := NewBullet(s.ecs.CreateEntity(), tmpl.ID, tmpl.Bullet)
		b.retire = s.retire
		return b
	}
}

// retire runs when a pool destroys an actor: its components go now and the
// ID generation moves on, so the old ID never names a live entity again.
func (s *State) retire(id ecs.EntityID) {
	s.ecs.CancelDespawn(id)
	s.ecs.DestroyEntity(id)
}

// TrackEnemy puts an acquired enemy into play.
func (s *State) TrackEnemy(e *Enemy) {
	s.ecs.CancelDespawn(e.ID)
	s.enemies.Set(e.ID, e)
}

// UntrackEnemy takes an enemy out of play at the end of the tick.
func (s *State) UntrackEnemy(e *Enemy) {
	s.ecs.MarkForDespawn(e.ID)
}

func (s *State) TrackBullet(b *Bullet) {
	s.ecs.CancelDespawn(b.ID)
	s.bullets.Set(b.ID, b)
}

func (s *State) UntrackBullet(b *Bullet) {
	s.ecs.MarkForDespawn(b.ID)
}

// EachEnemy visits every tracked enemy, including ones already released this
// tick; callers check Active.
func (s *State) EachEnemy(fn func(*Enemy)) {
	s.enemies.Each(func(_ ecs.EntityID, e *Enemy) { fn(e) })
}

func (s *State) EachBullet(fn func(*Bullet)) {
	s.bullets.Each(func(_ ecs.EntityID, b *Bullet) { fn(b) })
}

// NearestEnemy returns the closest enemy that can still be hit.
func (s *State) NearestEnemy(p Vec2) (*Enemy, bool) {
	var best *Enemy
	bestDist := 0.0
	s.EachEnemy(func(e *Enemy) {
		if !e.CanCollide() {
			return
		}
		d := e.Transform.Pos.DistSq(p)
		if best == nil || d < bestDist || (d == bestDist && e.ID < best.ID) {
			best, bestDist = e, d
		}
	})
	return best, best != nil
}

// FlushDespawns drops everything untracked this tick.
func (s *State) FlushDespawns() int {
	n := s.ecs.Pending()
	s.ecs.FlushDespawnQueue()
	return n
}

func (s *State) Enemies() int      { return s.enemies.Len() }
func (s *State) Bullets() int      { return s.bullets.Len() }
func (s *State) DeathEffects() int { return s.deathEffects }

// Entities counts entity IDs held by pooled actors, in play or not.
func (s *State) Entities() int { return s.ecs.Pool().Live() }

// Alive reports whether id still belongs to an undestroyed actor.
func (s *State) Alive(id ecs.EntityID) bool { return s.ecs.Alive(id) }
