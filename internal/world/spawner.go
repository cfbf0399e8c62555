package world

import (
	"fmt"

	"github.com/hordeloop/engine/internal/pool"
	"go.uber.org/zap"
)

// BulletSpawner fires pooled bullets and takes them back.
type BulletSpawner struct {
	registry *pool.Registry[string, *Bullet]
	state    *State
	log      *zap.Logger
}

func NewBulletSpawner(registry *pool.Registry[string, *Bullet], state *State, log *zap.Logger) *BulletSpawner {
	return &BulletSpawner{registry: registry, state: state, log: log}
}

// Fire launches one bullet of template from from towards to.
func (s *BulletSpawner) Fire(template string, from, to Vec2, damage float64) (*Bullet, error) {
	b, err := s.registry.Acquire(template)
	if err != nil {
		return nil, fmt.Errorf("fire %s: %w", template, err)
	}
	b.Launch(from, to.Sub(from), damage)
	s.state.TrackBullet(b)
	return b, nil
}

// Recycle returns a bullet to its pool.
func (s *BulletSpawner) Recycle(b *Bullet) {
	s.state.UntrackBullet(b)
	if err := s.registry.Release(b); err != nil {
		s.log.Debug("bullet recycle failed", zap.Uint64("entity", uint64(b.ID)), zap.Error(err))
	}
}
