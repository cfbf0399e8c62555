package event

import (
	"time"

	"github.com/hordeloop/engine/internal/core/ecs"
)

type EnemySpawned struct {
	EntityID ecs.EntityID
	Template string
	X, Y     float64
}

// EnemyDied is emitted once an enemy finished its death sequence and went
// back to its pool.
type EnemyDied struct {
	EntityID   ecs.EntityID
	Template   string
	Experience int
	Score      int
	Lifetime   time.Duration
}

type BulletExpired struct {
	EntityID ecs.EntityID
	Hit      bool
}

type TimeScaleChanged struct {
	Scale float64
}

type MinutePassed struct {
	Elapsed time.Duration
}

type TimeUp struct {
	Elapsed time.Duration
}
