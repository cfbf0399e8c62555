package system

import (
	"time"

	coresys "github.com/hordeloop/engine/internal/core/system"
	"github.com/hordeloop/engine/internal/world"
)

// MovementSystem steps every enemy towards its target. Each enemy applies
// its own time scale. Phase 2 (Update).
type MovementSystem struct {
	world *world.State
}

func NewMovementSystem(ws *world.State) *MovementSystem {
	return &MovementSystem{world: ws}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	s.world.EachEnemy(func(e *world.Enemy) {
		e.Step(dt)
	})
}
