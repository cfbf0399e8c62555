package system

import (
	"time"

	coresys "github.com/hordeloop/engine/internal/core/system"
	"github.com/hordeloop/engine/internal/world"
)

// LifecycleSystem runs the Dying → Dead delay of every enemy on its local
// time. Death observers (the spawn controller) release the enemy from inside
// this pass. Phase 3 (Lifecycle).
type LifecycleSystem struct {
	world *world.State

	completed int
}

func NewLifecycleSystem(ws *world.State) *LifecycleSystem {
	return &LifecycleSystem{world: ws}
}

func (s *LifecycleSystem) Phase() coresys.Phase { return coresys.PhaseLifecycle }

func (s *LifecycleSystem) Update(dt time.Duration) {
	s.world.EachEnemy(func(e *world.Enemy) {
		if !e.Active() {
			return
		}
		if e.AdvanceLifecycle(dt) {
			s.completed++
		}
	})
}

// Completed counts finished death sequences.
func (s *LifecycleSystem) Completed() int { return s.completed }
