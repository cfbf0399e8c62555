package system

import (
	"time"

	coresys "github.com/hordeloop/engine/internal/core/system"
	"github.com/hordeloop/engine/internal/world"
)

// CleanupSystem flushes the deferred despawn queue at tick end.
// Phase 6 (Cleanup).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushDespawns()
}
