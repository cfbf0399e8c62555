package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseEvents    Phase = iota // 0: deliver last tick's events
	PhaseTime                   // 1: time-scale restore, game clock
	PhaseUpdate                 // 2: movement, bullets, firing
	PhaseLifecycle              // 3: death countdowns
	PhaseSpawn                  // 4: population controller
	PhasePersist                // 5: death ledger flush
	PhaseCleanup                // 6: flush despawn queue
)

// System is the interface every engine system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
