package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order each tick. Systems sharing a phase
// keep their registration order.
type Runner struct {
	systems  []System
	sorted   bool
	ticks    uint64
	budget   time.Duration
	last     time.Duration
	overruns uint64
	now      func() time.Time
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
		now:     time.Now,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// SetBudget sets how much wall time a full tick may take before it is
// counted as an overrun. Zero disables the check.
func (r *Runner) SetBudget(d time.Duration) { r.budget = d }

// Tick runs every phase once. dt is the simulated step, not wall time.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	start := r.now()
	for _, s := range r.systems {
		s.Update(dt)
	}
	r.last = r.now().Sub(start)
	if r.budget > 0 && r.last > r.budget {
		r.overruns++
	}
	r.ticks++
}

// TickPhase runs only the systems of one phase. It is not counted as a tick.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

// Ticks counts completed full ticks.
func (r *Runner) Ticks() uint64 { return r.ticks }

// LastTick is the wall time the most recent full tick took.
func (r *Runner) LastTick() time.Duration { return r.last }

// Overruns counts full ticks that went over budget.
func (r *Runner) Overruns() uint64 { return r.overruns }

func (r *Runner) Len() int { return len(r.systems) }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
