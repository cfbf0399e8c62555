// Package timescale broadcasts a global time multiplier to registered
// participants and restores it automatically after freezes and slowdowns.
package timescale

import (
	"math"
	"time"

	"github.com/hordeloop/engine/internal/core/timer"
	"go.uber.org/zap"
)

const (
	MinScale    = 0.0
	MaxScale    = 2.0
	NormalScale = 1.0
)

// Participant receives every scale change. Participants must not depend on
// the order in which they are notified.
type Participant interface {
	SetTimeScale(scale float64)
}

// Registry holds the participant set and the single pending restore.
// Accessed only from the game loop goroutine; no locks.
type Registry struct {
	scale   float64
	index   map[Participant]int
	members []Participant

	restore       timer.Countdown
	restoreTarget float64

	onChange func(scale float64)
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		scale:   NormalScale,
		index:   make(map[Participant]int, 64),
		members: make([]Participant, 0, 64),
		log:     log,
	}
}

// OnChange installs a hook called after every broadcast.
func (r *Registry) OnChange(fn func(scale float64)) {
	r.onChange = fn
}

// Register adds p and immediately pushes the current scale to it.
// Registering twice is a no-op.
func (r *Registry) Register(p Participant) {
	if p == nil {
		return
	}
	if _, ok := r.index[p]; ok {
		return
	}
	r.index[p] = len(r.members)
	r.members = append(r.members, p)
	p.SetTimeScale(r.scale)
}

// Unregister removes p. Unknown participants are ignored.
func (r *Registry) Unregister(p Participant) {
	i, ok := r.index[p]
	if !ok {
		return
	}
	last := len(r.members) - 1
	if i != last {
		moved := r.members[last]
		r.members[i] = moved
		r.index[moved] = i
	}
	r.members[last] = nil
	r.members = r.members[:last]
	delete(r.index, p)
}

// SetScale clamps v to [0, 2] and pushes it to every participant.
// It does not touch a pending restore. NaN is rejected and the current scale
// is kept.
func (r *Registry) SetScale(v float64) {
	if math.IsNaN(v) {
		r.log.Warn("time scale rejected", zap.Float64("scale", v))
		return
	}
	r.scale = clamp(v, MinScale, MaxScale)
	for _, p := range r.members {
		p.SetTimeScale(r.scale)
	}
	if r.onChange != nil {
		r.onChange(r.scale)
	}
}

// FreezeAll stops participant time and restores normal speed after d.
func (r *Registry) FreezeAll(d time.Duration) {
	r.SetScale(0)
	r.schedule(d, NormalScale)
	r.log.Debug("time frozen", zap.Duration("duration", d))
}

// SlowAll sets the scale to factor clamped to [0, 1] and restores normal
// speed after d. A NaN factor is ignored along with its restore.
func (r *Registry) SlowAll(factor float64, d time.Duration) {
	if math.IsNaN(factor) {
		r.log.Warn("slow factor rejected", zap.Float64("factor", factor))
		return
	}
	r.SetScale(clamp(factor, 0, 1))
	r.schedule(d, NormalScale)
	r.log.Debug("time slowed", zap.Float64("factor", r.scale), zap.Duration("duration", d))
}

// RestoreNow cancels any pending restore and returns to normal speed.
func (r *Registry) RestoreNow() {
	r.restore.Cancel()
	r.SetScale(NormalScale)
}

// schedule replaces any pending restore, so a short slowdown issued during a
// long freeze owns the only restore that will fire.
func (r *Registry) schedule(d time.Duration, target float64) {
	r.restore.Start(d)
	r.restoreTarget = target
}

// Advance runs the pending restore with unscaled frame time.
func (r *Registry) Advance(dt time.Duration) {
	if r.restore.Advance(dt) {
		r.SetScale(r.restoreTarget)
	}
}

// Scale is the current global multiplier.
func (r *Registry) Scale() float64 { return r.scale }

// Pending reports whether a restore is scheduled and how long until it fires.
func (r *Registry) Pending() (time.Duration, bool) {
	return r.restore.Remaining(), r.restore.Armed()
}

// Len is the number of registered participants.
func (r *Registry) Len() int { return len(r.members) }

// clamp maps NaN to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
