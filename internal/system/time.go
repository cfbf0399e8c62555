package system

import (
	"time"

	"github.com/hordeloop/engine/internal/config"
	"github.com/hordeloop/engine/internal/core/event"
	coresys "github.com/hordeloop/engine/internal/core/system"
	"github.com/hordeloop/engine/internal/core/timer"
	"github.com/hordeloop/engine/internal/timescale"
	"github.com/hordeloop/engine/internal/world"
	"go.uber.org/zap"
)

// TimeScaleSystem runs the pending time-scale restore on unscaled time and
// casts the configured time pulse on every game minute. Phase 1 (Time).
type TimeScaleSystem struct {
	registry *timescale.Registry
	pulse    config.TimeScaleConfig
	log      *zap.Logger
}

func NewTimeScaleSystem(registry *timescale.Registry, bus *event.Bus, pulse config.TimeScaleConfig, log *zap.Logger) *TimeScaleSystem {
	s := &TimeScaleSystem{registry: registry, pulse: pulse, log: log}
	event.Subscribe(bus, s.onMinute)
	return s
}

func (s *TimeScaleSystem) Phase() coresys.Phase { return coresys.PhaseTime }

func (s *TimeScaleSystem) Update(dt time.Duration) {
	s.registry.Advance(dt)
}

func (s *TimeScaleSystem) onMinute(ev event.MinutePassed) {
	switch s.pulse.Pulse {
	case "slow":
		s.registry.SlowAll(s.pulse.Factor, s.pulse.Duration)
	case "freeze":
		s.registry.FreezeAll(s.pulse.Duration)
	default:
		return
	}
	s.log.Debug("time pulse",
		zap.String("kind", s.pulse.Pulse),
		zap.Duration("elapsed", ev.Elapsed),
		zap.Float64("scale", s.registry.Scale()))
}

// ClockSystem advances the run clock with time-scaled dt and announces
// minutes and the clear time. Phase 1 (Time), after TimeScaleSystem.
type ClockSystem struct {
	clock *world.Clock
	scale *timescale.Registry
	bus   *event.Bus
}

func NewClockSystem(clock *world.Clock, scale *timescale.Registry, bus *event.Bus) *ClockSystem {
	return &ClockSystem{clock: clock, scale: scale, bus: bus}
}

func (s *ClockSystem) Phase() coresys.Phase { return coresys.PhaseTime }

func (s *ClockSystem) Update(dt time.Duration) {
	minutes, up := s.clock.Advance(timer.Scale(dt, s.scale.Scale()))
	for i := 0; i < minutes; i++ {
		event.Emit(s.bus, event.MinutePassed{Elapsed: s.clock.Elapsed()})
	}
	if up {
		event.Emit(s.bus, event.TimeUp{Elapsed: s.clock.Elapsed()})
	}
}
