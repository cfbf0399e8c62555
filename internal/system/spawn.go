package system

import (
	"time"

	"github.com/hordeloop/engine/internal/core/event"
	coresys "github.com/hordeloop/engine/internal/core/system"
	"github.com/hordeloop/engine/internal/spawn"
	"go.uber.org/zap"
)

// IntervalCurve maps a game minute to a spawn interval. *scripting.Engine
// implements it.
type IntervalCurve interface {
	CalcSpawnInterval(minute int, base time.Duration) time.Duration
}

// SpawnSystem ticks the population controller on unscaled time. It retunes
// the interval every game minute and stops spawning once time is up.
// Phase 4 (Spawn).
type SpawnSystem struct {
	controller *spawn.Controller
	curve      IntervalCurve
	base       time.Duration
	minute     int
	log        *zap.Logger
}

func NewSpawnSystem(controller *spawn.Controller, curve IntervalCurve, bus *event.Bus, log *zap.Logger) *SpawnSystem {
	s := &SpawnSystem{
		controller: controller,
		curve:      curve,
		base:       controller.Interval(),
		log:        log,
	}
	event.Subscribe(bus, s.onMinute)
	event.Subscribe(bus, s.onTimeUp)
	return s
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnSystem) Update(dt time.Duration) {
	s.controller.Tick(dt)
}

func (s *SpawnSystem) onMinute(_ event.MinutePassed) {
	s.minute++
	if s.curve == nil {
		return
	}
	s.controller.SetInterval(s.curve.CalcSpawnInterval(s.minute, s.base))
	s.log.Info("spawn interval retuned",
		zap.Int("minute", s.minute),
		zap.Duration("interval", s.controller.Interval()),
		zap.Int("active", s.controller.Active()))
}

func (s *SpawnSystem) onTimeUp(ev event.TimeUp) {
	s.controller.Stop()
	s.log.Info("time up, spawning stopped",
		zap.Duration("elapsed", ev.Elapsed),
		zap.Int("spawned", s.controller.Spawned()))
}
