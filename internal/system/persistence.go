package system

import (
	"time"

	"github.com/hordeloop/engine/internal/core/event"
	coresys "github.com/hordeloop/engine/internal/core/system"
	"github.com/hordeloop/engine/internal/persist"
	"go.uber.org/zap"
)

// PersistenceSystem records every completed death and hands the buffered
// rows to the ledger writer every N ticks. Phase 5 (Persist).
type PersistenceSystem struct {
	recorder  *persist.Recorder
	writer    *persist.Writer
	log       *zap.Logger
	tickCount int
	interval  int // flush every N ticks
}

func NewPersistenceSystem(recorder *persist.Recorder, writer *persist.Writer, bus *event.Bus, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	s := &PersistenceSystem{
		recorder: recorder,
		writer:   writer,
		log:      log,
		interval: max(1, intervalTicks),
	}
	event.Subscribe(bus, func(ev event.EnemyDied) {
		s.recorder.Record(uint64(ev.EntityID), ev.Template, ev.Lifetime, ev.Experience, ev.Score)
	})
	return s
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.Flush()
}

// Flush submits whatever is buffered. Called on shutdown as well.
func (s *PersistenceSystem) Flush() {
	rows := s.recorder.Drain()
	if len(rows) == 0 {
		return
	}
	if s.writer.Submit(rows) {
		s.log.Debug("death ledger flushed", zap.Int("rows", len(rows)))
	}
}
