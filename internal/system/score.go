package system

import (
	"github.com/hordeloop/engine/internal/core/event"
	"github.com/hordeloop/engine/internal/world"
)

// TrackScore adds every completed death to the run tally.
func TrackScore(bus *event.Bus, ws *world.State) {
	event.Subscribe(bus, func(ev event.EnemyDied) {
		ws.Tally.Record(ev.Experience, ev.Score)
	})
}
