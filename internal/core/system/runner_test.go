package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	name  string
	phase Phase
	trace *[]string
}

func (r recorder) Phase() Phase { return r.phase }
func (r recorder) Update(time.Duration) {
	*r.trace = append(*r.trace, r.name)
}

func TestRunner(t *testing.T) {
	var trace []string
	r := NewRunner()
	r.Register(recorder{"cleanup", PhaseCleanup, &trace})
	r.Register(recorder{"spawn", PhaseSpawn, &trace})
	r.Register(recorder{"move", PhaseUpdate, &trace})
	r.Register(recorder{"fire", PhaseUpdate, &trace})
	r.Register(recorder{"events", PhaseEvents, &trace})

	r.Tick(time.Millisecond)
	require.Equal(t, []string{"events", "move", "fire", "spawn", "cleanup"}, trace)
	require.Equal(t, uint64(1), r.Ticks())

	trace = trace[:0]
	r.TickPhase(PhaseUpdate, time.Millisecond)
	require.Equal(t, []string{"move", "fire"}, trace)
	require.Equal(t, uint64(1), r.Ticks())
}

func TestRunnerBudget(t *testing.T) {
	var trace []string
	r := NewRunner()
	r.Register(recorder{"move", PhaseUpdate, &trace})

	clock := time.Unix(0, 0)
	step := 30 * time.Millisecond
	r.now = func() time.Time {
		clock = clock.Add(step)
		return clock
	}

	r.Tick(time.Millisecond)
	require.Equal(t, step, r.LastTick())
	require.Zero(t, r.Overruns(), "no budget set")

	r.SetBudget(20 * time.Millisecond)
	r.Tick(time.Millisecond)
	r.Tick(time.Millisecond)
	require.Equal(t, uint64(2), r.Overruns())

	r.SetBudget(time.Second)
	r.Tick(time.Millisecond)
	require.Equal(t, uint64(2), r.Overruns())
	require.Equal(t, uint64(4), r.Ticks())
}
