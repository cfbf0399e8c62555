package world

import (
	"fmt"
	"testing"
	"time"

	"github.com/hordeloop/engine/internal/data"
	"github.com/stretchr/testify/require"
)

func acquiredEnemy(t *testing.T, reach float64, delay time.Duration) *Enemy {
	t.Helper()
	e := NewEnemy(1, "zombie", AttackShape{Kind: ShapeCircle, Radius: reach}, delay, nil)
	e.OnCreatedInPool()
	e.SetActive(true)
	e.OnAcquired()
	e.Initialize(data.Stats{MaxHealth: 10, MoveSpeed: 2, HitRadius: 0.5}, V(0, 0), V(10, 0))
	return e
}

func TestEnemyStepStopsAtReach(t *testing.T) {
	e := acquiredEnemy(t, 1, time.Second)
	e.Step(time.Second)
	require.Equal(t, V(2, 0), e.Transform.Pos)
	require.Equal(t, V(2, 0), e.Transform.Vel)

	for i := 0; i < 10; i++ {
		e.Step(time.Second)
	}
	require.Equal(t, V(9, 0), e.Transform.Pos)
	require.Equal(t, Vec2{}, e.Transform.Vel)
	require.Equal(t, 11*time.Second, e.Age())
}

func TestEnemyTimeScale(t *testing.T) {
	e := acquiredEnemy(t, 0, time.Second)

	e.SetTimeScale(0)
	e.Step(time.Second)
	require.Equal(t, V(0, 0), e.Transform.Pos)

	e.SetTimeScale(0.5)
	e.Step(time.Second)
	require.Equal(t, V(1, 0), e.Transform.Pos)

	e.Lifecycle().Die()
	e.Step(time.Second)
	require.Equal(t, V(1, 0), e.Transform.Pos, "dying enemies do not move")
	require.False(t, e.AdvanceLifecycle(time.Second))
	require.True(t, e.AdvanceLifecycle(time.Second))

	e.SetTimeScale(0)
	e.OnAcquired()
	require.Equal(t, 1.0, e.TimeScale())
	require.Zero(t, e.Age())
	require.Equal(t, Alive, e.Lifecycle().State())
}

func TestEnemyReleaseClearsObservers(t *testing.T) {
	e := acquiredEnemy(t, 0, 0)
	e.Lifecycle().OnDeathComplete(func(*Enemy) {})
	e.OnReleased()
	e.SetActive(false)
	require.Zero(t, e.Lifecycle().Observers())
	require.False(t, e.CanCollide())

	e.OnDestroyed()
	require.True(t, e.Destroyed())
	require.Equal(t, fmt.Sprintf("zombie#%d", e.ID.Index()), e.String())
}

func TestBulletFlight(t *testing.T) {
	b := NewBullet(2, "arrow", data.BulletSpec{Speed: 10, Lifetime: 500 * time.Millisecond, Radius: 0.5})
	b.SetActive(true)
	b.OnAcquired()
	b.Launch(V(0, 0), V(3, 0), 4)

	for i := 0; i < 4; i++ {
		require.False(t, b.Step(100*time.Millisecond))
	}
	require.InDelta(t, 4, b.Transform.Pos.X, 1e-9)
	require.True(t, b.Step(100*time.Millisecond))
	require.False(t, b.Step(100*time.Millisecond))

	b.OnReleased()
	require.Zero(t, b.Remaining())
	require.Zero(t, b.Damage())
}

func TestBulletHits(t *testing.T) {
	e := acquiredEnemy(t, 0, time.Second)
	e.SetPosition(V(1, 0))

	b := NewBullet(2, "arrow", data.BulletSpec{Speed: 10, Lifetime: time.Second, Radius: 0.5})
	b.SetActive(true)
	b.OnAcquired()
	b.Launch(V(0, 0), V(1, 0), 4)
	require.True(t, b.Hits(e))

	b.Strike(e)
	require.Equal(t, 6.0, e.Health().Current())
	require.True(t, b.Spent())
	require.False(t, b.Hits(e), "a spent bullet hits nothing")

	b.OnAcquired()
	b.Launch(V(-5, 0), V(1, 0), 4)
	require.False(t, b.Hits(e), "out of range")

	b.Launch(V(1, 0), V(1, 0), 4)
	e.Lifecycle().Die()
	require.False(t, b.Hits(e), "dying enemies have no collider")
}

func TestClock(t *testing.T) {
	c := NewClock(time.Second, 3*time.Second)

	m, up := c.Advance(1500 * time.Millisecond)
	require.Equal(t, 1, m)
	require.False(t, up)

	c.Pause()
	m, _ = c.Advance(time.Hour)
	require.Zero(t, m)
	c.Resume()

	m, up = c.Advance(1500 * time.Millisecond)
	require.Equal(t, 2, m)
	require.True(t, up)
	require.Equal(t, 3, c.Minutes())

	m, up = c.Advance(time.Second)
	require.Zero(t, m)
	require.False(t, up)
	require.True(t, c.TimeUp())

	c.Reset()
	require.Zero(t, c.Elapsed())
	require.False(t, c.TimeUp())
}

func TestClockWithoutClearTime(t *testing.T) {
	c := NewClock(0, 0)
	m, up := c.Advance(2*time.Minute + time.Second)
	require.Equal(t, 2, m)
	require.False(t, up)
}

func TestTally(t *testing.T) {
	var tally Tally
	tally.Record(3, 10)
	tally.Record(2, 5)
	require.Equal(t, Tally{Kills: 2, Experience: 5, Score: 15}, tally)
	tally.Reset()
	require.Zero(t, tally.Kills)
}
