package timer

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCountdown(t *testing.T) {
	t.Run("Idle", func(t *testing.T) {
		var c Countdown
		require.False(t, c.Armed())
		require.False(t, c.Advance(time.Second))
	})

	t.Run("Expires Once", func(t *testing.T) {
		var c Countdown
		c.Start(time.Second)
		require.False(t, c.Advance(400*time.Millisecond))
		require.Equal(t, 600*time.Millisecond, c.Remaining())
		require.True(t, c.Advance(600*time.Millisecond))
		require.False(t, c.Armed())
		require.False(t, c.Advance(time.Second))
	})

	t.Run("Zero Duration Fires On Next Advance", func(t *testing.T) {
		var c Countdown
		c.Start(0)
		require.True(t, c.Armed())
		require.True(t, c.Advance(0))
	})

	t.Run("Cancel Prevents Expiry", func(t *testing.T) {
		var c Countdown
		c.Start(time.Second)
		c.Cancel()
		require.False(t, c.Armed())
		require.Zero(t, c.Remaining())
		require.False(t, c.Advance(2*time.Second))
	})

	t.Run("Restart Replaces Pending Run", func(t *testing.T) {
		var c Countdown
		c.Start(2 * time.Second)
		require.False(t, c.Advance(time.Second))
		c.Start(5 * time.Second)
		require.False(t, c.Advance(time.Second))
		require.Equal(t, 4*time.Second, c.Remaining())
	})
}

func TestScale(t *testing.T) {
	require.Equal(t, time.Duration(0), Scale(time.Second, 0))
	require.Equal(t, 500*time.Millisecond, Scale(time.Second, 0.5))
	require.Equal(t, 2*time.Second, Scale(time.Second, 2))
	require.Equal(t, time.Duration(0), Scale(time.Second, math.NaN()))
}
