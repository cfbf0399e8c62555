package scripting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCalcSpawnStats(t *testing.T) {
	e, err := NewEngineFromSource(`
function calc_spawn_stats(ctx)
    if ctx.template == "broken" then
        return 5
    end
    return { health_mult = 1 + ctx.minute, speed_mult = ctx.active }
end`, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer e.Close()

	got := e.CalcSpawnStats(SpawnContext{Template: "zombie", Minute: 2, Active: 3})
	require.Equal(t, SpawnStats{HealthMult: 3, SpeedMult: 3}, got)

	got = e.CalcSpawnStats(SpawnContext{Template: "zombie", Minute: 0, Active: 0})
	require.Equal(t, SpawnStats{HealthMult: 1, SpeedMult: 1}, got, "non-positive speed falls back")

	got = e.CalcSpawnStats(SpawnContext{Template: "broken"})
	require.Equal(t, defaultSpawnStats, got)
}

func TestCalcFallbacks(t *testing.T) {
	e, err := NewEngineFromSource(`function calc_spawn_interval(ctx) error("boom") end`, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer e.Close()

	require.Equal(t, defaultSpawnStats, e.CalcSpawnStats(SpawnContext{}))
	require.Equal(t, 2*time.Second, e.CalcSpawnInterval(3, 2*time.Second))

	_, err = NewEngineFromSource(`function (`, zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestNewEngineLoadsSpawnDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "spawn"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spawn", "curve.lua"), []byte(`
function calc_spawn_interval(ctx)
    return { interval = ctx.base / 2 }
end`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spawn", "notes.txt"), []byte("not lua"), 0o644))

	e, err := NewEngine(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer e.Close()
	require.Equal(t, 500*time.Millisecond, e.CalcSpawnInterval(1, time.Second))

	empty, err := NewEngine(t.TempDir(), nil)
	require.NoError(t, err)
	defer empty.Close()
	require.Equal(t, time.Second, empty.CalcSpawnInterval(1, time.Second))
}

func TestBundledDifficultyScript(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer e.Close()

	start := e.CalcSpawnStats(SpawnContext{Minute: 0})
	require.InDelta(t, 1.0, start.HealthMult, 1e-9)
	require.InDelta(t, 1.0, start.SpeedMult, 1e-9)

	late := e.CalcSpawnStats(SpawnContext{Minute: 30, Active: 50})
	require.Greater(t, late.HealthMult, 5.0)
	require.InDelta(t, 1.6, late.SpeedMult, 1e-9)

	require.Equal(t, 200*time.Millisecond, e.CalcSpawnInterval(60, time.Second))
}
