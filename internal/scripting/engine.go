package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for difficulty tuning.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script under
// scriptsDir/spawn. A missing directory leaves the Go fallbacks in charge.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.loadDir(filepath.Join(scriptsDir, "spawn")); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load spawn scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromSource loads a single chunk of Lua source.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load lua source: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// SpawnContext is the state handed to calc_spawn_stats.
type SpawnContext struct {
	Template string
	Elapsed  time.Duration // play time on the run clock
	Minute   int
	Active   int
	Kills    int
}

// SpawnStats are multipliers applied to a spawn entry's resolved stats.
type SpawnStats struct {
	HealthMult float64
	SpeedMult  float64
}

var defaultSpawnStats = SpawnStats{HealthMult: 1, SpeedMult: 1}

// CalcSpawnStats calls the Lua calc_spawn_stats function. Missing functions,
// script errors and non-positive results fall back to 1.0.
func (e *Engine) CalcSpawnStats(ctx SpawnContext) SpawnStats {
	fn := e.vm.GetGlobal("calc_spawn_stats")
	if fn == lua.LNil {
		return defaultSpawnStats
	}

	t := e.vm.NewTable()
	t.RawSetString("template", lua.LString(ctx.Template))
	t.RawSetString("elapsed", lua.LNumber(ctx.Elapsed.Seconds()))
	t.RawSetString("minute", lua.LNumber(ctx.Minute))
	t.RawSetString("active", lua.LNumber(ctx.Active))
	t.RawSetString("kills", lua.LNumber(ctx.Kills))

	rt, ok := e.call("calc_spawn_stats", fn, t)
	if !ok {
		return defaultSpawnStats
	}
	return SpawnStats{
		HealthMult: float64(positiveOr(lua.LVAsNumber(rt.RawGetString("health_mult")), 1)),
		SpeedMult:  float64(positiveOr(lua.LVAsNumber(rt.RawGetString("speed_mult")), 1)),
	}
}

// CalcSpawnInterval calls the Lua calc_spawn_interval function with the base
// interval in seconds. Falls back to base.
func (e *Engine) CalcSpawnInterval(minute int, base time.Duration) time.Duration {
	fn := e.vm.GetGlobal("calc_spawn_interval")
	if fn == lua.LNil {
		return base
	}

	t := e.vm.NewTable()
	t.RawSetString("minute", lua.LNumber(minute))
	t.RawSetString("base", lua.LNumber(base.Seconds()))

	rt, ok := e.call("calc_spawn_interval", fn, t)
	if !ok {
		return base
	}
	secs := float64(positiveOr(lua.LVAsNumber(rt.RawGetString("interval")), lua.LNumber(base.Seconds())))
	return time.Duration(secs * float64(time.Second))
}

func (e *Engine) call(name string, fn lua.LValue, arg *lua.LTable) (*lua.LTable, bool) {
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua "+name+" error", zap.Error(err))
		return nil, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua " + name + " returned non-table")
		return nil, false
	}
	return rt, true
}

func positiveOr(v, fallback lua.LNumber) lua.LNumber {
	if v <= 0 {
		return fallback
	}
	return v
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
