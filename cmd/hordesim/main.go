package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hordeloop/engine/internal/app"
	"github.com/hordeloop/engine/internal/config"
	"github.com/hordeloop/engine/internal/data"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// EnvTicks stops the loop after that many ticks when set.
const EnvTicks = "HORDELOOP_TICKS"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

var numbers = message.NewPrinter(language.English)

func printBanner(name string, seed string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             hordeloop  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      pooled horde simulation engine       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	if seed == "" {
		seed = "time"
	}
	fmt.Printf("  \033[1mrun:\033[0m %s \033[90m(seed: %s)\033[0m\n\n", name, seed)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := numbers.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	maxTicks, err := tickLimit()
	if err != nil {
		return err
	}

	printBanner(cfg.Engine.Name, cfg.Engine.Seed)

	// 3. Build the engine
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng, cleanup, err := app.InitializeEngine(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	defer cleanup()

	printSection("Data")
	printStat("enemy templates", eng.Templates.CountKind(data.KindEnemy))
	printStat("bullet templates", eng.Templates.CountKind(data.KindBullet))
	sum := eng.Summary()
	printStat("pooled enemies", sum.EnemyPooled)
	printStat("pooled bullets", sum.BulletPooled)
	if eng.Ledger.Enabled {
		printOK("death ledger connected")
	}
	fmt.Println()

	printSection("Ready")
	printReady(fmt.Sprintf("game loop (tick: %s, cap: %d)", cfg.Engine.TickRate, cfg.Spawn.MaxActive))
	if maxTicks > 0 {
		printReady(fmt.Sprintf("stopping after %s ticks", numbers.Sprintf("%d", maxTicks)))
	}
	fmt.Println()

	// 4. Ledger writer and game loop. The writer outlives the loop so the
	// final flush in Shutdown still reaches the database.
	var g errgroup.Group
	g.Go(func() error {
		return eng.Ledger.Writer.Run(context.Background())
	})
	g.Go(func() error {
		defer eng.Shutdown()
		return loop(ctx, eng, cfg.Engine.TickRate, maxTicks, log)
	})
	return g.Wait()
}

func loop(ctx context.Context, eng *app.Engine, tickRate time.Duration, maxTicks uint64, log *zap.Logger) error {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	eng.Start()
	for {
		select {
		case <-ticker.C:
			eng.Tick(tickRate)
			if last := eng.Systems.Runner.LastTick(); last > tickRate {
				log.Debug("tick overran budget", zap.Duration("took", last), zap.Duration("budget", tickRate))
			}
			if maxTicks > 0 && eng.Systems.Runner.Ticks() >= maxTicks {
				log.Info("tick limit reached", zap.Uint64("ticks", maxTicks))
				return nil
			}
			if eng.State.Clock.TimeUp() && eng.Controller.Active() == 0 {
				log.Info("run cleared")
				return nil
			}
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return nil
		}
	}
}

func tickLimit() (uint64, error) {
	raw := os.Getenv(EnvTicks)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", EnvTicks, err)
	}
	return n, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
