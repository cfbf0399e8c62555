package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/hordeloop/engine/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	appName          = "hordeloop-ledger"
	pingAttempts     = 3
	pingTimeout      = 5 * time.Second
	pingBackoff      = 500 * time.Millisecond
	healthCheckEvery = time.Minute
)

// DB owns the connection pool behind the death ledger.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

func NewDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(max(cfg.MaxOpenConns, 1))
	poolCfg.MinConns = int32(min(cfg.MaxIdleConns, cfg.MaxOpenConns))
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	poolCfg.HealthCheckPeriod = healthCheckEvery
	poolCfg.ConnConfig.RuntimeParams["application_name"] = appName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	db := &DB{Pool: pool, log: log}
	if err := db.ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("death ledger database connected",
		zap.Int32("max_conns", poolCfg.MaxConns),
		zap.Int32("min_conns", poolCfg.MinConns))
	return db, nil
}

// ping retries briefly; the ledger is often started alongside its database.
func (db *DB) ping(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.Pool.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		db.log.Warn("death ledger ping failed", zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return fmt.Errorf("ping db: %w", ctx.Err())
		case <-time.After(pingBackoff * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("ping db: %w", err)
}

func (db *DB) Close() {
	db.Pool.Close()
	db.log.Debug("death ledger database closed")
}
