package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// DeathRow is one completed enemy death in the ledger.
type DeathRow struct {
	RunID      uuid.UUID
	EntityID   uint64
	Template   string
	Lifetime   time.Duration
	Experience int
	Score      int
	DiedAt     time.Time
}

type DeathRepo struct {
	db *DB
}

func NewDeathRepo(db *DB) *DeathRepo {
	return &DeathRepo{db: db}
}

const insertDeath = `INSERT INTO death_log (run_id, entity_id, template, lifetime_ms, experience, score, died_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// InsertDeaths writes a batch of rows in one round trip inside a transaction.
func (r *DeathRepo) InsertDeaths(ctx context.Context, rows []DeathRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("death log begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(insertDeath,
			pgtype.UUID{Bytes: row.RunID, Valid: true},
			int64(row.EntityID),
			row.Template,
			row.Lifetime.Milliseconds(),
			row.Experience,
			row.Score,
			row.DiedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("death log insert: %w", err)
	}
	return tx.Commit(ctx)
}
