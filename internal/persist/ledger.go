package persist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sink stores ledger batches. *DeathRepo is the production sink.
type Sink interface {
	InsertDeaths(ctx context.Context, rows []DeathRow) error
}

// Recorder buffers death rows on the game loop until the next flush.
type Recorder struct {
	runID uuid.UUID
	rows  []DeathRow
	now   func() time.Time
}

func NewRecorder(runID uuid.UUID) *Recorder {
	return &Recorder{runID: runID, now: time.Now}
}

// Record appends one death, stamped with the run ID and wall time.
func (r *Recorder) Record(entityID uint64, template string, lifetime time.Duration, exp, score int) {
	r.rows = append(r.rows, DeathRow{
		RunID:      r.runID,
		EntityID:   entityID,
		Template:   template,
		Lifetime:   lifetime,
		Experience: exp,
		Score:      score,
		DiedAt:     r.now(),
	})
}

// Drain hands over the buffered rows. The returned slice is owned by the
// caller; the recorder starts a new buffer.
func (r *Recorder) Drain() []DeathRow {
	if len(r.rows) == 0 {
		return nil
	}
	out := r.rows
	r.rows = make([]DeathRow, 0, cap(out))
	return out
}

func (r *Recorder) Pending() int     { return len(r.rows) }
func (r *Recorder) RunID() uuid.UUID { return r.runID }

// Writer moves batches from the game loop to a Sink on its own goroutine.
// The game loop never blocks on it: a full queue drops the batch.
type Writer struct {
	sink    Sink
	queue   chan []DeathRow
	timeout time.Duration
	log     *zap.Logger

	dropped int // game loop side
}

func NewWriter(sink Sink, queueSize int, log *zap.Logger) *Writer {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Writer{
		sink:    sink,
		queue:   make(chan []DeathRow, queueSize),
		timeout: 5 * time.Second,
		log:     log,
	}
}

// Submit queues a batch without blocking. It reports false when the batch
// was dropped.
func (w *Writer) Submit(rows []DeathRow) bool {
	if len(rows) == 0 {
		return true
	}
	select {
	case w.queue <- rows:
		return true
	default:
		w.dropped += len(rows)
		w.log.Warn("death ledger queue full, batch dropped",
			zap.Int("rows", len(rows)), zap.Int("dropped_total", w.dropped))
		return false
	}
}

// Close stops accepting batches. Run drains what is queued, then returns.
func (w *Writer) Close() {
	close(w.queue)
}

// Run writes queued batches until Close or ctx is done; on either it first
// writes whatever is already queued. Sink errors are logged and the batch is
// discarded.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain(ctx)
			return nil
		case rows, ok := <-w.queue:
			if !ok {
				return nil
			}
			w.write(ctx, rows)
		}
	}
}

func (w *Writer) drain(ctx context.Context) {
	for {
		select {
		case rows, ok := <-w.queue:
			if !ok {
				return
			}
			w.write(ctx, rows)
		default:
			return
		}
	}
}

func (w *Writer) write(ctx context.Context, rows []DeathRow) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
	defer cancel()
	if err := w.sink.InsertDeaths(wctx, rows); err != nil {
		w.log.Error("death ledger write failed", zap.Int("rows", len(rows)), zap.Error(err))
		return
	}
	w.log.Debug("death ledger written", zap.Int("rows", len(rows)))
}

func (w *Writer) Dropped() int { return w.dropped }
