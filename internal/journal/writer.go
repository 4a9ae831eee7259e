package journal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WriterConfig holds batching settings.
type WriterConfig struct {
	BatchSize     int
	FlushInterval time.Duration
}

// WriterMetrics counts writer activity.
type WriterMetrics struct {
	Inserts int64
	Flushes int64
	Errors  int64
}

// Writer drains the queue and writes entries to the auction_journal table
// in batches.
type Writer struct {
	cfg    WriterConfig
	input  *Queue
	db     *pgxpool.Pool
	logger *slog.Logger

	flushTicker *time.Ticker

	mu      sync.Mutex
	metrics WriterMetrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWriter creates a Writer consuming from input.
func NewWriter(cfg WriterConfig, input *Queue, db *pgxpool.Pool, logger *slog.Logger) *Writer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		cfg:    cfg,
		input:  input,
		db:     db,
		logger: logger,
	}
}

// Start begins periodic flushing.
func (w *Writer) Start(ctx context.Context) error {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.flushTicker = time.NewTicker(w.cfg.FlushInterval)

	w.wg.Add(1)
	go w.flushLoop()

	w.logger.Info("journal writer started",
		"batch_size", w.cfg.BatchSize,
		"flush_interval", w.cfg.FlushInterval,
	)
	return nil
}

// Stop drains what is left and shuts down.
func (w *Writer) Stop(ctx context.Context) error {
	w.logger.Info("stopping journal writer")

	if w.cancel != nil {
		w.cancel()
	}
	if w.flushTicker != nil {
		w.flushTicker.Stop()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		w.logger.Warn("journal writer stop timed out")
	}

	w.input.Close()
	w.flushAll(context.Background())

	w.logger.Info("journal writer stopped")
	return nil
}

// Stats returns current metrics.
func (w *Writer) Stats() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

func (w *Writer) flushLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.flushTicker.C:
			w.flushAll(w.ctx)
		}
	}
}

// flushAll drains the queue batch by batch until it is empty.
func (w *Writer) flushAll(ctx context.Context) {
	for {
		batch := w.input.Drain(w.cfg.BatchSize)
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := w.batchInsert(ctx, batch); err != nil {
			w.logger.Error("journal batch insert failed", "error", err, "count", len(batch))
			w.mu.Lock()
			w.metrics.Errors++
			w.mu.Unlock()
			return
		}

		w.mu.Lock()
		w.metrics.Inserts += int64(len(batch))
		w.metrics.Flushes++
		w.mu.Unlock()

		w.logger.Debug("flushed journal entries",
			"count", len(batch),
			"duration", time.Since(start),
		)
	}
}

func (w *Writer) batchInsert(ctx context.Context, entries []Entry) error {
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO auction_journal (chat_id, auction_id, kind, price, detail, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, e.ChatID, e.AuctionID, e.Kind, e.Price, e.Detail, e.RecordedAt)
	}

	results := w.db.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}
