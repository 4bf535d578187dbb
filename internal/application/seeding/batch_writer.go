// internal/application/seeding/batch_writer.go
package seeding

import (
	"context"
	"fmt"

	"github.com/anarefin/prayer-time/internal/domain/common"
	"github.com/anarefin/prayer-time/internal/platform/logger"
)

// MaxBatchOps is the document database's per-batch write ceiling.
const MaxBatchOps = 500

// BatchWriter queues writes and commits every limit operations.
type BatchWriter struct {
	store   Store
	limit   int
	label   string
	log     logger.Logger
	batch   Batch
	commits int
	written int
}

// NewBatchWriter returns a writer; limits outside (0, MaxBatchOps] become MaxBatchOps.
// label names the documents in progress lines ("districts", "areas", ...).
func NewBatchWriter(store Store, limit int, label string, log logger.Logger) *BatchWriter {
	if limit <= 0 || limit > MaxBatchOps {
		limit = MaxBatchOps
	}
	if log == nil {
		log = logger.Discard()
	}
	return &BatchWriter{store: store, limit: limit, label: label, log: log}
}

// Set queues one write and commits when the batch is full.
func (w *BatchWriter) Set(ctx context.Context, collection, id string, fields common.Fields) error {
	if w.batch == nil {
		w.batch = w.store.NewBatch()
	}
	w.batch.Set(collection, id, fields)
	w.written++

	if w.batch.Len() >= w.limit {
		if err := w.commit(ctx); err != nil {
			return err
		}
		w.log.Infof("✓ Committed batch (%d %s so far)", w.written, w.label)
	}
	return nil
}

// Flush commits any pending writes.
func (w *BatchWriter) Flush(ctx context.Context) error {
	if w.batch == nil || w.batch.Len() == 0 {
		return nil
	}
	return w.commit(ctx)
}

func (w *BatchWriter) commit(ctx context.Context) error {
	n := w.batch.Len()
	if err := w.batch.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch of %d %s: %w", n, w.label, err)
	}
	w.commits++
	w.batch = nil
	return nil
}

// Commits returns the number of successful batch commits.
func (w *BatchWriter) Commits() int { return w.commits }

// Written returns the number of queued writes, committed or not.
func (w *BatchWriter) Written() int { return w.written }
