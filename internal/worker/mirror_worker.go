// Package worker copies ledger rows from the local SQLite store to the
// Google Sheets mirror, driven by AMQP messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finbot/internal/amqp"
	"finbot/internal/core"
	"finbot/internal/ledger"
)

// RowSource is the slice of the SQLite repository the worker needs.
type RowSource interface {
	GetRow(ctx context.Context, id int64) (core.LedgerRow, error)
	Unmirrored(ctx context.Context, limit int) ([]int64, error)
	MarkMirrored(ctx context.Context, id int64) error
}

type MirrorWorker struct {
	source    RowSource
	sink      ledger.Appender
	batchSize int
}

func NewMirrorWorker(source RowSource, sink ledger.Appender, batchSize int) *MirrorWorker {
	if batchSize < 1 {
		batchSize = 10
	}
	return &MirrorWorker{source: source, sink: sink, batchSize: batchSize}
}

// HandleMirrorMessage is the AMQP consumer callback. Returning an error
// requeues the message.
func (w *MirrorWorker) HandleMirrorMessage(msg *amqp.RowMirrorMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return w.mirror(ctx, msg.ID)
}

func (w *MirrorWorker) mirror(ctx context.Context, id int64) error {
	row, err := w.source.GetRow(ctx, id)
	if err != nil {
		return fmt.Errorf("load row %d: %w", id, err)
	}

	ref, err := w.sink.Append(ctx, row)
	if err != nil {
		return fmt.Errorf("append row %d to mirror: %w", id, err)
	}

	if err := w.source.MarkMirrored(ctx, id); err != nil {
		// The row is in the mirror; failing here would duplicate it on
		// requeue. Log and move on.
		slog.ErrorContext(ctx, "Row mirrored but not marked", "id", id, "ref", ref, "error", err)
		return nil
	}

	slog.InfoContext(ctx, "Row copied to mirror", "id", id, "ref", ref)
	return nil
}

// StartupCheck mirrors rows that were appended while no worker was
// running. It drains the backlog in batches and stops on the first error,
// leaving the rest for the next run. Each row is attempted at most once
// per pass: a row that mirrors but cannot be marked stays unmirrored in
// the store and would otherwise be re-fetched forever.
func (w *MirrorWorker) StartupCheck(ctx context.Context) error {
	attempted := make(map[int64]bool)
	total := 0
	for {
		ids, err := w.source.Unmirrored(ctx, w.batchSize)
		if err != nil {
			return fmt.Errorf("list unmirrored rows: %w", err)
		}
		progress := false
		for _, id := range ids {
			if attempted[id] {
				continue
			}
			attempted[id] = true
			progress = true
			if err := w.mirror(ctx, id); err != nil {
				return err
			}
			total++
		}
		if !progress {
			break
		}
	}
	if total > 0 {
		slog.InfoContext(ctx, "Startup mirror check completed", "rows", total)
	}
	return nil
}
