// Package backend selects and wires a ledger store from configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"finbot/internal/amqp"
	"finbot/internal/config"
	"finbot/internal/core"
	"finbot/internal/ledger"
	gsheet "finbot/internal/ledger/google"
	"finbot/internal/ledger/memory"
	"finbot/internal/storage"
)

// Open builds the configured ledger store. With the sqlite backend and an
// AMQP URL set, appended rows additionally enqueue a mirror message for
// the sheets worker.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ledger.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.LedgerBackend {
	case "sqlite":
		repo, err := storage.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite ledger: %w", err)
		}

		if cfg.AMQPURL == "" {
			logger.Info("Initialized sqlite ledger", "path", cfg.SQLiteDBPath)
			return repo, nil
		}

		queue, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// The ledger still works without the mirror; the worker's
			// startup check picks up rows appended in the meantime.
			logger.Warn("AMQP unavailable, continuing without mirror queue", "error", err)
			return repo, nil
		}
		logger.Info("Initialized sqlite ledger with mirror queue",
			"path", cfg.SQLiteDBPath,
			"exchange", cfg.AMQPExchange,
			"queue", cfg.AMQPQueue)
		return &mirroredStore{repo: repo, queue: queue}, nil

	case "sheets":
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets ledger: %w", err)
		}
		logger.Info("Initialized Google Sheets ledger", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		return cli, nil

	case "memory":
		logger.Info("Initialized in-memory ledger")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unsupported ledger backend: %s", cfg.LedgerBackend)
	}
}

// mirroredStore is a sqlite store that announces every append on the
// mirror queue.
type mirroredStore struct {
	repo  *storage.Repository
	queue *amqp.Client
}

var _ ledger.Store = (*mirroredStore)(nil)

func (s *mirroredStore) Append(ctx context.Context, row core.LedgerRow) (string, error) {
	id, err := s.repo.Insert(ctx, row)
	if err != nil {
		return "", err
	}
	if err := s.queue.PublishRowMirror(ctx, id); err != nil {
		// Row is persisted; the worker's startup check will mirror it.
		slog.WarnContext(ctx, "Failed to publish mirror message", "id", id, "error", err)
	}
	return fmt.Sprintf("sqlite:%d", id), nil
}

func (s *mirroredStore) Snapshot(ctx context.Context) ([]core.LedgerRow, error) {
	return s.repo.Snapshot(ctx)
}

func (s *mirroredStore) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func (s *mirroredStore) Close() error {
	s.queue.Close()
	return s.repo.Close()
}
