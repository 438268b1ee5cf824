// Package ledger defines the outbound ports for the persisted row
// collection. The append-only tabular store is an external collaborator;
// adapters live in subpackages and in internal/storage.
package ledger

import (
	"context"

	"finbot/internal/core"
)

type (
	// Appender persists one row and returns a backend-specific reference
	// to it.
	Appender interface {
		Append(ctx context.Context, row core.LedgerRow) (rowRef string, err error)
	}

	// SnapshotReader returns the full current snapshot of the ledger,
	// header excluded, in append order.
	SnapshotReader interface {
		Snapshot(ctx context.Context) ([]core.LedgerRow, error)
	}

	// Clearer deletes every data row. The only supported mutations on the
	// ledger are append and full reset.
	Clearer interface {
		Clear(ctx context.Context) error
	}

	// Store is what the transport layer needs from a backend.
	Store interface {
		Appender
		SnapshotReader
		Clearer
		Close() error
	}
)
