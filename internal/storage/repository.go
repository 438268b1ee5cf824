// Package storage is the SQLite ledger backend. It doubles as the local
// source of truth when rows are mirrored to Google Sheets by the worker.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"finbot/internal/core"
	"finbot/internal/ledger"

	_ "modernc.org/sqlite"
)

var _ ledger.Store = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ledger.Appender. The row reference carries the database
// id so the mirror pipeline can address the row later.
func (r *Repository) Append(ctx context.Context, row core.LedgerRow) (string, error) {
	id, err := r.Insert(ctx, row)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("sqlite:%d", id), nil
}

// Insert persists one row and returns its id.
func (r *Repository) Insert(ctx context.Context, row core.LedgerRow) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO ledger_rows (
			recorded_at, amount, payment_method, category, description,
			credit_amount, investment_amount, investment_category
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row.Timestamp, row.Amount, row.PaymentMethod, row.Category, row.Description,
		row.CreditAmount, row.InvestmentAmount, row.InvestmentCategory)
	if err != nil {
		return 0, fmt.Errorf("insert ledger row: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// GetRow loads a single row by id.
func (r *Repository) GetRow(ctx context.Context, id int64) (core.LedgerRow, error) {
	var row core.LedgerRow
	err := r.db.QueryRowContext(ctx, `
		SELECT recorded_at, amount, payment_method, category, description,
		       credit_amount, investment_amount, investment_category
		FROM ledger_rows WHERE id = ?`, id).Scan(
		&row.Timestamp, &row.Amount, &row.PaymentMethod, &row.Category, &row.Description,
		&row.CreditAmount, &row.InvestmentAmount, &row.InvestmentCategory)
	if err != nil {
		return core.LedgerRow{}, fmt.Errorf("get ledger row %d: %w", id, err)
	}
	return row, nil
}

// Snapshot implements ledger.SnapshotReader, returning rows in append order.
func (r *Repository) Snapshot(ctx context.Context) ([]core.LedgerRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT recorded_at, amount, payment_method, category, description,
		       credit_amount, investment_amount, investment_category
		FROM ledger_rows ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	defer rows.Close()

	var out []core.LedgerRow
	for rows.Next() {
		var row core.LedgerRow
		if err := rows.Scan(
			&row.Timestamp, &row.Amount, &row.PaymentMethod, &row.Category, &row.Description,
			&row.CreditAmount, &row.InvestmentAmount, &row.InvestmentCategory); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot: %w", err)
	}
	return out, nil
}

// Clear implements ledger.Clearer, deleting every row.
func (r *Repository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM ledger_rows`); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	return nil
}

// Unmirrored returns ids of rows not yet copied to the mirror, oldest first.
func (r *Repository) Unmirrored(ctx context.Context, limit int) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM ledger_rows WHERE mirrored = 0 ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list unmirrored rows: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan unmirrored id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkMirrored records that a row has been copied to the mirror.
func (r *Repository) MarkMirrored(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE ledger_rows SET mirrored = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark row %d mirrored: %w", id, err)
	}
	return nil
}
