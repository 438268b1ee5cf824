package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"finbot/internal/core"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAppendAndSnapshot(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	expense, err := core.NewRow(core.Expense{
		Amount: 100.50, PaymentMethod: "Cartão Visa", Category: "Alimentação", Description: "supermercado",
	}, at)
	if err != nil {
		t.Fatal(err)
	}
	credit, err := core.NewRow(core.Credit{Amount: 1500}, at.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	ref, err := repo.Append(ctx, expense)
	if err != nil {
		t.Fatalf("append expense: %v", err)
	}
	if ref != "sqlite:1" {
		t.Errorf("row ref = %q", ref)
	}
	if _, err := repo.Append(ctx, credit); err != nil {
		t.Fatalf("append credit: %v", err)
	}

	rows, err := repo.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("snapshot has %d rows, want 2", len(rows))
	}
	if rows[0].Amount != "100.50" || rows[0].PaymentMethod != "cartãovisa" || rows[0].CreditAmount != "" {
		t.Errorf("expense row persisted wrong: %+v", rows[0])
	}
	if rows[1].CreditAmount != "1500.00" || rows[1].Amount != "" {
		t.Errorf("credit row persisted wrong: %+v", rows[1])
	}
}

func TestClear(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	row, _ := core.NewRow(core.Credit{Amount: 10}, time.Now())
	if _, err := repo.Append(ctx, row); err != nil {
		t.Fatal(err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	rows, err := repo.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("clear left %d rows", len(rows))
	}
}

func TestMirrorBookkeeping(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	row, _ := core.NewRow(core.Investment{Amount: 500, Category: "Renda Fixa"}, time.Now())
	id, err := repo.Insert(ctx, row)
	if err != nil {
		t.Fatal(err)
	}

	ids, err := repo.Unmirrored(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != id {
		t.Fatalf("unmirrored = %v, want [%d]", ids, id)
	}

	got, err := repo.GetRow(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.InvestmentAmount != "500.00" || got.InvestmentCategory != "rendafixa" {
		t.Errorf("row loaded wrong: %+v", got)
	}

	if err := repo.MarkMirrored(ctx, id); err != nil {
		t.Fatal(err)
	}
	ids, err = repo.Unmirrored(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("still unmirrored after mark: %v", ids)
	}
}
