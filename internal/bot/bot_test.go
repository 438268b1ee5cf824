package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"finbot/internal/ledger/memory"
)

func newTestBot(t *testing.T) (*Bot, *memory.Store) {
	t.Helper()
	store := memory.New()
	b := New(nil, store, time.UTC, nil)
	b.now = func() time.Time { return time.Date(2025, 7, 20, 14, 30, 0, 0, time.UTC) }
	return b, store
}

func TestHandleTextExpense(t *testing.T) {
	b, store := newTestBot(t)
	ctx := context.Background()

	reply := b.HandleText(ctx, "100.50 - Cartão Visa - Alimentação (supermercado)")
	if !strings.Contains(reply, "Despesa registrada") {
		t.Fatalf("unexpected reply: %q", reply)
	}
	for _, want := range []string{"R$ 100.50", "Cartão Visa", "Alimentação", "supermercado"} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q: %q", want, reply)
		}
	}

	rows, _ := store.Snapshot(ctx)
	if len(rows) != 1 {
		t.Fatalf("store has %d rows", len(rows))
	}
	if rows[0].Timestamp != "20/07/2025 14:30:00" || rows[0].Amount != "100.50" {
		t.Errorf("persisted row: %+v", rows[0])
	}
}

func TestHandleTextCreditAndInvestment(t *testing.T) {
	b, store := newTestBot(t)
	ctx := context.Background()

	if reply := b.HandleText(ctx, "1500,00 - credito"); !strings.Contains(reply, "Crédito registrado") {
		t.Errorf("credit reply: %q", reply)
	}
	reply := b.HandleText(ctx, "1000,00 - investimento - Ações - Banco do Brasil")
	if !strings.Contains(reply, "Investimento registrado") || !strings.Contains(reply, "Ações - Banco do Brasil") {
		t.Errorf("investment reply: %q", reply)
	}

	rows, _ := store.Snapshot(ctx)
	if len(rows) != 2 {
		t.Fatalf("store has %d rows", len(rows))
	}
	if rows[0].CreditAmount != "1500.00" || rows[1].InvestmentAmount != "1000.00" {
		t.Errorf("rows: %+v", rows)
	}
}

func TestHandleTextRejection(t *testing.T) {
	b, store := newTestBot(t)
	ctx := context.Background()

	reply := b.HandleText(ctx, "100.50 - Cartão")
	if reply != invalidFormatMessage {
		t.Errorf("unexpected reply: %q", reply)
	}
	rows, _ := store.Snapshot(ctx)
	if len(rows) != 0 {
		t.Errorf("rejected message was persisted: %+v", rows)
	}
}

func TestHandleCommandStatistics(t *testing.T) {
	b, _ := newTestBot(t)
	ctx := context.Background()

	replies := b.HandleCommand(ctx, "statistics")
	if len(replies) != 1 || replies[0] != noDataMessage {
		t.Fatalf("empty ledger replies: %v", replies)
	}

	b.HandleText(ctx, "1500.00 - credito")
	b.HandleText(ctx, "100.50 - Cartão Visa - Alimentação (supermercado)")

	replies = b.HandleCommand(ctx, "statistics")
	if len(replies) != 2 {
		t.Fatalf("expected summary and breakdown, got %d replies", len(replies))
	}
	if !strings.Contains(replies[0], "RESUMO FINANCEIRO PESSOAL") ||
		!strings.Contains(replies[0], "Saldo líquido**: R$ 1399.50") {
		t.Errorf("summary reply: %q", replies[0])
	}
	if !strings.Contains(replies[1], "Gastos por categoria") {
		t.Errorf("breakdown reply: %q", replies[1])
	}
}

func TestHandleCommandStatisticsCreditsOnly(t *testing.T) {
	b, _ := newTestBot(t)
	ctx := context.Background()

	b.HandleText(ctx, "1500.00 - credito")

	// No grouped series exist, so only the summary goes out.
	replies := b.HandleCommand(ctx, "statistics")
	if len(replies) != 1 {
		t.Fatalf("expected summary only, got %d replies: %v", len(replies), replies)
	}
	if !strings.Contains(replies[0], "RESUMO FINANCEIRO PESSOAL") {
		t.Errorf("summary reply: %q", replies[0])
	}
}

func TestHandleCommandClearTable(t *testing.T) {
	b, store := newTestBot(t)
	ctx := context.Background()

	b.HandleText(ctx, "10 - credito")
	replies := b.HandleCommand(ctx, "clearTable")
	if len(replies) != 1 || replies[0] != clearedMessage {
		t.Fatalf("clear replies: %v", replies)
	}
	rows, _ := store.Snapshot(ctx)
	if len(rows) != 0 {
		t.Errorf("clear left %d rows", len(rows))
	}
}

func TestHandleCommandUnknown(t *testing.T) {
	b, _ := newTestBot(t)
	replies := b.HandleCommand(context.Background(), "banana")
	if len(replies) != 1 || replies[0] != unknownCommandMessage {
		t.Errorf("unknown command replies: %v", replies)
	}
}

func TestHandleCommandStart(t *testing.T) {
	b, _ := newTestBot(t)
	replies := b.HandleCommand(context.Background(), "start")
	if len(replies) != 1 || !strings.Contains(replies[0], "Como usar") {
		t.Errorf("start replies: %v", replies)
	}
}
