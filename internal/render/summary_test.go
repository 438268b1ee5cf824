package render

import (
	"strings"
	"testing"
	"time"

	"finbot/internal/core"
	"finbot/internal/stats"
)

func buildSummary(t *testing.T) stats.Summary {
	t.Helper()
	at := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	var rows []core.LedgerRow
	for _, tx := range []core.Transaction{
		core.Credit{Amount: 3000},
		core.Expense{Amount: 100.50, PaymentMethod: "Cartão Visa", Category: "Alimentação", Description: "supermercado"},
		core.Investment{Amount: 500, Category: "Renda Fixa"},
	} {
		row, err := core.NewRow(tx, at)
		if err != nil {
			t.Fatal(err)
		}
		rows = append(rows, row)
		at = at.Add(24 * time.Hour)
	}
	return stats.Build(rows)
}

func TestSummaryText(t *testing.T) {
	got := SummaryText(buildSummary(t))

	for _, want := range []string{
		"R$ 3000.00 (1 transações)",
		"R$ 100.50 (1 transações)",
		"R$ 500.00 (1 transações)",
		"Saldo líquido**: R$ 2399.50",
		"Total de transações**: 3",
		"15/01/2025 a 17/01/2025",
		"gasto mais frequente**: alimentação",
		"investimento mais frequente**: rendafixa",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestSummaryTextEmpty(t *testing.T) {
	got := SummaryText(stats.Build(nil))
	if got != noData {
		t.Errorf("empty summary = %q", got)
	}
}

func TestBreakdownText(t *testing.T) {
	got := BreakdownText(buildSummary(t))

	for _, want := range []string{
		"Gastos por categoria",
		"• alimentação: R$ 100.50",
		"• cartãovisa: 1 (100.0%)",
		"• rendafixa: R$ 500.00",
		"• 2025-01: R$ 100.50",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("breakdown missing %q:\n%s", want, got)
		}
	}
}

func TestBreakdownTextCreditsOnly(t *testing.T) {
	row, err := core.NewRow(core.Credit{Amount: 10}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	// Credits feed no grouped series, so there is nothing to break down.
	got := BreakdownText(stats.Build([]core.LedgerRow{row}))
	if got != "" {
		t.Errorf("credits-only breakdown = %q, want empty", got)
	}
}
