package google

import (
	"strings"
	"testing"

	"finbot/internal/core"
)

func TestRowsFromValues(t *testing.T) {
	values := [][]any{
		{"20/07/2025 14:30:00", "100.50", "cartãovisa", "alimentação", "supermercado", "", "", ""},
		// Trailing empty cells are omitted by the API; pad them back.
		{"21/07/2025 09:00:00", "", "", "", "", "1500.00"},
		{"22/07/2025 10:15:00"},
		// Numeric cells come back as float64 under USER_ENTERED.
		{"23/07/2025 08:00:00", 42.5, "pix", "lazer", "  cinema  "},
	}

	rows, err := rowsFromValues(values)
	if err != nil {
		t.Fatalf("rowsFromValues: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	if rows[0].Amount != "100.50" || rows[0].PaymentMethod != "cartãovisa" || rows[0].Description != "supermercado" {
		t.Errorf("full row mapped wrong: %+v", rows[0])
	}
	if rows[1].CreditAmount != "1500.00" || rows[1].InvestmentCategory != "" {
		t.Errorf("short row not padded: %+v", rows[1])
	}
	if rows[2] != (core.LedgerRow{Timestamp: "22/07/2025 10:15:00"}) {
		t.Errorf("timestamp-only row: %+v", rows[2])
	}
	if rows[3].Amount != "42.5" || rows[3].Description != "cinema" {
		t.Errorf("numeric/whitespace cells not normalized: %+v", rows[3])
	}
}

func TestRowsFromValuesEmpty(t *testing.T) {
	rows, err := rowsFromValues(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows from empty range", len(rows))
	}
}

func TestRowsFromValuesRejectsWideRow(t *testing.T) {
	values := [][]any{
		{"20/07/2025 14:30:00", "100.50", "pix", "lazer", "cinema", "", "", ""},
		{"21/07/2025 14:30:00", "1", "2", "3", "4", "5", "6", "7", "extra"},
	}
	_, err := rowsFromValues(values)
	if err == nil {
		t.Fatal("expected error for row wider than the schema")
	}
	// Row numbering is sheet-relative: data starts at row 2.
	if !strings.Contains(err.Error(), "row 3") || !strings.Contains(err.Error(), "9 columns") {
		t.Errorf("error = %v", err)
	}
}
