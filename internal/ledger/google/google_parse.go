package google

import (
	"fmt"
	"strings"

	"finbot/internal/core"
)

// rowsFromValues converts a values matrix (as returned by the Sheets API
// for the A2:H data range) into ledger rows. Short rows are padded with
// empty cells; a row wider than the schema means the worksheet no longer
// matches the column contract and fails the whole read. Cell numbering in
// errors is sheet-relative, so the first data row is row 2.
func rowsFromValues(values [][]any) ([]core.LedgerRow, error) {
	rows := make([]core.LedgerRow, 0, len(values))
	for i, raw := range values {
		if len(raw) > len(header) {
			return nil, fmt.Errorf("row %d has %d columns, expected at most %d", i+2, len(raw), len(header))
		}
		cells := make([]string, len(header))
		for j, v := range raw {
			cells[j] = strings.TrimSpace(fmt.Sprint(v))
		}
		rows = append(rows, core.LedgerRow{
			Timestamp:          cells[0],
			Amount:             cells[1],
			PaymentMethod:      cells[2],
			Category:           cells[3],
			Description:        cells[4],
			CreditAmount:       cells[5],
			InvestmentAmount:   cells[6],
			InvestmentCategory: cells[7],
		})
	}
	return rows, nil
}
