// Package stats turns a full ledger snapshot into summary totals and the
// named series consumed by the report renderer. Everything is recomputed
// from scratch on each call; there is no incremental state.
package stats

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"finbot/internal/core"
)

// NotApplicable is reported for the most-frequent-category fields when the
// respective partition is empty.
const NotApplicable = "N/A"

// Point is one step of the chronological cumulative series. Values are
// running sums up to and including this row.
type Point struct {
	Time        time.Time
	Credits     float64
	Debits      float64
	Investments float64
	NetWorth    float64
}

// Summary is the derived view over one snapshot. Map-typed series are nil
// when the partition feeding them is empty, so "no series" stays
// distinguishable from an all-zero series.
type Summary struct {
	TotalCredits     float64
	TotalDebits      float64
	TotalInvestments float64
	NetBalance       float64

	Transactions    int
	CreditCount     int
	DebitCount      int
	InvestmentCount int

	FirstDate time.Time
	LastDate  time.Time

	TopExpenseCategory    string
	TopInvestmentCategory string

	SpendingByCategory   map[string]float64 // debit rows, category -> sum
	PaymentMethodCounts  map[string]int     // debit rows, payment method -> row count
	InvestmentByCategory map[string]float64 // investment rows, category -> sum
	SpendingByMonth      map[string]float64 // debit rows, "2006-01" -> sum
	SpendingByDay        map[string]float64 // debit rows, "2006-01-02" -> sum
	NetWorth             []Point            // all rows, timestamp ascending

	// DegradedCells counts cells that could not be coerced and were
	// recovered to zero instead of failing the computation.
	DegradedCells int
}

type record struct {
	at     time.Time
	timed  bool
	debit  float64
	credit float64
	invest float64
	row    core.LedgerRow
}

// Build computes the summary for a snapshot. It never fails: malformed
// numeric cells degrade to zero, unparseable timestamps keep the row in
// the totals but out of the calendar groupings, and the empty snapshot
// yields a zero-valued summary with no series.
func Build(rows []core.LedgerRow) Summary {
	s := Summary{
		TopExpenseCategory:    NotApplicable,
		TopInvestmentCategory: NotApplicable,
	}
	if len(rows) == 0 {
		return s
	}

	records := make([]record, 0, len(rows))
	for _, row := range rows {
		rec := record{row: row}
		rec.debit = coerce(row.Amount, &s.DegradedCells)
		rec.credit = coerce(row.CreditAmount, &s.DegradedCells)
		rec.invest = coerce(row.InvestmentAmount, &s.DegradedCells)

		at, err := time.Parse(core.TimestampLayout, strings.TrimSpace(row.Timestamp))
		if err != nil {
			s.DegradedCells++
		} else {
			rec.at = at
			rec.timed = true
		}
		records = append(records, rec)
	}

	s.Transactions = len(records)

	categoryFreq := map[string]int{}
	investFreq := map[string]int{}

	for _, rec := range records {
		s.TotalDebits += rec.debit
		s.TotalCredits += rec.credit
		s.TotalInvestments += rec.invest

		if rec.timed {
			if s.FirstDate.IsZero() || rec.at.Before(s.FirstDate) {
				s.FirstDate = rec.at
			}
			if rec.at.After(s.LastDate) {
				s.LastDate = rec.at
			}
		}

		switch {
		case rec.debit > 0:
			s.DebitCount++
			addTo(&s.SpendingByCategory, rec.row.Category, rec.debit)
			if s.PaymentMethodCounts == nil {
				s.PaymentMethodCounts = map[string]int{}
			}
			s.PaymentMethodCounts[rec.row.PaymentMethod]++
			if rec.timed {
				addTo(&s.SpendingByMonth, rec.at.Format("2006-01"), rec.debit)
				addTo(&s.SpendingByDay, rec.at.Format("2006-01-02"), rec.debit)
			}
			if c := strings.TrimSpace(rec.row.Category); c != "" {
				categoryFreq[c]++
			}
		case rec.credit > 0:
			s.CreditCount++
		case rec.invest > 0:
			s.InvestmentCount++
			addTo(&s.InvestmentByCategory, rec.row.InvestmentCategory, rec.invest)
			if c := strings.TrimSpace(rec.row.InvestmentCategory); c != "" {
				investFreq[c]++
			}
		}
	}

	s.NetBalance = s.TotalCredits - s.TotalDebits - s.TotalInvestments
	s.TopExpenseCategory = mode(categoryFreq)
	s.TopInvestmentCategory = mode(investFreq)
	s.NetWorth = cumulative(records)

	return s
}

// cumulative sorts rows by timestamp ascending and produces the running
// credit/debit/investment sums with the derived net worth at each step.
// Untimed rows keep their snapshot order and sort before everything else.
func cumulative(records []record) []Point {
	ordered := make([]record, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].at.Before(ordered[j].at)
	})

	points := make([]Point, len(ordered))
	var credits, debits, investments float64
	for i, rec := range ordered {
		credits += rec.credit
		debits += rec.debit
		investments += rec.invest
		points[i] = Point{
			Time:        rec.at,
			Credits:     credits,
			Debits:      debits,
			Investments: investments,
			NetWorth:    credits - debits - investments,
		}
	}
	return points
}

// coerce converts a text cell to a number. Empty cells are simply zero;
// non-empty cells that fail to parse degrade to zero and are counted.
func coerce(cell string, degraded *int) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64)
	if err != nil {
		*degraded++
		return 0
	}
	return v
}

func addTo(m *map[string]float64, key string, v float64) {
	if *m == nil {
		*m = map[string]float64{}
	}
	(*m)[key] += v
}

// mode returns the most frequent key, breaking ties by the smaller key, or
// the NotApplicable sentinel for an empty frequency table.
func mode(freq map[string]int) string {
	best := NotApplicable
	bestCount := 0
	for k, n := range freq {
		if n > bestCount || (n == bestCount && bestCount > 0 && k < best) {
			best = k
			bestCount = n
		}
	}
	return best
}
