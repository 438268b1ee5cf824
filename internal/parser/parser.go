package parser

import (
	"regexp"
	"strconv"
	"strings"

	"finbot/internal/core"
)

// The three message shapes, tried in this order. Order matters: a credit
// line must never be read as an expense, and an investment line may carry
// hyphens inside its category, so the greedier expense shape goes last.
var (
	creditPattern     = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d{1,2})?)\s*-\s*credito\s*$`)
	investmentPattern = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d{1,2})?)\s*-\s*investimento\s*-\s*(.+?)\s*$`)
	expensePattern    = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d{1,2})?)\s*-\s*([^-()]+?)\s*-\s*([^-()]+?)\s*\(([^)]+)\)\s*$`)
)

// Parse classifies one line of free text into exactly one transaction shape.
// Lines that match no shape, carry a malformed amount, or leave a required
// field empty after trimming are all rejected with core.ErrNoMatch; callers
// only distinguish "valid transaction" from "could not parse".
func Parse(text string) (core.Transaction, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, core.ErrNoMatch
	}

	if m := creditPattern.FindStringSubmatch(text); m != nil {
		amount, err := parseAmount(m[1])
		if err != nil {
			return nil, core.ErrNoMatch
		}
		return validated(core.Credit{Amount: amount})
	}

	if m := investmentPattern.FindStringSubmatch(text); m != nil {
		amount, err := parseAmount(m[1])
		if err != nil {
			return nil, core.ErrNoMatch
		}
		return validated(core.Investment{
			Amount:   amount,
			Category: strings.TrimSpace(m[2]),
		})
	}

	if m := expensePattern.FindStringSubmatch(text); m != nil {
		amount, err := parseAmount(m[1])
		if err != nil {
			return nil, core.ErrNoMatch
		}
		return validated(core.Expense{
			Amount:        amount,
			PaymentMethod: strings.TrimSpace(m[2]),
			Category:      strings.TrimSpace(m[3]),
			Description:   strings.TrimSpace(m[4]),
		})
	}

	return nil, core.ErrNoMatch
}

// validated collapses post-match validation failures into the single
// rejection outcome.
func validated(tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return nil, core.ErrNoMatch
	}
	return tx, nil
}

// parseAmount normalizes the decimal separator to a dot before conversion,
// so "50,00" and "50.00" parse to the same value.
func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
