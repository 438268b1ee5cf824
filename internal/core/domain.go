package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the format every persisted row carries in its first
// column: day/month/year hour:minute:second.
const TimestampLayout = "02/01/2006 15:04:05"

var (
	ErrNoMatch                 = errors.New("message does not describe a transaction")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrEmptyPaymentMethod      = errors.New("empty payment method")
	ErrEmptyCategory           = errors.New("empty category")
	ErrEmptyDescription        = errors.New("empty description")
	ErrEmptyInvestmentCategory = errors.New("empty investment category")
)

type (
	// Transaction is one of the three mutually exclusive shapes a message
	// can describe: Expense, Credit or Investment.
	Transaction interface {
		Validate() error
		transaction()
	}

	Expense struct {
		Amount        float64
		PaymentMethod string
		Category      string
		Description   string
	}

	Credit struct {
		Amount float64
	}

	Investment struct {
		Amount   float64
		Category string
	}

	// LedgerRow is the persisted form of a transaction. All fields are
	// text-typed, matching the tabular store; exactly one of Amount,
	// CreditAmount and InvestmentAmount is non-empty per row.
	LedgerRow struct {
		Timestamp          string
		Amount             string
		PaymentMethod      string
		Category           string
		Description        string
		CreditAmount       string
		InvestmentAmount   string
		InvestmentCategory string
	}
)

func (Expense) transaction()    {}
func (Credit) transaction()     {}
func (Investment) transaction() {}

func (e Expense) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.PaymentMethod) == "" {
		return ErrEmptyPaymentMethod
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

func (c Credit) Validate() error {
	if c.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (i Investment) Validate() error {
	if i.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(i.Category) == "" {
		return ErrEmptyInvestmentCategory
	}
	return nil
}

// NormalizeLabel lowercases a label and strips its spaces, so "Cartão Visa"
// and "cartão visa" land in the same bucket when aggregating.
func NormalizeLabel(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// FormatAmount renders an amount the way rows store it, with two decimals
// and a dot separator.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// NewRow converts a validated transaction into its persisted form, stamped
// with the given time. Payment method and category labels are normalized;
// the free-text description is kept verbatim.
func NewRow(tx Transaction, at time.Time) (LedgerRow, error) {
	if err := tx.Validate(); err != nil {
		return LedgerRow{}, err
	}
	row := LedgerRow{Timestamp: at.Format(TimestampLayout)}
	switch t := tx.(type) {
	case Expense:
		row.Amount = FormatAmount(t.Amount)
		row.PaymentMethod = NormalizeLabel(t.PaymentMethod)
		row.Category = NormalizeLabel(t.Category)
		row.Description = t.Description
	case Credit:
		row.CreditAmount = FormatAmount(t.Amount)
	case Investment:
		row.InvestmentAmount = FormatAmount(t.Amount)
		row.InvestmentCategory = NormalizeLabel(t.Category)
	}
	return row, nil
}
