package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleSession is a retail point-of-sale run (merch table, book stall)
// associated either directly with a project or with one of its occurrences.
type SaleSession struct {
	ID              string
	Name            string
	AssociationType AssociationType
	ProjectID       string
	EventID         string
	ExpectedRevenue decimal.Decimal
}

type SalesTransaction struct {
	ID            string
	SaleSessionID string
	Total         decimal.Decimal
	RecordedAt    time.Time
}

// SalesFigures pairs estimated and actual retail revenue.
type SalesFigures struct {
	Estimated decimal.Decimal
	Actual    decimal.Decimal
}

// Equal compares by numeric value, so 100 and 100.00 are equal.
func (f SalesFigures) Equal(o SalesFigures) bool {
	return f.Estimated.Equal(o.Estimated) && f.Actual.Equal(o.Actual)
}
