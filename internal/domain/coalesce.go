package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// maxAmountExponent bounds the scale of accepted amounts. Larger exponents
// parse fine but make every later rounding or formatting call unbounded.
const maxAmountExponent = 20

// ParseAmountStrict parses a user-entered amount. A leading currency symbol
// and thousands separators are tolerated; anything else, including scientific
// notation beyond maxAmountExponent, is an error.
func ParseAmountStrict(s string) (decimal.Decimal, error) {
	clean := strings.TrimLeft(strings.TrimSpace(s), "$€£")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, fmt.Errorf("invalid amount %q: exponent out of range", s)
	}
	return d, nil
}

// ParseAmount coerces free-form numeric input into a decimal. Malformed,
// empty or out-of-range input yields zero so budget entry stays usable with
// incomplete data.
func ParseAmount(s string) decimal.Decimal {
	d, err := ParseAmountStrict(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DecimalOr returns the wrapped value of d when valid, otherwise fallback.
func DecimalOr(d decimal.NullDecimal, fallback decimal.Decimal) decimal.Decimal {
	if d.Valid {
		return d.Decimal
	}
	return fallback
}

// SumAmounts totals the projected amounts of items.
func SumAmounts(items []BudgetItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}
