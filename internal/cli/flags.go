package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// decimalValue is a pflag.Value for money, rates and hours. Unlike budget
// entry, which coerces bad input to zero, flags reject malformed numbers.
type decimalValue struct {
	d *decimal.Decimal
}

var _ pflag.Value = decimalValue{}

func newDecimalValue(p *decimal.Decimal) decimalValue {
	return decimalValue{d: p}
}

func (v decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v decimalValue) Set(s string) error {
	d, err := domain.ParseAmountStrict(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (decimalValue) Type() string { return "decimal" }

func decimalFlag(fs *pflag.FlagSet, p *decimal.Decimal, name, usage string) {
	fs.Var(newDecimalValue(p), name, usage)
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: use YYYY-MM-DD", field, s)
	}
	return t, nil
}

func parseOptionalDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return parseDate(field, s)
}
