package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// decimalValue is a pflag.Value for money amounts. Amounts are parsed
// exactly; "12.30" stays 12.30 rather than a float approximation.
type decimalValue struct {
	target *decimal.Decimal
	set    bool
}

var _ pflag.Value = (*decimalValue)(nil)

func newDecimalValue(target *decimal.Decimal) *decimalValue {
	return &decimalValue{target: target}
}

func (v *decimalValue) String() string {
	if v.target == nil || !v.set {
		return ""
	}
	return v.target.String()
}

func (v *decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	*v.target = d
	v.set = true
	return nil
}

func (v *decimalValue) Type() string { return "amount" }

// decimalFlag registers an amount flag on fs.
func decimalFlag(fs *pflag.FlagSet, target *decimal.Decimal, name, usage string) *decimalValue {
	v := newDecimalValue(target)
	fs.Var(v, name, usage)
	return v
}
