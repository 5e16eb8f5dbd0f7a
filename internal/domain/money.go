package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ConversionError reports an input value that could not be coerced into an
// exact decimal.
type ConversionError struct {
	Value any
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert %v (%T) to decimal: %v", e.Value, e.Value, e.Err)
	}
	return fmt.Sprintf("cannot convert %v (%T) to decimal", e.Value, e.Value)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ParseDecimal coerces an acceptable numeric representation into an exact
// decimal. Monetary and rate quantities must enter the engine through this
// function (or already as decimal.Decimal) so that no binary floating point
// survives into the arithmetic.
func ParseDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int32:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case float32:
		return parseFloat(v, float64(n))
	case float64:
		return parseFloat(v, n)
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero, &ConversionError{Value: v, Err: err}
		}
		return d, nil
	default:
		return decimal.Zero, &ConversionError{Value: v}
	}
}

func parseFloat(orig any, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &ConversionError{Value: orig, Err: fmt.Errorf("not a finite number")}
	}
	return decimal.NewFromFloat(f), nil
}

// RoundMoney rounds a monetary amount to 2 decimal places. Applied only at
// result boundaries; intermediate arithmetic keeps full precision.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
