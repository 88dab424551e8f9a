package common

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"

	"github.com/shopspring/decimal"
)

const (
	TONDecimals     = 9 // TON has 9 decimals (nanoton)
	HistoryDecimals = 4 // history amounts are shown with 4 fractional digits
)

// plainDecimal is the only amount syntax accepted from users: digits with an
// optional fractional part, no sign, exponent or surrounding whitespace.
var plainDecimal = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// NanoToTON converts nanoton to a TON string with all 9 decimals
// Example: NanoToTON(24981836) = "0.024981836"
func NanoToTON(nano uint64) string {
	return nanoDecimal(nano).StringFixed(TONDecimals)
}

// FormatNano converts nanoton to a TON string rounded to places decimals.
// Values of any size are accepted.
// Example: FormatNano(big.NewInt(10000000), 4) = "0.0100"
func FormatNano(nano *big.Int, places int32) string {
	return decimal.NewFromBigInt(nano, -TONDecimals).StringFixed(places)
}

// ParseNano converts a TON string to nanoton without float precision loss.
// The value must be representable as a whole number of nanoton that fits
// in a uint64.
func ParseNano(s string) (uint64, error) {
	if s == "" {
		return 0, errors.New("empty amount")
	}
	if !plainDecimal.MatchString(s) {
		return 0, fmt.Errorf("amount %q is not a plain decimal number", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	nano := d.Shift(TONDecimals)
	if !nano.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than %d decimals", s, TONDecimals)
	}
	n := nano.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("amount %q is out of range", s)
	}
	return n.Uint64(), nil
}

// CompareAmounts compares two TON decimal string amounts without float precision loss.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareAmounts(a, b string) (int, error) {
	aVal, err := decimal.NewFromString(a)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := decimal.NewFromString(b)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	return aVal.Cmp(bVal), nil
}

// SumAmounts adds decimal string amounts and renders the total with places
// decimals. Amounts that do not parse are skipped.
func SumAmounts(places int32, amounts ...string) string {
	total := decimal.Zero
	for _, a := range amounts {
		d, err := decimal.NewFromString(a)
		if err != nil {
			continue
		}
		total = total.Add(d)
	}
	return total.StringFixed(places)
}

// MultiplyAmounts returns a*b rounded to places decimals. Used for display
// only, never for amounts that are signed.
func MultiplyAmounts(a, b string, places int32) (string, error) {
	aVal, err := decimal.NewFromString(a)
	if err != nil {
		return "", fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}
	bVal, err := decimal.NewFromString(b)
	if err != nil {
		return "", fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}
	return aVal.Mul(bVal).StringFixed(places), nil
}

func nanoDecimal(nano uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(nano), -TONDecimals)
}
