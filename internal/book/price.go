package book

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price is an amount stored in minor currency units (cents). The
// presentation layer divides by 100 on the way out and multiplies on the
// way in; use Format and ParsePrice at that boundary.
type Price int64

// Format renders the presented value with two decimals, e.g. 1050 -> "10.50".
func (p Price) Format() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (p Price) String() string {
	return p.Format()
}

// ParsePrice converts a presented decimal string into minor units without
// going through floating point. "10.5", "10.50" and "10" are accepted;
// negative values and more than two fraction digits are rejected.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("price %q must not be negative", s)
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (frac == "" || len(frac) > 2) {
		return 0, fmt.Errorf("price %q must have one or two decimals", s)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if units > (math.MaxInt64-cents)/100 {
		return 0, fmt.Errorf("price %q is out of range", s)
	}

	return Price(units*100 + cents), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
