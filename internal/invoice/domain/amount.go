package domain

import "fmt"

// Amount is a decimal currency value in major units, held exactly as
// minor units so rounding at the cent boundary never drifts. Values
// with up to two fraction digits convert exactly; longer fractions
// round half-up at the cent.
type Amount struct {
	cents int64
}

// AmountFromCents wraps an already-normalized minor-unit value.
func AmountFromCents(cents int64) Amount {
	return Amount{cents: cents}
}

// ParseAmount coerces a raw form value. It accepts plain signed
// decimals ("25", "25.5", "-0.01"); anything else fails coercion.
func ParseAmount(raw string) (Amount, bool) {
	if raw == "" {
		return Amount{}, false
	}

	negative := false
	rest := raw
	switch rest[0] {
	case '+':
		rest = rest[1:]
	case '-':
		negative = true
		rest = rest[1:]
	}

	intPart := rest
	fracPart := ""
	for i := 0; i < len(rest); i++ {
		if rest[i] != '.' {
			continue
		}
		intPart = rest[:i]
		fracPart = rest[i+1:]
		break
	}
	if intPart == "" && fracPart == "" {
		return Amount{}, false
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return Amount{}, false
	}

	var major int64
	for i := 0; i < len(intPart); i++ {
		digit := int64(intPart[i] - '0')
		if major > (maxMajor-digit)/10 {
			return Amount{}, false
		}
		major = major*10 + digit
	}
	cents := major * 100

	if len(fracPart) > 0 {
		cents += int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) > 1 {
		cents += int64(fracPart[1] - '0')
	}
	// Half-up at the cent boundary.
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		cents++
	}

	if negative {
		cents = -cents
	}
	return Amount{cents: cents}, true
}

// Cents returns the minor-unit value, round(amount * 100).
func (a Amount) Cents() int64 {
	return a.cents
}

// Positive reports whether the amount is strictly greater than zero
// after normalization.
func (a Amount) Positive() bool {
	return a.cents > 0
}

func (a Amount) String() string {
	cents := a.cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// maxMajor keeps the minor-unit conversion clear of int64 overflow.
const maxMajor = (int64(1)<<62 - 1) / 100

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
