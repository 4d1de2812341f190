package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// amountCleaner strips grouping characters (space, NBSP, narrow NBSP) and
// unifies the decimal separator before parsing.
var amountCleaner = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", ",", ".")

// ParseAmount converts locale-variant numeric text into an exact decimal.
// Both "12 345,67" and "12345.67" parse to the same value. Empty or
// unparsable input yields zero; ParseAmount never fails.
func ParseAmount(s string) decimal.Decimal {
	s = amountCleaner.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// noneSentinel is how the upstream feed marks a field that exists but has
// not been filled in yet.
const noneSentinel = "None"

// Amount is a decimal value with explicit presence. Wire records mark
// absent values with blanks or a "None" marker; Amount replaces that string
// probing with a present/absent flag.
type Amount struct {
	Value   decimal.Decimal
	Present bool
}

// ParseOptionalAmount parses numeric text that may legitimately be absent.
// Blank input and the upstream not-ready marker yield an absent Amount.
func ParseOptionalAmount(s string) Amount {
	t := strings.TrimSpace(s)
	if t == "" || t == noneSentinel {
		return Amount{}
	}
	return Amount{Value: ParseAmount(t), Present: true}
}

// FormatMoney renders a money value with fixed two decimal places and space
// thousands grouping: 109999.5 becomes "109 999.50".
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(intPart[i])
	}
	out := b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// normalize lowercases and trims text for tolerant comparison of wallet
// names, goods names and direction hints.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
