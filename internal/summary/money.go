package summary

import (
	"fmt"
	"math"
	"strings"
)

// FormatEUR renders an amount as a euro display string: two decimals,
// half-up rounding, comma-grouped thousands ("€1,234.50"). Formatting is the
// only place amounts are rounded; the calculator keeps exact values so
// repeated summation does not compound rounding error.
func FormatEUR(amount float64) string {
	sign := ""
	if amount < 0 || (amount == 0 && math.Signbit(amount)) {
		sign = "-"
		amount = -amount
	}

	cents := math.Floor(amount*100 + 0.5)
	whole := int64(cents / 100)
	frac := int64(cents) % 100

	return fmt.Sprintf("%s€%s.%02d", sign, groupThousands(whole), frac)
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
