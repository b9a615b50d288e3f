package risk

import (
	"math"
	"strconv"
	"strings"
)

// percentValue renders a BSI percentage the way the upstream API reports it:
// whole numbers without a decimal point, fractional values as-is.
func percentValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// formatAmount renders a monetary amount with thousands separators and at
// most three fractional digits, e.g. 1234567.5 -> "1,234,567.5".
func formatAmount(v float64) string {
	neg := v < 0
	v = math.Abs(v)

	// Round to 3 decimal places, then split off the fraction.
	v = math.Round(v*1000) / 1000
	intPart := int64(v)
	frac := v - float64(intPart)

	s := strconv.FormatInt(intPart, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	if frac > 0 {
		f := strconv.FormatFloat(frac, 'f', 3, 64) // "0.xxx"
		f = strings.TrimRight(f, "0")
		if len(f) > 2 {
			b.WriteString(f[1:]) // drop the leading zero, keep the dot
		}
	}
	return b.String()
}
