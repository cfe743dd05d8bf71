package pie

import (
	"math"
	"strconv"
	"strings"
)

// FormatLabel returns the tooltip text for a slice: "<pct*100>%" or
// "<pct*100>%: <label>". The percentage is not rounded, so 0.07 prints as
// "7.000000000000001%".
func FormatLabel(s Slice) string {
	text := formatNumber(s.pct*100) + "%"
	if s.hasLabel {
		text += ": " + s.label
	}
	return text
}

// formatNumber prints the shortest round-trip form of v, switching to
// exponent notation outside [1e-6, 1e21) like a browser does.
func formatNumber(v float64) string {
	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + exp
}
