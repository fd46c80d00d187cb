package format

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ISOLayout matches the millisecond UTC timestamps downstream stages expect.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Number renders a value the way a template literal would: integers without a
// fractional part, everything else with the shortest exact representation.
// Magnitudes >= 1e21 or < 1e-6 switch to exponent form ("1e+21", "1.5e-7").
func Number(val float64) string {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return "0"
	}
	if val == 0 {
		return "0"
	}
	if abs := math.Abs(val); abs >= 1e21 || abs < 1e-6 {
		return exponent(val)
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}

// exponent drops the zero padding Go puts on the exponent (1e+07 -> 1e+7).
func exponent(val float64) string {
	s := strconv.FormatFloat(val, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	digits := strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return s[:i+2] + digits
}

// Round rounds half-way values toward positive infinity (2.5 -> 3, -2.5 -> -2).
func Round(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	return math.Floor(val + 0.5)
}

// SignedPercent prefixes non-negative values with an explicit plus sign.
func SignedPercent(val float64) string {
	if val >= 0 {
		return "+" + Number(val) + "%"
	}
	return Number(val) + "%"
}

// ISOTime formats t in UTC with millisecond precision.
func ISOTime(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}
