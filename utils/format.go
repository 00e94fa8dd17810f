package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders a float the way existing API clients expect it:
// shortest representation, always with a fractional part,
// scientific notation for very small and very large values.
// E.g. 50 -> "50.0", 2.5 -> "2.5", 0.00001 -> "1e-05".
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
