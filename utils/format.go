package utils

import (
	"math"
	"strconv"
	"strings"
)

// RoundUp rounds v up (ceiling) to the given number of decimal places.
// Display percentages use ceiling rounding, not round-to-nearest: 66.666%
// renders as 66.7%, never 66.6%.
func RoundUp(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Ceil(v*factor) / factor
}

// FormatPercent renders a rate for display, rounded up to one decimal place.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(RoundUp(v, 1), 'f', 1, 64) + "%"
}

// FormatAmount renders a monetary total with grouped thousands and no forced
// decimal places: 7500 -> "7,500", 1234.5 -> "1,234.5".
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}

	return b.String()
}
