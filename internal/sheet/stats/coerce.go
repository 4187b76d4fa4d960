package stats

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Int reads the leading integer of s: "12abc" is 12, "3.9" is 3, and text
// with no leading digits is 0.
func Int(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// Out of range: saturate like the parser does.
		if s[0] == '-' {
			return math.MinInt32
		}
		return math.MaxInt32
	}
	return clampInt(n)
}

func clampInt(n int64) int {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	default:
		return int(n)
	}
}

// Float reads the leading decimal number of s: "1.5kg" is 1.5, ".5" is 0.5,
// "2e3" is 2000. Anything unreadable, infinite or NaN is 0.
func Float(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	intStart := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	mantissa := end - intStart
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && isDigit(s[frac]) {
			frac++
		}
		mantissa += frac - end - 1
		if mantissa > 0 {
			end = frac
		}
	}
	if mantissa == 0 {
		return 0
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		expDigits := exp
		for exp < len(s) && isDigit(s[exp]) {
			exp++
		}
		if exp > expDigits {
			end = exp
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Format renders v the way the sheet displays numbers: the shortest decimal
// that round-trips, without a trailing ".0".
func Format(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatInt renders an integer stat.
func FormatInt(v int) string {
	return strconv.Itoa(v)
}
