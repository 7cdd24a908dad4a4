// Package numeric coerces loosely formatted user and provider values
// ("55%", "2.10", " 10 ") into numbers.
package numeric

import (
	"strconv"
	"strings"
)

// Leading parses the longest numeric prefix of s, ignoring surrounding
// whitespace and any trailing suffix such as a percent sign. An exponent
// ("1e2") is part of the prefix. It reports false when s does not start with
// a number or the value overflows a float64.
func Leading(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && s[frac] >= '0' && s[frac] <= '9' {
			frac++
			digits++
		}
		// "10." is still 10
		end = frac
	}

	if digits == 0 {
		return 0, false
	}

	mantissa := end
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '-' || s[exp] == '+') {
			exp++
		}
		expDigits := exp
		for expDigits < len(s) && s[expDigits] >= '0' && s[expDigits] <= '9' {
			expDigits++
		}
		// "2e" and "2e+" stop before the exponent marker
		if expDigits > exp {
			end = expDigits
		}
	}

	num := s[:end]
	if end == mantissa {
		num = strings.TrimSuffix(num, ".")
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Float is Leading with unparseable input resolved to 0.
func Float(s string) float64 {
	v, _ := Leading(s)
	return v
}
