// Package util provides common utility functions used across the codebase.
package util

import "strings"

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Count formats count followed by the matching noun form, e.g. "1 warning"
// or "3 warnings".
func Count(count int, singular, plural string) string {
	return Itoa(count) + " " + Pluralize(count, singular, plural)
}

// OneLine collapses all runs of whitespace, including newlines, into single
// spaces.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Itoa converts an integer to its string representation.
// This is a lightweight alternative to strconv.Itoa that avoids the strconv import
// for packages that only need simple integer formatting.
func Itoa(n int) string {
	if n == 0 {
		return "0"
	}

	neg := n < 0
	if neg {
		n = -n
	}

	var buf [20]byte
	i := len(buf)

	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}

	if neg {
		i--
		buf[i] = '-'
	}

	return string(buf[i:])
}
