// Package token provides the deterministic token approximation used for
// prompt budget accounting. A token here is ~4 characters of text, not a
// linguistic token; budget arithmetic derives character ceilings from the
// same divisor, so it must not change.
package token

import "strings"

// CharsPerToken is the approximation divisor. Truncation ceilings are
// computed as remaining tokens times this value.
const CharsPerToken = 4

// Estimate returns the approximate token count for text.
// Empty text maps to 0; any non-empty text counts as at least 1 token.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	tokens := len(text) / CharsPerToken
	if tokens < 1 {
		return 1
	}
	return tokens
}

// FormatCount renders n with thousands separators, e.g. 32000 -> "32,000".
func FormatCount(n int) string {
	digits := []byte(nil)
	negative := n < 0
	if negative {
		n = -n
	}
	if n == 0 {
		return "0"
	}
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}

	var builder strings.Builder
	if negative {
		builder.WriteByte('-')
	}
	for i := len(digits) - 1; i >= 0; i-- {
		builder.WriteByte(digits[i])
		if i > 0 && i%3 == 0 {
			builder.WriteByte(',')
		}
	}
	return builder.String()
}
