package display

import (
	"unicode/utf8"

	"golang.org/x/text/width"
)

// RuneWidth is the number of terminal cells r occupies.
func RuneWidth(r rune) int {
	if r < 0x20 || r == 0x7F {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// StringWidth is the number of terminal cells s occupies.
func StringWidth(s string) int {
	n := 0
	for _, r := range s {
		n += RuneWidth(r)
	}
	return n
}

// Truncate cuts s so it fits in cols cells, never splitting a character.
func Truncate(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	n := 0
	for i, r := range s {
		w := RuneWidth(r)
		if n+w > cols {
			return s[:i]
		}
		n += w
	}
	return s
}

// TrimLastChar drops the final character of s. Invalid trailing bytes are
// dropped one at a time.
func TrimLastChar(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
