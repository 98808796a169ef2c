package game

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/dogmatch/internal/breeds"
)

// IsMatch decides whether input names target. Rules, first hit wins:
//
//  1. case-folded input equals the case-folded canonical name;
//  2. input equals the localized name exactly;
//  3. the localized name contains input and input has at least 2 characters;
//  4. the case-folded canonical name contains the case-folded input and input
//     has at least half as many characters as the canonical name.
//
// Surrounding whitespace is ignored and both sides are compared in NFC form,
// so rule 2 is exact up to that. Empty input never matches.
func IsMatch(input string, target breeds.Breed) bool {
	in := clean(input)
	if in == "" {
		return false
	}
	canonical := clean(target.Canonical)
	localized := clean(target.Localized)

	fold := cases.Fold()
	foldedIn := fold.String(in)
	foldedCanonical := fold.String(canonical)
	n := utf8.RuneCountInString(in)

	switch {
	case foldedIn == foldedCanonical:
		return true
	case localized != "" && in == localized:
		return true
	case localized != "" && n >= 2 && strings.Contains(localized, in):
		return true
	case n >= utf8.RuneCountInString(canonical)/2 && strings.Contains(foldedCanonical, foldedIn):
		return true
	}
	return false
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
