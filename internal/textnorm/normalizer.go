// Package textnorm canonicalises raw document text into the comparable
// form every downstream stage operates on. All fingerprint and match-span
// positions index the normalised string, never the raw upload.
package textnorm

import (
	"strings"
	"unicode"
)

// Normalize canonicalises text by applying, in order:
//
//  1. Case folding to lower.
//  2. CRLF replaced with LF.
//  3. Every maximal run of characters that are neither letters nor digits
//     (Unicode categories L*, N*) replaced with a single space.
//  4. Whitespace runs collapsed to a single space.
//  5. Leading and trailing whitespace trimmed.
//
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	pendingGap := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if pendingGap && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			pendingGap = false
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		// Any separator rune (whitespace, punctuation, symbols, CR and LF
		// alike) extends the current gap; the gap is emitted as one space
		// only when more content follows.
		pendingGap = true
	}

	return sb.String()
}

// Runes returns the normalised text as a rune slice. Offsets produced by
// the k-gram generator, winnower and span builder are indices into this
// slice so that non-ASCII corpora keep one position per character.
func Runes(normalized string) []rune {
	return []rune(normalized)
}
