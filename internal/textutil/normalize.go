// Package textutil provides text cleanup for extracted document content.
package textutil

import (
	"strings"
	"unicode"
)

// Normalize collapses runs of whitespace into single spaces, drops
// characters outside the printable 7-bit ASCII range, and trims the
// result. An empty return value means the document had no usable text.
func Normalize(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))

	space := false
	for _, r := range raw {
		switch {
		// Any Unicode whitespace separates words: PDF extraction output
		// is full of NBSPs and wide spaces.
		case unicode.IsSpace(r):
			space = true
		case r < 0x20 || r > 0x7e:
			// Non-printable or non-ASCII: dropped, not a separator.
		default:
			if space && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			space = false
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
