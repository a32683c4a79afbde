// Package textutil sanitizes arbitrary Unicode text before it reaches mail
// headers, envelope addresses or the HTML digest. Feed titles and pasted
// credentials regularly carry invisible characters that break naive string
// handling further down the pipeline.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Space-like runes seen in real feed titles and pasted addresses. NFKC maps
// most of them to U+0020 already; these are handled explicitly so the result
// does not depend on the normalization form.
var specialSpaces = map[rune]bool{
	' ': true, // no-break space
	' ': true, // figure space
	' ': true, // thin space
	' ': true, // narrow no-break space
}

// Normalize applies NFKC normalization, maps special spaces to plain ASCII
// spaces, strips every format (Cf) and control (Cc) rune and trims the
// result. It never fails; empty input gives an empty string.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := norm.NFKC.String(raw)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case specialSpaces[r] || unicode.Is(unicode.Zs, r):
			b.WriteRune(' ')
		case unicode.Is(unicode.Cf, r) || unicode.Is(unicode.Cc, r):
			// zero-width characters, BOMs, raw control bytes
		default:
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(b.String())
}

// SanitizeForTransport normalizes and then replaces any byte sequence that
// is not valid UTF-8, so the result always survives MIME encoding.
func SanitizeForTransport(raw string) string {
	return strings.ToValidUTF8(Normalize(raw), "")
}
