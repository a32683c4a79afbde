// Package mailaddr turns raw "display name + address" strings into validated
// SMTP envelope addresses. The envelope must be strict 7-bit ASCII, while the
// configured values often arrive with invisible Unicode contamination and
// internationalized domains.
package mailaddr

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"

	"github.com/deusflow/findigest/internal/textutil"
)

// InvalidAddressError reports an address that could not be made ASCII-safe.
// Raw and Cleaned are both kept so the operator can see exactly what the
// cleaning steps produced.
type InvalidAddressError struct {
	Raw     string
	Cleaned string
	Reason  string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid mail address %q (cleaned from %q): %s", e.Cleaned, e.Raw, e.Reason)
}

// Clean strips an optional display name, removes invisible characters and
// internal spaces, and IDNA-encodes the domain. The result is non-empty,
// ASCII only, space free and contains exactly one @.
func Clean(raw string) (string, error) {
	s := textutil.Normalize(raw)
	s = stripDisplayName(s)

	// Envelope addresses must contain no spaces at all, including the
	// ones Normalize produced from NBSP and friends.
	s = textutil.Normalize(s)
	s = strings.ReplaceAll(s, " ", "")

	if s == "" {
		return "", &InvalidAddressError{Raw: raw, Cleaned: s, Reason: "empty after cleaning"}
	}
	if !strings.Contains(s, "@") {
		return "", &InvalidAddressError{Raw: raw, Cleaned: s, Reason: "missing @"}
	}

	at := strings.LastIndex(s, "@")
	local, domain := s[:at], s[at+1:]
	if ascii, err := idna.Lookup.ToASCII(domain); err == nil {
		domain = ascii
	}
	// On IDNA failure the original domain text stays and the ASCII check
	// below rejects it with the full diagnostic payload.
	s = local + "@" + domain

	if !isASCII(s) {
		return "", &InvalidAddressError{Raw: raw, Cleaned: s, Reason: "not ASCII after IDNA encoding"}
	}
	if strings.Count(s, "@") != 1 {
		return "", &InvalidAddressError{Raw: raw, Cleaned: s, Reason: "more than one @"}
	}

	return s, nil
}

// stripDisplayName keeps only the addr-spec of a "Name <addr>" form.
func stripDisplayName(s string) string {
	if a, err := mail.ParseAddress(s); err == nil {
		return a.Address
	}

	// net/mail rejects addresses that still carry junk, for example a
	// space inside the local part. Fall back to the bracket content so
	// cleaning can continue on the address itself.
	if open := strings.LastIndex(s, "<"); open >= 0 {
		if end := strings.Index(s[open:], ">"); end > 0 {
			return s[open+1 : open+end]
		}
	}
	return s
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
