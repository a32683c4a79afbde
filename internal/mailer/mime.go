package mailer

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/deusflow/findigest/internal/textutil"
)

const altBoundary = "findigest-alt-boundary"

// buildMIME writes the RFC 822 message: Q-encoded subject, a single UTF-8
// text/html alternative part, base64 transfer encoding. The envelope stays
// ASCII; the subject header may carry non-ASCII text.
func buildMIME(msg Message) []byte {
	subject := mime.QEncoding.Encode("utf-8", textutil.Normalize(msg.Subject))
	body := textutil.SanitizeForTransport(msg.HTMLBody)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", altBoundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", altBoundary)
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString("\r\n")
	b.WriteString(wrapBase64(body))
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "--%s--\r\n", altBoundary)

	return []byte(b.String())
}

// wrapBase64 encodes and folds the result at 76 columns per RFC 2045.
func wrapBase64(s string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(s))

	var b strings.Builder
	for len(enc) > 76 {
		b.WriteString(enc[:76])
		b.WriteString("\r\n")
		enc = enc[76:]
	}
	b.WriteString(enc)
	return b.String()
}
