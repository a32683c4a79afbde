// Package digest renders the daily email body and subject.
package digest

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/deusflow/findigest/internal/news"
)

const subjectPrefix = "Daily Finance & Crypto Digest"

// Subject builds the mail subject for a run date.
func Subject(now time.Time) string {
	return fmt.Sprintf("%s - %s", subjectPrefix, now.Format("2006-01-02"))
}

// The shell is self-contained: inline styles only, no external resources.
const digestHTML = `<html>
<body style="font-family: sans-serif; background-color: #f4f4f4; padding: 20px;">
<div style="max-width: 600px; margin: auto; background: #ffffff; padding: 20px; border-radius: 10px; box-shadow: 0 4px 8px rgba(0,0,0,0.1);">
<h1 style="color: #333; text-align: center;">Daily Finance &amp; Crypto Digest</h1>
<p style="color: #666; text-align: center;">Here are today's top articles on banking, finance, and crypto from the DACH and MENA regions.</p>
<hr style="border: 0; height: 1px; background: #ddd; margin: 20px 0;">
{{if not .}}<p style="text-align: center; color: #888;">No new articles found today. Check back tomorrow!</p>
{{else}}{{range .}}<div style="border-bottom: 1px solid #eee; padding: 15px 0;">
<h2 style="font-size: 18px; color: #007bff;"><a href="{{.Link}}" style="text-decoration: none; color: #007bff;">{{.Title}}</a></h2>
<p style="font-size: 14px; color: #555;"><strong>Source:</strong> {{.Source}}</p>
</div>
{{end}}{{end}}</div>
</body>
</html>
`

var digestTmpl = template.Must(template.New("digest").Parse(digestHTML))

// Render produces the HTML body for the given articles. Feed-provided text
// goes through the template engine, which escapes it in both element and
// href context.
func Render(articles []news.Article) (string, error) {
	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, articles); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return buf.String(), nil
}
