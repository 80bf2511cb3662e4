package email

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Renderer turns markdown retention templates into sanitized HTML. Template
// bodies are merchant-supplied, so everything passes through the sanitizer.
type Renderer struct {
	md      goldmark.Markdown
	policy  *bluemonday.Policy
	printer *message.Printer
}

func NewRenderer() *Renderer {
	return &Renderer{
		md:      goldmark.New(),
		policy:  bluemonday.UGCPolicy(),
		printer: message.NewPrinter(language.English),
	}
}

// Render expands {{placeholders}} in the markdown template, converts it to
// HTML, and sanitizes the result.
func (r *Renderer) Render(template string, vars map[string]string) (string, error) {
	body := template
	for key, value := range vars {
		body = strings.ReplaceAll(body, "{{"+key+"}}", value)
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return r.policy.Sanitize(buf.String()), nil
}

// FormatCents renders a cent amount as a localized currency string, e.g.
// 123456 -> "$1,234.56".
func (r *Renderer) FormatCents(cents int64, currency string) string {
	symbol := "$"
	if currency != "" && currency != "USD" {
		symbol = currency + " "
	}
	return r.printer.Sprintf("%s%.2f", symbol, float64(cents)/100)
}
