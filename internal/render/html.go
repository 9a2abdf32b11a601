package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// HTML writes the quotation fragment used inside the app pages.
func HTML(w io.Writer, d Document) error {
	if err := templates.ExecuteTemplate(w, "quotation", d); err != nil {
		return fmt.Errorf("render quotation html: %w", err)
	}
	return nil
}

// Fragment renders the quotation fragment for embedding in another template.
func Fragment(d Document) (template.HTML, error) {
	var buf bytes.Buffer
	if err := HTML(&buf, d); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Page writes a standalone printable HTML document.
func Page(w io.Writer, d Document) error {
	if err := templates.ExecuteTemplate(w, "page", d); err != nil {
		return fmt.Errorf("render quotation page: %w", err)
	}
	return nil
}
