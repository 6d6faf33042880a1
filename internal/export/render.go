// ABOUTME: Renders a résumé as Markdown or standalone HTML
// ABOUTME: Templates are embedded so the binary needs no files on disk

package export

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/markalston/resume-builder/internal/resume"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = map[string]any{
	"join": strings.Join,
}

var (
	markdownTmpl = texttemplate.Must(
		texttemplate.New("resume.md.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/resume.md.tmpl"))
	htmlTmpl = htmltemplate.Must(
		htmltemplate.New("resume.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/resume.html.tmpl"))
)

// Markdown renders r as a Markdown document
func Markdown(r *resume.Resume) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdownTmpl.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// HTML renders r as a printable HTML page. All résumé text is escaped.
func HTML(r *resume.Resume) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}
	return buf.Bytes(), nil
}
