// ABOUTME: Picks a renderer by output kind and writes the result to disk
// ABOUTME: Shared by the CLI export command and the TUI detail view

package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/markalston/resume-builder/internal/resume"
)

// Kind selects an output representation
type Kind string

const (
	KindJSON     Kind = "json"
	KindMarkdown Kind = "md"
	KindHTML     Kind = "html"
	KindPDF      Kind = "pdf"
)

// Kinds lists every supported output kind
var Kinds = []Kind{KindJSON, KindMarkdown, KindHTML, KindPDF}

// ErrNoPrinter is returned when PDF output is requested without a printer
var ErrNoPrinter = errors.New("pdf output requires a printer")

// ParseKind accepts a kind name case-insensitively; "markdown" is an alias for md
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return KindJSON, nil
	case "md", "markdown":
		return KindMarkdown, nil
	case "html":
		return KindHTML, nil
	case "pdf":
		return KindPDF, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, md, html or pdf)", s)
}

// Exporter renders résumés. Printer may be nil when PDF output is not needed.
type Exporter struct {
	Printer Printer
	Now     func() time.Time
}

// Render produces r in the requested kind
func (e *Exporter) Render(ctx context.Context, r *resume.Resume, kind Kind) ([]byte, error) {
	switch kind {
	case KindJSON:
		return JSON(r, e.now())
	case KindMarkdown:
		return Markdown(r)
	case KindHTML:
		return HTML(r)
	case KindPDF:
		if e.Printer == nil {
			return nil, ErrNoPrinter
		}
		page, err := HTML(r)
		if err != nil {
			return nil, err
		}
		return e.Printer.PrintPDF(ctx, page)
	}
	return nil, fmt.Errorf("unknown export format %q", kind)
}

// WriteFile renders r into dir under its default file name and returns the path
func (e *Exporter) WriteFile(ctx context.Context, r *resume.Resume, kind Kind, dir string) (string, error) {
	data, err := e.Render(ctx, r, kind)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(r, string(kind)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
