// ABOUTME: Downloadable résumé document: JSON serialization and schema-checked parsing
// ABOUTME: Export followed by Parse reproduces the in-memory résumé exactly

package export

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/markalston/resume-builder/internal/resume"
	"github.com/xeipuuv/gojsonschema"
)

// DocumentFormat tags every exported document
const DocumentFormat = "resume-builder/v1"

//go:embed schema.json
var documentSchema string

// Document wraps a résumé with export metadata
type Document struct {
	Format     string        `json:"format"`
	ExportedAt time.Time     `json:"exported_at"`
	Resume     resume.Resume `json:"resume"`
}

// ValidationError lists schema violations by field path
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid resume document:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// JSON serializes r as an indented export document
func JSON(r *resume.Resume, now time.Time) ([]byte, error) {
	doc := Document{
		Format:     DocumentFormat,
		ExportedAt: now.UTC(),
		Resume:     *r,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}
	return append(data, '\n'), nil
}

// Parse validates data against the document schema and decodes it
func Parse(data []byte) (*Document, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume document: %w", err)
	}

	if !result.Valid() {
		verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return nil, verr
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode resume document: %w", err)
	}
	return &doc, nil
}

// Filename is the default file name for r with the given extension
func Filename(r *resume.Resume, ext string) string {
	return fmt.Sprintf("resume-%d.%s", r.ID, strings.TrimPrefix(ext, "."))
}
