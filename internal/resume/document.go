// Package resume defines the values exchanged with the ranking engine:
// candidate documents, role profiles, keyword sets and ranking results.
package resume

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ContentKind tells whether a document arrived as text or needs extraction.
type ContentKind string

const (
	// KindText is a document whose content is already plain text.
	KindText ContentKind = "text"
	// KindBinary is an opaque document (PDF, image) that an external
	// extractor must turn into text before ranking.
	KindBinary ContentKind = "binary"
)

// Document is a candidate resume. The engine never modifies it.
type Document struct {
	ID        string      `json:"id" validate:"required"`
	Name      string      `json:"filename"`
	Text      string      `json:"content"`
	Kind      ContentKind `json:"type" validate:"required,oneof=text binary"`
	Extracted bool        `json:"extracted,omitempty"`
	CreatedAt time.Time   `json:"uploadedAt"`
}

// NeedsExtraction reports whether the document still waits for a text extractor.
func (d *Document) NeedsExtraction() bool {
	return d.Kind == KindBinary && !d.Extracted
}

// Validate checks the document can enter the engine. Every failure wraps
// ErrInvalidInput.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidInput)
	}

	validate := validator.New()
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: document %q: %v", ErrInvalidInput, d.label(), err)
	}

	if d.NeedsExtraction() {
		return fmt.Errorf("%w: document %q is binary and has no extracted text", ErrInvalidInput, d.label())
	}

	return nil
}

func (d *Document) label() string {
	if name := strings.TrimSpace(d.Name); name != "" {
		return name
	}
	return d.ID
}
