// Package extract turns document files into raw text. Extraction is a
// pluggable collaborator: the rest of the system only sees the Extractor
// interface and treats its output as a black box.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrExtraction indicates the extractor itself failed (corrupt file,
// unsupported format, missing tool). It is distinct from a successful
// extraction that produced no text, which is reported as an empty string.
var ErrExtraction = errors.New("text extraction failed")

// Extractor produces the raw text of a document file.
type Extractor interface {
	// Extract returns the text content of the file at path. An empty
	// string with a nil error means the document genuinely has no text.
	Extract(ctx context.Context, path string) (string, error)

	// Name identifies the extractor implementation.
	Name() string
}

// PlainText reads the file verbatim as UTF-8 text.
type PlainText struct{}

func (PlainText) Name() string { return "text" }

func (PlainText) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrExtraction, path, err)
	}
	return string(data), nil
}
