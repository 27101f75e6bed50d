package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// PDFToText extracts PDF text by shelling out to the poppler `pdftotext`
// binary. The tool must be on PATH.
type PDFToText struct {
	// Binary overrides the executable name, mainly for tests.
	Binary string
}

func (e PDFToText) Name() string { return "pdftotext" }

func (e PDFToText) Extract(ctx context.Context, path string) (string, error) {
	bin := e.Binary
	if bin == "" {
		bin = "pdftotext"
	}

	// "-" writes the extracted text to stdout.
	cmd := exec.CommandContext(ctx, bin, "-q", path, "-")
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := bytes.TrimSpace(stderr.Bytes())
		if len(msg) > 0 {
			return "", fmt.Errorf("%w: %s: %s", ErrExtraction, path, msg)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrExtraction, path, err)
	}

	return out.String(), nil
}

// ForFormat returns the extractor registered under the given name.
func ForFormat(name string) (Extractor, error) {
	switch name {
	case "", "text":
		return PlainText{}, nil
	case "pdftotext", "pdf":
		return PDFToText{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q: must be one of text, pdftotext", name)
	}
}
