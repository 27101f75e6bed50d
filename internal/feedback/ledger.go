// Package feedback maintains the append-only ledger of classification
// outcomes used for later retraining and audit.
package feedback

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Record is one classified document: its file name, the automatic
// prediction, and the final (possibly human-corrected) label, both by
// catalog code.
type Record struct {
	DocumentName  string
	AutomaticCode string
	FinalCode     string
}

// Ledger appends records to a CSV file. Rows are never rewritten or
// reordered; append order is arrival order. A mutex serializes writers so
// concurrent appends cannot interleave.
type Ledger struct {
	mu   sync.Mutex
	path string
}

// NewLedger creates a ledger writing to the given CSV path. The file is
// created on first append.
func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the ledger file location.
func (l *Ledger) Path() string { return l.path }

// Append durably writes one record. The document name is reduced to its
// base name; the CSV encoder escapes any delimiter in field values.
func (l *Ledger) Append(rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening feedback ledger %s: %w", l.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{filepath.Base(rec.DocumentName), rec.AutomaticCode, rec.FinalCode}); err != nil {
		f.Close()
		return fmt.Errorf("writing feedback record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing feedback record: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("syncing feedback ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing feedback ledger: %w", err)
	}
	return nil
}
