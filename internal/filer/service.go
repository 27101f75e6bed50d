// Package filer implements the classify-and-file flow: extract, normalize,
// classify, apply the human correction, record the outcome, and file the
// document into the remote store. It also produces the per-label folder
// count report.
package filer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/akhelifi/bibliosort/internal/audit"
	"github.com/akhelifi/bibliosort/internal/catalog"
	"github.com/akhelifi/bibliosort/internal/classifier"
	"github.com/akhelifi/bibliosort/internal/drive"
	"github.com/akhelifi/bibliosort/internal/extract"
	"github.com/akhelifi/bibliosort/internal/feedback"
	"github.com/akhelifi/bibliosort/internal/textutil"
)

// ErrUnknownLabel indicates an override label that is not in the catalog.
// The request fails before any side effect.
var ErrUnknownLabel = errors.New("override label not in catalog")

// Status reports how far a submission got.
type Status string

const (
	// StatusFiled: classified, recorded, and uploaded.
	StatusFiled Status = "filed"
	// StatusFilingFailed: classified and recorded in the ledger, but the
	// remote store rejected the filing. The upload can be retried from
	// the ledger.
	StatusFilingFailed Status = "filing_failed"
)

// Result is the outcome of one submission.
type Result struct {
	TopK           []classifier.Score `json:"top_k"`
	AutomaticLabel string             `json:"automatic_label"`
	FinalLabel     string             `json:"final_label"`
	Status         Status             `json:"status"`
}

// Service wires the classification pipeline together. All collaborators
// are injected; none are global.
type Service struct {
	extractor extract.Extractor
	cls       *classifier.Classifier
	ledger    *feedback.Ledger
	events    *audit.Store
	resolver  *drive.Resolver
	store     drive.FolderStore
}

// NewService creates the classify-and-file service. events may be nil to
// disable the audit trail.
func NewService(extractor extract.Extractor, cls *classifier.Classifier, ledger *feedback.Ledger, events *audit.Store, resolver *drive.Resolver, store drive.FolderStore) *Service {
	return &Service{
		extractor: extractor,
		cls:       cls,
		ledger:    ledger,
		events:    events,
		resolver:  resolver,
		store:     store,
	}
}

// Catalog returns the catalog the service classifies against.
func (s *Service) Catalog() *catalog.Catalog { return s.cls.Catalog() }

// Preview extracts and classifies the document at path without recording
// or filing anything. It backs the interactive correction flow.
func (s *Service) Preview(ctx context.Context, path string) (*classifier.Ranking, error) {
	raw, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}
	return s.cls.Classify(ctx, textutil.Normalize(raw))
}

// Submit classifies the document at path and files it. An override, when
// non-empty after trimming, supersedes the automatic label; it must be a
// catalog label.
//
// The feedback ledger is appended before the upload: on a crash or store
// failure in between, the ledger is the source of truth and the upload is
// retryable. A store failure therefore returns the computed Result with
// StatusFilingFailed alongside the error.
func (s *Service) Submit(ctx context.Context, path, override string) (*Result, error) {
	raw, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}

	ranking, err := s.cls.Classify(ctx, textutil.Normalize(raw))
	if err != nil {
		return nil, err
	}

	finalLabel, overridden, err := s.resolveOverride(ranking, override)
	if err != nil {
		return nil, err
	}

	cat := s.cls.Catalog()
	autoEntry, _ := cat.ByLabel(ranking.AutomaticLabel)
	finalEntry, _ := cat.ByLabel(finalLabel)
	docName := filepath.Base(path)

	if err := s.ledger.Append(feedback.Record{
		DocumentName:  docName,
		AutomaticCode: autoEntry.Code,
		FinalCode:     finalEntry.Code,
	}); err != nil {
		return nil, err
	}

	if s.events != nil {
		scores := make([]audit.Score, len(ranking.TopK))
		for i, sc := range ranking.TopK {
			scores[i] = audit.Score{Code: sc.Code, Value: sc.Value}
		}
		if err := s.events.Log(ctx, audit.Event{
			DocumentName:  docName,
			AutomaticCode: autoEntry.Code,
			FinalCode:     finalEntry.Code,
			Overridden:    overridden,
			Scores:        scores,
		}); err != nil {
			// The CSV ledger already holds the record; losing the audit
			// row is not worth failing the filing.
			log.Printf("warning: recording audit event for %s: %v", docName, err)
		}
	}

	result := &Result{
		TopK:           ranking.TopK,
		AutomaticLabel: ranking.AutomaticLabel,
		FinalLabel:     finalLabel,
		Status:         StatusFiled,
	}

	folder, err := s.resolver.ResolveOrCreate(ctx, finalLabel)
	if err != nil {
		result.Status = StatusFilingFailed
		return result, fmt.Errorf("resolving folder %q: %w", finalLabel, err)
	}
	if err := s.store.UploadFile(ctx, path, docName, folder); err != nil {
		result.Status = StatusFilingFailed
		return result, fmt.Errorf("uploading %s: %w", docName, err)
	}

	return result, nil
}

// resolveOverride applies the human correction. Empty or whitespace-only
// overrides keep the automatic label.
func (s *Service) resolveOverride(ranking *classifier.Ranking, override string) (label string, overridden bool, err error) {
	override = strings.TrimSpace(override)
	if override == "" {
		return ranking.AutomaticLabel, false, nil
	}
	if _, ok := s.cls.Catalog().ByLabel(override); !ok {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownLabel, override)
	}
	return override, override != ranking.AutomaticLabel, nil
}
