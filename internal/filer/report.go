package filer

import (
	"context"
	"fmt"
	"strings"

	"github.com/akhelifi/bibliosort/internal/drive"
)

// CountRow is one catalog label and how many documents its folder holds.
type CountRow struct {
	Label string `json:"label"`
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// CountReport lists document counts per catalog label, in catalog order.
// Labels without a folder appear with a zero count.
type CountReport struct {
	Rows []CountRow `json:"rows"`
}

// Report counts the documents filed under each catalog label's folder.
// It is read-only: labels whose folder does not exist contribute zero and
// no folder is created.
func (s *Service) Report(ctx context.Context) (*CountReport, error) {
	report := &CountReport{}

	for _, entry := range s.cls.Catalog().Entries() {
		row := CountRow{Label: entry.Label, Code: entry.Code}

		folder, found, err := s.resolver.Lookup(ctx, entry.Label)
		if err != nil {
			return nil, fmt.Errorf("looking up folder %q: %w", entry.Label, err)
		}
		if found {
			files, err := s.store.ListChildren(ctx, folder, drive.MimePDF)
			if err != nil {
				return nil, fmt.Errorf("listing folder %q: %w", entry.Label, err)
			}
			row.Count = len(files)
		}

		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// Markdown renders the report as a label/count table.
func (r *CountReport) Markdown() string {
	var sb strings.Builder
	sb.WriteString("| Folder | Documents |\n|---|---|\n")
	for _, row := range r.Rows {
		fmt.Fprintf(&sb, "| %s | %d |\n", row.Label, row.Count)
	}
	return sb.String()
}
