package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/akhelifi/bibliosort/internal/filer"
)

// handleClassifyDocument runs the full classify-and-file pipeline.
func (s *Server) handleClassifyDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}
	override := request.GetString("override_label", "")

	result, err := s.svc.Submit(ctx, path, override)
	if err != nil {
		// A filing failure still carries the classification.
		if result != nil {
			return mcp.NewToolResultText(formatResult(result) + fmt.Sprintf("\nFiling failed: %v", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatResult(result)), nil
}

// handleFolderReport produces the per-label document count table.
func (s *Server) handleFolderReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.svc.Report(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}
	return mcp.NewToolResultText(report.Markdown()), nil
}

func formatResult(result *filer.Result) string {
	var sb strings.Builder
	sb.WriteString("Top suggestions:\n")
	for i, sc := range result.TopK {
		fmt.Fprintf(&sb, "%d. %s (%.4f)\n", i+1, sc.Label, sc.Value)
	}
	fmt.Fprintf(&sb, "Final label: %s\nStatus: %s\n", result.FinalLabel, result.Status)
	return sb.String()
}
