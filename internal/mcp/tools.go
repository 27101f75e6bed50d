package mcp

import "github.com/mark3labs/mcp-go/mcp"

// classifyDocumentTool defines the classify_document MCP tool.
var classifyDocumentTool = mcp.NewTool("classify_document",
	mcp.WithDescription("Classify a document against the topical catalog, record the outcome in the feedback ledger, and file it into the matching remote folder."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the document file"),
	),
	mcp.WithString("override_label",
		mcp.Description("Catalog label that supersedes the automatic prediction"),
	),
)

// folderReportTool defines the folder_report MCP tool.
var folderReportTool = mcp.NewTool("folder_report",
	mcp.WithDescription("Count how many documents are filed under each catalog label's folder in the remote store."),
)
