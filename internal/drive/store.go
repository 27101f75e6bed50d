// Package drive abstracts the hierarchical remote store documents are
// filed into. The core consumes only the FolderStore interface; the
// Google Drive client and the in-memory store both implement it.
package drive

import (
	"context"
	"errors"
)

// ErrNotFound indicates no folder with the requested name exists.
var ErrNotFound = errors.New("folder not found")

// ErrUnavailable indicates a remote store operation failed (network,
// auth, quota). A classification that already happened stays valid; only
// the filing failed.
var ErrUnavailable = errors.New("remote store unavailable")

// MIME types used when talking to the store.
const (
	MimeFolder = "application/vnd.google-apps.folder"
	MimePDF    = "application/pdf"
)

// Folder is a handle to a remote folder. IDs are only guaranteed stable
// for as long as the store keeps them stable.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// File is a handle to a remote file.
type File struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderStore is the minimal remote-store surface the core depends on.
type FolderStore interface {
	// FindFolder returns the folder with the given exact name, or
	// ErrNotFound. It never creates anything.
	FindFolder(ctx context.Context, name string) (Folder, error)

	// CreateFolder creates a new top-level folder with the given name.
	CreateFolder(ctx context.Context, name string) (Folder, error)

	// ListChildren returns the children of parent matching the given MIME
	// type.
	ListChildren(ctx context.Context, parent Folder, mimeType string) ([]File, error)

	// UploadFile uploads the local file into parent under displayName.
	UploadFile(ctx context.Context, localPath, displayName string, parent Folder) error
}
