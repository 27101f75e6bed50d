package drive

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process FolderStore. It backs tests and the
// "memory" drive mode used for dry runs without Google credentials.
type MemoryStore struct {
	mu      sync.Mutex
	folders []Folder
	// children maps folder ID to uploaded files. MemoryStore does not
	// keep file contents, only names and MIME types.
	children map[string][]memoryFile

	createCalls int
}

type memoryFile struct {
	file     File
	mimeType string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{children: make(map[string][]memoryFile)}
}

func (s *MemoryStore) FindFolder(ctx context.Context, name string) (Folder, error) {
	if err := ctx.Err(); err != nil {
		return Folder{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.folders {
		if f.Name == name {
			return f, nil
		}
	}
	return Folder{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func (s *MemoryStore) CreateFolder(ctx context.Context, name string) (Folder, error) {
	if err := ctx.Err(); err != nil {
		return Folder{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.createCalls++
	f := Folder{ID: uuid.New().String(), Name: name}
	s.folders = append(s.folders, f)
	s.children[f.ID] = nil
	return f, nil
}

func (s *MemoryStore) ListChildren(ctx context.Context, parent Folder, mimeType string) ([]File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var files []File
	for _, mf := range s.children[parent.ID] {
		if mimeType == "" || mf.mimeType == mimeType {
			files = append(files, mf.file)
		}
	}
	return files, nil
}

func (s *MemoryStore) UploadFile(ctx context.Context, localPath, displayName string, parent Folder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.children[parent.ID]; !ok {
		return fmt.Errorf("%w: unknown parent folder %q", ErrUnavailable, parent.ID)
	}
	s.children[parent.ID] = append(s.children[parent.ID], memoryFile{
		file:     File{ID: uuid.New().String(), Name: displayName},
		mimeType: mimeForName(displayName),
	})
	return nil
}

// mimeForName infers the stored MIME type from the display name, so
// count reports over this store filter the same way Drive does.
func mimeForName(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return MimePDF
	}
	return "application/octet-stream"
}

// AddFile seeds a file into a folder, for tests and dry runs.
func (s *MemoryStore) AddFile(folderID, name, mimeType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.children[folderID] = append(s.children[folderID], memoryFile{
		file:     File{ID: uuid.New().String(), Name: name},
		mimeType: mimeType,
	})
}

// CreateCalls reports how many CreateFolder calls were made.
func (s *MemoryStore) CreateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createCalls
}
