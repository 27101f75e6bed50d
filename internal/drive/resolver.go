package drive

import (
	"context"
	"errors"
	"sync"
)

// Resolver maps labels to remote folders, creating them on first use.
// Resolution for a given label is serialized by a per-label mutex, so two
// concurrent first-time resolutions cannot both run the find-then-create
// sequence and end up with duplicate folders.
type Resolver struct {
	store FolderStore

	mu    sync.Mutex
	cache map[string]Folder
	locks map[string]*sync.Mutex
}

// NewResolver creates a resolver over the given store.
func NewResolver(store FolderStore) *Resolver {
	return &Resolver{
		store: store,
		cache: make(map[string]Folder),
		locks: make(map[string]*sync.Mutex),
	}
}

func (r *Resolver) labelLock(label string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[label]
	if !ok {
		l = &sync.Mutex{}
		r.locks[label] = l
	}
	return l
}

func (r *Resolver) cached(label string) (Folder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.cache[label]
	return f, ok
}

func (r *Resolver) remember(label string, f Folder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[label] = f
}

// ResolveOrCreate returns the folder for the given label, creating it in
// the store if absent. Repeated calls for the same label return a handle
// to the same logical folder.
func (r *Resolver) ResolveOrCreate(ctx context.Context, label string) (Folder, error) {
	lock := r.labelLock(label)
	lock.Lock()
	defer lock.Unlock()

	if f, ok := r.cached(label); ok {
		return f, nil
	}

	f, err := r.store.FindFolder(ctx, label)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		f, err = r.store.CreateFolder(ctx, label)
		if err != nil {
			return Folder{}, err
		}
	default:
		return Folder{}, err
	}

	r.remember(label, f)
	return f, nil
}

// Lookup returns the folder for the given label if it exists. It never
// creates a folder; a missing folder is reported as found=false with a
// nil error.
func (r *Resolver) Lookup(ctx context.Context, label string) (Folder, bool, error) {
	if f, ok := r.cached(label); ok {
		return f, true, nil
	}

	f, err := r.store.FindFolder(ctx, label)
	if errors.Is(err, ErrNotFound) {
		return Folder{}, false, nil
	}
	if err != nil {
		return Folder{}, false, err
	}

	r.remember(label, f)
	return f, true, nil
}
