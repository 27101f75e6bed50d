package drive

import (
	"context"
	"sync"
	"testing"
)

func TestResolveOrCreateIdempotent(t *testing.T) {
	store := NewMemoryStore()
	resolver := NewResolver(store)
	ctx := context.Background()

	first, err := resolver.ResolveOrCreate(ctx, "Finance")
	if err != nil {
		t.Fatalf("first ResolveOrCreate: %v", err)
	}
	second, err := resolver.ResolveOrCreate(ctx, "Finance")
	if err != nil {
		t.Fatalf("second ResolveOrCreate: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("handles differ: %q vs %q", first.ID, second.ID)
	}
	if store.CreateCalls() != 1 {
		t.Errorf("CreateFolder called %d times, want 1", store.CreateCalls())
	}
}

func TestResolveOrCreateFindsExisting(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	existing, err := store.CreateFolder(ctx, "Politics")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	resolver := NewResolver(store)
	got, err := resolver.ResolveOrCreate(ctx, "Politics")
	if err != nil {
		t.Fatalf("ResolveOrCreate: %v", err)
	}
	if got.ID != existing.ID {
		t.Errorf("resolved %q, want existing folder %q", got.ID, existing.ID)
	}
	if store.CreateCalls() != 1 {
		t.Errorf("CreateFolder called %d times, want 1 (the seed)", store.CreateCalls())
	}
}

func TestConcurrentFirstResolution(t *testing.T) {
	store := NewMemoryStore()
	resolver := NewResolver(store)
	ctx := context.Background()

	const n = 20
	handles := make([]Folder, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := resolver.ResolveOrCreate(ctx, "Maths")
			if err != nil {
				t.Errorf("ResolveOrCreate: %v", err)
				return
			}
			handles[i] = f
		}(i)
	}
	wg.Wait()

	if store.CreateCalls() != 1 {
		t.Errorf("CreateFolder called %d times under contention, want 1", store.CreateCalls())
	}
	for i := 1; i < n; i++ {
		if handles[i].ID != handles[0].ID {
			t.Fatalf("handle %d differs: %q vs %q", i, handles[i].ID, handles[0].ID)
		}
	}
}

func TestLookupNeverCreates(t *testing.T) {
	store := NewMemoryStore()
	resolver := NewResolver(store)
	ctx := context.Background()

	_, found, err := resolver.Lookup(ctx, "Nano")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if found {
		t.Error("found = true for missing folder")
	}
	if store.CreateCalls() != 0 {
		t.Errorf("Lookup created a folder (%d create calls)", store.CreateCalls())
	}
}

func TestLookupFindsExisting(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	existing, err := store.CreateFolder(ctx, "Nano")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	resolver := NewResolver(store)
	got, found, err := resolver.Lookup(ctx, "Nano")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !found || got.ID != existing.ID {
		t.Errorf("Lookup = %+v found=%v, want existing folder", got, found)
	}
}

func TestMemoryStoreListChildrenFiltersMime(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	folder, err := store.CreateFolder(ctx, "Finance")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	store.AddFile(folder.ID, "a.pdf", MimePDF)
	store.AddFile(folder.ID, "b.pdf", MimePDF)
	store.AddFile(folder.ID, "notes.txt", "text/plain")

	pdfs, err := store.ListChildren(ctx, folder, MimePDF)
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(pdfs) != 2 {
		t.Errorf("got %d PDFs, want 2", len(pdfs))
	}

	all, err := store.ListChildren(ctx, folder, "")
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d children, want 3", len(all))
	}
}

func TestMemoryStoreUploadMimeFromName(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	folder, err := store.CreateFolder(ctx, "Finance")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	for _, name := range []string{"report.pdf", "REPORT2.PDF", "notes.txt"} {
		if err := store.UploadFile(ctx, "/ignored/"+name, name, folder); err != nil {
			t.Fatalf("UploadFile(%s): %v", name, err)
		}
	}

	pdfs, err := store.ListChildren(ctx, folder, MimePDF)
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(pdfs) != 2 {
		t.Errorf("got %d PDFs, want 2 (the .txt upload must not count)", len(pdfs))
	}
}
