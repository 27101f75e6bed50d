package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akhelifi/bibliosort/internal/catalog"
)

// fakeEmbedder embeds text as keyword-prefix counts plus a constant bias
// dimension, so vectors are deterministic and never zero.
type fakeEmbedder struct {
	groups [][]string
}

func (f *fakeEmbedder) Name() string    { return "fake" }
func (f *fakeEmbedder) Dimensions() int { return len(f.groups) + 1 }

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, len(f.groups)+1)
		vec[0] = 1
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,!?;:'\"()")
			for g, prefixes := range f.groups {
				for _, p := range prefixes {
					if strings.HasPrefix(word, p) {
						vec[g+1]++
						break
					}
				}
			}
		}
		vecs[i] = vec
	}
	return vecs, nil
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Entry{
		{Label: "A", Code: "A", Description: "cats and dogs"},
		{Label: "B", Code: "B", Description: "stock markets and investing"},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func testEmbedder() *fakeEmbedder {
	return &fakeEmbedder{groups: [][]string{
		{"cat", "dog"},
		{"stock", "market", "invest", "earn"},
	}}
}

func newTestClassifier(t *testing.T, cat *catalog.Catalog) *Classifier {
	t.Helper()
	cls, err := New(context.Background(), cat, testEmbedder())
	if err != nil {
		t.Fatalf("classifier.New: %v", err)
	}
	return cls
}

func TestClassifyRanksBySimilarity(t *testing.T) {
	cls := newTestClassifier(t, testCatalog(t))

	ranking, err := cls.Classify(context.Background(),
		"The quarterly earnings report showed strong investment returns.")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if ranking.AutomaticLabel != "B" {
		t.Errorf("AutomaticLabel = %q, want B", ranking.AutomaticLabel)
	}
	if len(ranking.TopK) != 2 {
		t.Fatalf("len(TopK) = %d, want 2 (catalog size)", len(ranking.TopK))
	}
	if ranking.TopK[0].Label != "B" {
		t.Errorf("TopK[0] = %q, want B", ranking.TopK[0].Label)
	}
	if ranking.TopK[0].Value < ranking.TopK[1].Value {
		t.Errorf("scores not descending: %v", ranking.TopK)
	}
	for _, sc := range ranking.TopK {
		if sc.Value < -1 || sc.Value > 1 {
			t.Errorf("score %f for %s outside [-1, 1]", sc.Value, sc.Label)
		}
	}
}

func TestClassifyEmptyDocument(t *testing.T) {
	cls := newTestClassifier(t, testCatalog(t))

	for _, text := range []string{"", "   "} {
		if _, err := cls.Classify(context.Background(), text); !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("Classify(%q) error = %v, want ErrEmptyDocument", text, err)
		}
	}
}

func TestClassifyTopKLimit(t *testing.T) {
	entries := []catalog.Entry{
		{Label: "A", Code: "A", Description: "cats"},
		{Label: "B", Code: "B", Description: "stocks"},
		{Label: "C", Code: "C", Description: "dogs"},
		{Label: "D", Code: "D", Description: "markets"},
	}
	cat, err := catalog.New(entries)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	cls := newTestClassifier(t, cat)

	ranking, err := cls.Classify(context.Background(), "dogs and cats and stocks")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(ranking.TopK) != TopK {
		t.Errorf("len(TopK) = %d, want %d", len(ranking.TopK), TopK)
	}
}

func TestClassifyStableTieBreak(t *testing.T) {
	// Identical descriptions produce identical scores; the earlier
	// catalog entry must rank first.
	entries := []catalog.Entry{
		{Label: "First", Code: "F", Description: "stock markets"},
		{Label: "Second", Code: "S", Description: "stock markets"},
	}
	cat, err := catalog.New(entries)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	cls := newTestClassifier(t, cat)

	ranking, err := cls.Classify(context.Background(), "investing in stock markets")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if ranking.TopK[0].Value != ranking.TopK[1].Value {
		t.Fatalf("expected identical scores, got %v", ranking.TopK)
	}
	if ranking.TopK[0].Label != "First" {
		t.Errorf("TopK[0] = %q, want First (catalog order on ties)", ranking.TopK[0].Label)
	}
}

func TestClassifySingleEntryCatalog(t *testing.T) {
	cat, err := catalog.New([]catalog.Entry{
		{Label: "Only", Code: "O", Description: "cats"},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	cls := newTestClassifier(t, cat)

	ranking, err := cls.Classify(context.Background(), "a cat")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(ranking.TopK) != 1 || ranking.AutomaticLabel != "Only" {
		t.Errorf("ranking = %+v, want single Only entry", ranking)
	}
}
