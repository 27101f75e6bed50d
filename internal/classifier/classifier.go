// Package classifier ranks documents against the catalog by embedding
// similarity.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/akhelifi/bibliosort/internal/catalog"
	"github.com/akhelifi/bibliosort/internal/embeddings"
)

// ErrEmptyDocument indicates the document produced no usable text, so no
// ranking was attempted.
var ErrEmptyDocument = errors.New("document is empty or unreadable")

// TopK is how many suggestions a ranking carries.
const TopK = 3

// Score is one catalog entry's cosine similarity to a document.
type Score struct {
	Label string  `json:"label"`
	Code  string  `json:"code"`
	Value float32 `json:"score"`
}

// Ranking is the outcome of classifying one document: the top suggestions
// in descending score order. AutomaticLabel is always the first one.
type Ranking struct {
	TopK           []Score `json:"top_k"`
	AutomaticLabel string  `json:"automatic_label"`
}

// Classifier scores documents against a fixed catalog. Description
// embeddings are computed once at construction and cached in an in-memory
// chromem collection; the catalog is immutable for the process lifetime.
type Classifier struct {
	cat        *catalog.Catalog
	collection *chromem.Collection
}

// New builds a classifier for the given catalog, embedding every entry
// description up front.
func New(ctx context.Context, cat *catalog.Catalog, embedder embeddings.Embedder) (*Classifier, error) {
	db := chromem.NewDB()
	col, err := db.GetOrCreateCollection("catalog", nil, embeddings.ToChromemFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("create catalog collection: %w", err)
	}

	docs := make([]chromem.Document, 0, cat.Len())
	for _, e := range cat.Entries() {
		docs = append(docs, chromem.Document{
			ID:       e.Code,
			Content:  e.Description,
			Metadata: map[string]string{"label": e.Label},
		})
	}
	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("embedding catalog descriptions: %w", err)
	}

	return &Classifier{cat: cat, collection: col}, nil
}

// Classify embeds the normalized document text, scores it against every
// catalog entry, and returns the top suggestions. Equal scores keep the
// catalog declaration order.
func (c *Classifier) Classify(ctx context.Context, normalizedText string) (*Ranking, error) {
	if strings.TrimSpace(normalizedText) == "" {
		return nil, ErrEmptyDocument
	}

	// Query the full collection so every entry gets a score.
	results, err := c.collection.Query(ctx, normalizedText, c.collection.Count(), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("scoring document: %w", err)
	}

	byCode := make(map[string]float32, len(results))
	for _, r := range results {
		byCode[r.ID] = r.Similarity
	}

	// Build the score list in catalog order, then stable-sort descending:
	// ties resolve to the earlier catalog entry.
	scores := make([]Score, 0, c.cat.Len())
	for _, e := range c.cat.Entries() {
		v, ok := byCode[e.Code]
		if !ok {
			return nil, fmt.Errorf("no score for catalog entry %q", e.Label)
		}
		scores = append(scores, Score{Label: e.Label, Code: e.Code, Value: v})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Value > scores[j].Value })

	k := TopK
	if len(scores) < k {
		k = len(scores)
	}

	return &Ranking{TopK: scores[:k], AutomaticLabel: scores[0].Label}, nil
}

// Catalog returns the catalog this classifier scores against.
func (c *Classifier) Catalog() *catalog.Catalog { return c.cat }
