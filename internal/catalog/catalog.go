// Package catalog defines the fixed set of topical labels documents are
// classified against. The catalog is loaded once at startup and is
// immutable for the process lifetime.
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is a single classification target: a display label, a short code
// used in the feedback ledger, and the free-text description that gets
// embedded for similarity scoring.
type Entry struct {
	Label       string `yaml:"label"`
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

// Catalog is an ordered, immutable collection of entries. Declaration
// order is significant: it is the tie-break order for equal scores and
// the row order of count reports.
type Catalog struct {
	entries []Entry
	byLabel map[string]int
	byCode  map[string]int
}

// New builds a Catalog from the given entries. Labels and codes must each
// be unique; descriptions must be non-empty.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog has no entries")
	}

	c := &Catalog{
		entries: make([]Entry, len(entries)),
		byLabel: make(map[string]int, len(entries)),
		byCode:  make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)

	for i, e := range c.entries {
		if strings.TrimSpace(e.Label) == "" {
			return nil, fmt.Errorf("catalog entry %d: label is required", i)
		}
		if strings.TrimSpace(e.Code) == "" {
			return nil, fmt.Errorf("catalog entry %q: code is required", e.Label)
		}
		if strings.TrimSpace(e.Description) == "" {
			return nil, fmt.Errorf("catalog entry %q: description is required", e.Label)
		}
		if _, dup := c.byLabel[e.Label]; dup {
			return nil, fmt.Errorf("duplicate catalog label %q", e.Label)
		}
		if _, dup := c.byCode[e.Code]; dup {
			return nil, fmt.Errorf("duplicate catalog code %q", e.Code)
		}
		c.byLabel[e.Label] = i
		c.byCode[e.Code] = i
	}

	return c, nil
}

// Load reads a catalog from a YAML file containing a list of entries.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	c, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Save writes the catalog entries to a YAML file.
func (c *Catalog) Save(path string) error {
	data, err := yaml.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("marshalling catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog to %s: %w", path, err)
	}
	return nil
}

// Entries returns the entries in declaration order. The returned slice
// must not be modified.
func (c *Catalog) Entries() []Entry { return c.entries }

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// ByLabel returns the entry with the given display label.
func (c *Catalog) ByLabel(label string) (Entry, bool) {
	i, ok := c.byLabel[label]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// ByCode returns the entry with the given short code.
func (c *Catalog) ByCode(code string) (Entry, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Labels returns all display labels in declaration order.
func (c *Catalog) Labels() []string {
	labels := make([]string, len(c.entries))
	for i, e := range c.entries {
		labels[i] = e.Label
	}
	return labels
}
