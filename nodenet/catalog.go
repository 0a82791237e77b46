package nodenet

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// CatalogEntry is one named echo catalog record.
type CatalogEntry struct {
	Rate float64 `json:"rate"`
}

// Catalog is a lazily-loaded mapping of named echo entries to
// questionnaire-answer records, echo.json-shaped on disk. The backing
// file is read at most once, on first lookup.
type Catalog struct {
	path string

	once    sync.Once
	entries map[string]CatalogEntry
	loadErr error
}

// NewCatalog returns a Catalog that will lazily load path on first use.
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

// entry looks up key, loading the backing file on first call.
func (c *Catalog) entry(key string) (CatalogEntry, error) {
	c.once.Do(c.load)
	if c.loadErr != nil {
		return CatalogEntry{}, c.loadErr
	}
	e, ok := c.entries[key]
	if !ok {
		return CatalogEntry{}, fmt.Errorf("nodenet: unknown catalog key %q", key)
	}
	return e, nil
}

func (c *Catalog) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		c.loadErr = fmt.Errorf("nodenet: loading catalog %q: %w", c.path, err)
		return
	}
	var entries map[string]CatalogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.loadErr = fmt.Errorf("nodenet: parsing catalog %q: %w", c.path, err)
		return
	}
	c.entries = entries
}
