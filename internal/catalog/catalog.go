// Package catalog holds the static episode catalog. The catalog is defined at
// deploy time, loaded once at startup, and never mutated while the process is
// running.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Episode describes one downloadable media object.
type Episode struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	StorageKey string `json:"storage_key"`
	Filename   string `json:"filename"`
}

// Catalog is a read-only id -> episode lookup. Safe for concurrent use.
type Catalog struct {
	episodes map[string]*Episode
	order    []string
}

// Load reads the episode catalog from a JSON file containing an array of
// episode descriptors.
func Load(path string) (*Catalog, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var episodes []*Episode
	if err := json.Unmarshal(file, &episodes); err != nil {
		return nil, fmt.Errorf("failed to parse catalog json of '%s': %w", path, err)
	}

	return New(episodes)
}

// New builds a catalog from episode descriptors, validating that every field
// is present and that ids are unique.
func New(episodes []*Episode) (*Catalog, error) {
	c := &Catalog{
		episodes: make(map[string]*Episode, len(episodes)),
		order:    make([]string, 0, len(episodes)),
	}
	for i, ep := range episodes {
		if ep.ID == "" || ep.StorageKey == "" || ep.Filename == "" {
			return nil, fmt.Errorf("episode %d: missing required field", i)
		}
		if _, ok := c.episodes[ep.ID]; ok {
			return nil, fmt.Errorf("duplicate episode id '%s'", ep.ID)
		}
		c.episodes[ep.ID] = ep
		c.order = append(c.order, ep.ID)
	}
	return c, nil
}

// Get returns the episode for id, or nil when the id is unknown.
func (c *Catalog) Get(id string) *Episode {
	return c.episodes[id]
}

// Episodes returns the descriptors in catalog order.
func (c *Catalog) Episodes() []*Episode {
	out := make([]*Episode, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.episodes[id])
	}
	return out
}

// Len returns the number of episodes in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}
