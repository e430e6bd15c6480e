package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Catalog holds the scripts available to play: the built-ins plus the
// files of an optional directory. A file overrides the built-in with the
// same ID. It is safe for concurrent use.
type Catalog struct {
	builtins []*Script
	dir      string

	mu      sync.RWMutex
	scripts map[string]*Script
}

// NewCatalog creates a catalog and loads dir. An empty dir means built-ins
// only. Files that fail to load are reported in the returned error, the
// catalog is usable either way unless it is nil.
func NewCatalog(builtins []*Script, dir string) (*Catalog, error) {
	c := &Catalog{
		builtins: builtins,
		dir:      dir,
	}
	if err := c.Reload(); err != nil {
		if c.scripts == nil {
			return nil, err
		}
		return c, err
	}
	return c, nil
}

// Dir returns the watched script directory, empty if there is none.
func (c *Catalog) Dir() string {
	return c.dir
}

// Reload rereads the script directory. A file that fails to load is
// skipped and reported; the other scripts are still replaced.
func (c *Catalog) Reload() error {
	scripts := make(map[string]*Script, len(c.builtins))
	for _, s := range c.builtins {
		scripts[s.ID] = s.Clone()
	}

	var errs []error
	if c.dir != "" {
		entries, err := os.ReadDir(c.dir)
		if err != nil {
			return fmt.Errorf("script: failed to read directory %s: %w", c.dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := FormatOf(e.Name()); err != nil {
				continue
			}
			s, err := LoadFile(filepath.Join(c.dir, e.Name()))
			if err != nil {
				errs = append(errs, err)
				continue
			}
			scripts[s.ID] = s
		}
	}

	c.mu.Lock()
	c.scripts = scripts
	c.mu.Unlock()

	return errors.Join(errs...)
}

// Lookup returns a copy of the script with the given ID.
func (c *Catalog) Lookup(id string) (*Script, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.scripts[id]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// List returns copies of all scripts, sorted by ID.
func (c *Catalog) List() []*Script {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*Script, 0, len(c.scripts))
	for _, s := range c.scripts {
		result = append(result, s.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}
