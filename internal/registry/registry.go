// Package registry provides a global registry for built-in script factories.
// Script packages register themselves in init() functions, allowing the
// commands to discover built-in intros without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/pixel-hopper/internal/script"
)

// ScriptInfo contains metadata about a registered script.
type ScriptInfo struct {
	ID      string
	Title   string
	Players int
}

// Factory creates a fresh copy of a script. Callers may modify it.
type Factory func() *script.Script

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]ScriptInfo)
	mu        sync.RWMutex
)

// Register adds a script factory to the registry.
// Typically called from an init() function.
// Panics if a script with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: script %q already registered", id))
	}

	s := f()
	if s.ID != id {
		panic(fmt.Sprintf("registry: factory for %q creates script %q", id, s.ID))
	}

	factories[id] = f
	infos[id] = ScriptInfo{ID: id, Title: s.Title, Players: s.Players}
}

// List returns information about all registered scripts, sorted by ID.
func List() []ScriptInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ScriptInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a script by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (*script.Script, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown script %q", id)
	}

	return f(), nil
}

// Exists checks if a script with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// All creates one copy of every registered script, sorted by ID.
func All() []*script.Script {
	infos := List()

	mu.RLock()
	defer mu.RUnlock()

	result := make([]*script.Script, 0, len(infos))
	for _, info := range infos {
		result = append(result, factories[info.ID]())
	}
	return result
}
