package record

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]Descriptor)
	registryMu sync.RWMutex
)

// Register adds a record type descriptor to the registry.
// Panics if a type with the same key is already registered.
func Register(desc Descriptor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[desc.Key]; exists {
		panic(fmt.Sprintf("record type already registered: %s", desc.Key))
	}

	registry[desc.Key] = desc
}

// Get returns a descriptor by key.
// Returns false if not found.
func Get(key string) (Descriptor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	desc, ok := registry[key]
	return desc, ok
}

// Keys returns all registered record type keys, sorted for consistent
// ordering in help text and error messages.
func Keys() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}
