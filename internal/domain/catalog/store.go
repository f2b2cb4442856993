package catalog

import (
	"sync"
	"time"
)

// Snapshot pairs one immutable catalog with the metadata of its publication
type Snapshot struct {
	catalog  *Catalog
	version  Version
	loadedAt time.Time
	source   string
}

func (s Snapshot) Catalog() *Catalog {
	return s.catalog
}

func (s Snapshot) Version() Version {
	return s.version
}

func (s Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

func (s Snapshot) Source() string {
	return s.source
}

// Store is the single mutable cell holding the current catalog snapshot.
// Replace swaps the whole snapshot at once; readers observe either the
// previous snapshot or the new one in full, never a mix. Concurrent
// replaces are not serialized beyond the swap itself, the last writer
// wins.
type Store struct {
	mu      sync.RWMutex
	current Snapshot
}

// NewStore seeds a store with the initial catalog
func NewStore(initial *Catalog, source string) *Store {
	return &Store{
		current: Snapshot{
			catalog:  initial,
			version:  NewVersion(),
			loadedAt: time.Now(),
			source:   source,
		},
	}
}

// Snapshot returns the current snapshot
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Replace atomically swaps in a new catalog under a fresh version.
// There is no merging: the previous snapshot is discarded wholesale.
func (s *Store) Replace(c *Catalog, source string) Snapshot {
	next := Snapshot{
		catalog:  c,
		version:  NewVersion(),
		loadedAt: time.Now(),
		source:   source,
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	return next
}
