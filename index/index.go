// Package index keeps the in-memory view of which backup locations
// currently hold a stored backup and at which content version. The index
// is a cache, not a source of truth; the store itself stays authoritative
// and the index is always rebuildable from it.
package index

import (
	"context"
	"sync"

	"github.com/mwantia/backup/data"
	"github.com/mwantia/backup/log"
	"github.com/mwantia/backup/storage"
	"github.com/tidwall/btree"
)

type Index struct {
	mu      sync.RWMutex
	entries *btree.Map[string, int64]
}

func New() *Index {
	return &Index{
		entries: btree.NewMap[string, int64](0),
	}
}

// Resolve populates the index from a full store scan. Every found object
// enters at version 0 since versions are not persisted; the first write
// after a restart always counts as a change. Scan failures degrade to an
// empty index and are logged, never surfaced - a lost or unreadable store
// must not block startup.
func (ix *Index) Resolve(ctx context.Context, store storage.Backend, logger *log.Logger) {
	if store == nil {
		return
	}

	refs, err := store.ListObjects(ctx)
	if err != nil {
		if logger != nil {
			logger.Warn("Backup scan failed, starting with empty index: %v", err)
		}
		return
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, ref := range refs {
		loc := data.BackupLocation{Scheme: ref.Scheme, Hash: ref.Key}
		ix.entries.Set(loc.Key(), 0)
	}
}

// Add inserts or overwrites the entry for the location.
func (ix *Index) Add(loc data.BackupLocation, version int64) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.entries.Set(loc.Key(), version)
}

// Has reports whether the location is known. With a version given it
// matches exactly; without one any known version counts.
func (ix *Index) Has(loc data.BackupLocation, version ...int64) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	known, exists := ix.entries.Get(loc.Key())
	if !exists {
		return false
	}

	if len(version) == 0 {
		return true
	}

	return known == version[0]
}

// Remove drops the entry for the location, if any.
func (ix *Index) Remove(loc data.BackupLocation) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.entries.Delete(loc.Key())
}

func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return ix.entries.Len()
}

func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.entries.Clear()
}

// Locations returns every known backup location in key order.
func (ix *Index) Locations() []data.BackupLocation {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	locations := make([]data.BackupLocation, 0, ix.entries.Len())
	ix.entries.Scan(func(key string, _ int64) bool {
		if loc, ok := data.ParseLocationKey(key); ok {
			locations = append(locations, loc)
		}
		return true
	})

	return locations
}
