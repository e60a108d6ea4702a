// Package cache implements the per-user note cache. Each entry is a complete
// snapshot of one user's note set, rebuilt from the store after every
// mutation. A missing entry means "unknown", never "empty": the distinction
// matters on the read path, where a miss triggers a rebuild.
package cache

import (
	"context"
	"sync"

	"github.com/shuvam021/fundoo-v3/internal/models"
)

const shardCount = 16

// Loader reads the full current note set of one owner from the system of
// record. Implemented by the repository.
type Loader interface {
	NotesByOwner(ctx context.Context, owner int64) ([]models.Note, error)
}

type shard struct {
	mu      sync.RWMutex
	entries map[int64][]models.Note
}

// Cache maps user ids to note snapshots. Keys are spread over a fixed set of
// shards so requests for unrelated users never contend on the same lock.
type Cache struct {
	shards [shardCount]*shard
	loader Loader
}

// New creates an empty cache backed by the given loader.
func New(loader Loader) *Cache {
	c := &Cache{loader: loader}
	for i := range c.shards {
		c.shards[i] = &shard{entries: make(map[int64][]models.Note)}
	}
	return c
}

func (c *Cache) shardFor(owner int64) *shard {
	return c.shards[uint64(owner)%shardCount]
}

// Get returns a copy of the owner's snapshot in insertion order. The second
// return value reports whether an entry was present at all; a present entry
// with zero notes returns an empty slice and true.
func (c *Cache) Get(owner int64) ([]models.Note, bool) {
	s := c.shardFor(owner)
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[owner]
	if !ok {
		return nil, false
	}
	snapshot := make([]models.Note, len(entry))
	copy(snapshot, entry)
	return snapshot, true
}

// GetOne scans the owner's snapshot for the given note id. hit reports
// whether a snapshot was present; found reports whether the note is in it.
// The scan is linear, which is fine for typical per-user note counts.
func (c *Cache) GetOne(owner, noteID int64) (note models.Note, hit, found bool) {
	s := c.shardFor(owner)
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[owner]
	if !ok {
		return models.Note{}, false, false
	}
	for _, n := range entry {
		if n.ID == noteID {
			return n, true, true
		}
	}
	return models.Note{}, true, false
}

// Rebuild reads the owner's full note set from the store and atomically
// replaces the entry. The store read happens outside the shard lock, so two
// concurrent rebuilds of the same owner race and the last one wins; each
// candidate snapshot is a single complete store read, so the entry is never
// a mix of two reads. If the read fails the previous entry is left untouched.
func (c *Cache) Rebuild(ctx context.Context, owner int64) error {
	notes, err := c.loader.NotesByOwner(ctx, owner)
	if err != nil {
		return err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	s := c.shardFor(owner)
	s.mu.Lock()
	s.entries[owner] = notes
	s.mu.Unlock()
	return nil
}

// Invalidate drops the owner's entry. Recovery primitive only; the normal
// write path always rebuilds instead.
func (c *Cache) Invalidate(owner int64) {
	s := c.shardFor(owner)
	s.mu.Lock()
	delete(s.entries, owner)
	s.mu.Unlock()
}

// Stats summarizes cache occupancy across all shards. Entries are never
// evicted, so this is the number to watch for capacity planning.
type Stats struct {
	Users int
	Notes int
}

// Stats counts cached users and notes across all shards.
func (c *Cache) Stats() Stats {
	var st Stats
	for _, s := range c.shards {
		s.mu.RLock()
		st.Users += len(s.entries)
		for _, entry := range s.entries {
			st.Notes += len(entry)
		}
		s.mu.RUnlock()
	}
	return st
}
