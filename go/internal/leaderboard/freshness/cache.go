package freshness

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/fantasygolf/go/internal/leaderboard"
)

// Entry is one tournament's cached snapshot
type Entry struct {
	Snapshot    *leaderboard.Snapshot
	RefreshedAt time.Time
	// Invalidated is set when upstream data is known to have changed since
	// RefreshedAt. The next mount refetches regardless of age.
	Invalidated bool
}

// Cache is the single store of assembled snapshots, keyed by tournament.
// Writes replace the whole entry.
type Cache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]Entry
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[uuid.UUID]Entry),
	}
}

// Get returns the entry for a tournament.
func (c *Cache) Get(id uuid.UUID) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	return e, ok
}

// Put replaces a tournament's snapshot. RefreshedAt never moves backwards,
// even if at is earlier than the current value.
func (c *Cache) Put(id uuid.UUID, snap *leaderboard.Snapshot, at time.Time) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.entries[id]; ok && prev.RefreshedAt.After(at) {
		at = prev.RefreshedAt
	}
	e := Entry{Snapshot: snap, RefreshedAt: at}
	c.entries[id] = e
	return e
}

// Invalidate marks a tournament's entry as outdated without dropping it.
func (c *Cache) Invalidate(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[id]; ok {
		e.Invalidated = true
		c.entries[id] = e
	}
}
