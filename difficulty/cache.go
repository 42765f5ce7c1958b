package difficulty

import "sync"

type cacheEntry struct {
	mapID int
	mods  Mods
	lazer bool
	attrs Attributes
}

// Cache memoizes difficulty attributes per (map, mods, flavor) key. Lookup
// is a linear scan: mods carry settings and are not a comparable key, and a
// single listing touches at most a few dozen distinct combinations.
//
// Suspicious maps are rejected on every call, never cached. Rejection is
// cheap to re-derive and a negative entry would outlive a later fix to the
// map data.
type Cache struct {
	mu      sync.Mutex
	entries []cacheEntry
	calc    func(*Beatmap, Mods, bool) Attributes
}

// NewCache creates an empty cache backed by Calculate.
func NewCache() *Cache {
	return &Cache{calc: Calculate}
}

// Get returns the attributes for the map under the given mods and flavor,
// computing and storing them on first request. It returns nil when the map
// fails the suspicion check.
func (c *Cache) Get(b *Beatmap, mods Mods, lazer bool) *Attributes {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.entries {
		e := &c.entries[i]
		if e.mapID == b.MapID && e.lazer == lazer && e.mods.Equal(mods) {
			attrs := e.attrs

			return &attrs
		}
	}

	if err := b.CheckSuspicion(); err != nil {
		return nil
	}

	attrs := c.calc(b, mods, lazer)
	c.entries = append(c.entries, cacheEntry{mapID: b.MapID, mods: mods, lazer: lazer, attrs: attrs})

	return &attrs
}

// Len returns the number of memoized entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
