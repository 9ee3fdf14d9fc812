package cache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"gumroad-relay/internal/model"
)

// DefaultTTL is the verdict freshness window.
const DefaultTTL = 300 * time.Second

type entry struct {
	verdict  *model.Verdict
	storedAt time.Time
}

// Snapshot is a read-only view of one cache entry, used by the admin
// subscriber dump. Expired is age > TTL; Snapshot never removes entries.
type Snapshot struct {
	Key     string
	Verdict *model.Verdict
	Age     time.Duration
	Expired bool
}

// VerdictCache holds computed verdicts in memory for the freshness
// window. Entries are replaced wholesale and never evicted in the
// background; Sweep and Clear are the only removals. The mutex exists
// because the echo server runs handlers concurrently, not as an
// at-most-once guard: racing misses may both call upstream and the last
// Put wins.
type VerdictCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

func New(ttl time.Duration) *VerdictCache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock is New with an injectable clock, for tests.
func NewWithClock(ttl time.Duration, now func() time.Time) *VerdictCache {
	return &VerdictCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     now,
	}
}

// Key builds the cache key for an (email, product) pair. Email lookups
// are case-insensitive; product ids are matched exactly.
func Key(email, productID string) string {
	return strings.ToLower(email) + ":" + productID
}

// Get returns the stored verdict when the entry is younger than the TTL.
// A hit does not refresh the entry's timestamp, and a stale entry is a
// miss but stays in the map until Sweep or Clear.
func (c *VerdictCache) Get(key string) (*model.Verdict, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.verdict, true
}

func (c *VerdictCache) Put(key string, v *model.Verdict) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{verdict: v, storedAt: c.now()}
}

// Contains reports membership regardless of freshness.
func (c *VerdictCache) Contains(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.entries[key]
	return ok
}

func (c *VerdictCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Clear empties the cache and returns the number of entries removed.
func (c *VerdictCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]entry)
	return n
}

// Sweep deletes entries strictly older than the TTL and returns the
// count removed.
func (c *VerdictCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// List returns a snapshot of every entry, sorted by key for stable
// output.
func (c *VerdictCache) List() []Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	snapshots := make([]Snapshot, 0, len(c.entries))
	for key, e := range c.entries {
		age := now.Sub(e.storedAt)
		snapshots = append(snapshots, Snapshot{
			Key:     key,
			Verdict: e.verdict,
			Age:     age,
			Expired: age > c.ttl,
		})
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Key < snapshots[j].Key })
	return snapshots
}
