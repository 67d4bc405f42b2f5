package engine

import (
	"sync"

	"github.com/Gagan2004bansal/KVMemo/policy"
)

// evictionCoordinator pairs a MemoryTracker with a pluggable victim
// policy.Policy. Its own mutex serializes notifications and victim
// selection; it never takes a shard lock directly (that happens inside
// policy.Policy.SelectVictim, through the ShardSource capability).
type evictionCoordinator struct {
	mu      sync.Mutex
	mem     *MemoryTracker
	pol     policy.Policy
	shards  policy.ShardSource
	metrics Metrics
}

func newEvictionCoordinator(mem *MemoryTracker, pol policy.Policy, shards policy.ShardSource, metrics Metrics) *evictionCoordinator {
	return &evictionCoordinator{mem: mem, pol: pol, shards: shards, metrics: metrics}
}

// onRead notifies the coordinator of a cache hit.
func (c *evictionCoordinator) onRead(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pol.OnRead(key)
}

// onWrite reserves delta bytes and notifies the policy of a write.
func (c *evictionCoordinator) onWrite(key string, delta uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem.Reserve(delta)
	c.pol.OnWrite(key)
}

// onDelete releases delta bytes and notifies the policy of a removal.
// delta may legitimately be zero (key was already absent); Release(0) is
// a no-op.
func (c *evictionCoordinator) onDelete(key string, delta uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem.Release(delta)
	c.pol.OnDelete(key)
}

// collectEvictionCandidates drives the policy's SelectVictim while the
// tracker is over its limit, firing EvictMemory metrics for each victim.
// Selection and removal are one step here: policy.Policy.SelectVictim
// both picks and physically removes the victim from its shard, so there
// is no separate "now go delete these keys" pass.
func (c *evictionCoordinator) collectEvictionCandidates() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var victims []string
	for c.mem.IsOverLimit() {
		key, size, ok := c.pol.SelectVictim(c.shards)
		if !ok {
			break
		}
		c.mem.Release(size)
		if c.metrics != nil {
			c.metrics.Evict(EvictMemory)
		}
		victims = append(victims, key)
	}
	return victims
}
