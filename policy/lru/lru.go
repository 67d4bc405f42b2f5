// Package lru implements the Eviction Coordinator's LRU victim policy.
package lru

import (
	"sync/atomic"

	"github.com/Gagan2004bansal/KVMemo/policy"
)

// Policy is a collapsed LRU victim strategy: rather than keep a second,
// coordinator-level recency structure, it visits shards round-robin and
// asks each one in turn to give up its own least-recently-used entry.
// OnRead/OnWrite/OnDelete are no-ops because the shard already maintains
// recency on every Set/Get; duplicating that bookkeeping here would only
// cost more locking for no behavioral difference.
type Policy struct {
	cursor atomic.Uint64
}

// New returns a fresh round-robin LRU victim policy.
func New() *Policy { return &Policy{} }

func (p *Policy) OnRead(key string)   {}
func (p *Policy) OnWrite(key string)  {}
func (p *Policy) OnDelete(key string) {}

// SelectVictim walks shards starting from the next round-robin cursor
// position, asking each to evict its own LRU candidate, and stops at the
// first shard willing to give one up.
func (p *Policy) SelectVictim(src policy.ShardSource) (key string, size uint64, ok bool) {
	n := src.ShardCount()
	if n == 0 {
		return "", 0, false
	}
	start := int(p.cursor.Add(1) - 1)
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		key, size, ok = src.EvictFromShard(idx)
		if ok {
			return key, size, true
		}
	}
	return "", 0, false
}
