// Package policy defines the Eviction Coordinator's pluggable victim
// selection strategy. It is intentionally decoupled from package engine:
// it depends only on the small ShardSource capability below, not on
// concrete shard/router types.
package policy

// ShardSource lets a Policy visit an engine's shards without importing
// package engine. engine.Router implements it.
type ShardSource interface {
	// ShardCount returns the number of shards a policy may visit.
	ShardCount() int
	// EvictFromShard asks shard i to give up its own least-recently-used
	// entry, removing it fully (map, recency index, TTL index) and
	// returning its key and estimated size. ok is false if the shard has
	// nothing to evict.
	EvictFromShard(i int) (key string, size uint64, ok bool)
}

// Policy decides which key to sacrifice when the engine is over its
// configured memory limit. OnRead/OnWrite/OnDelete are notifications the
// Eviction Coordinator fires on every engine operation; SelectVictim is
// called only while the engine is over limit.
//
// An LRU Policy is free to fold its victim bookkeeping into the shards'
// own recency indexes rather than keep a second, federated one: see
// policy/lru, whose OnRead/OnWrite/OnDelete are no-ops because the shard
// already maintains recency on every Set/Get.
type Policy interface {
	OnRead(key string)
	OnWrite(key string)
	OnDelete(key string)
	// SelectVictim picks and removes one entry from src, or reports ok=false
	// if src has nothing left to evict.
	SelectVictim(src ShardSource) (key string, size uint64, ok bool)
}
