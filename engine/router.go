package engine

import (
	"github.com/cespare/xxhash/v2"

	"github.com/Gagan2004bansal/KVMemo/internal/util"
)

// Router owns every shard and routes a key to its shard by masking a
// hash of the key against shardCount-1: a bit-mask is cheaper than a
// modulo and exact since shardCount is validated as a power of two at
// construction.
type Router struct {
	shards []*shard
	mask   uint64
}

func newRouter(shardCount int, capacityPerShard int, onEvict onEvictFunc) (*Router, error) {
	if shardCount <= 0 || !util.IsPowerOfTwo(uint64(shardCount)) {
		return nil, errInvalidArgument("shard_count must be a power of two greater than zero")
	}
	shards := make([]*shard, shardCount)
	for i := range shards {
		s, err := newShard(capacityPerShard, onEvict)
		if err != nil {
			return nil, err
		}
		shards[i] = s
	}
	return &Router{shards: shards, mask: uint64(shardCount - 1)}, nil
}

// shardFor returns the shard that owns key.
func (r *Router) shardFor(key []byte) *shard {
	h := xxhash.Sum64(key)
	return r.shards[h&r.mask]
}

// ShardCount implements policy.ShardSource.
func (r *Router) ShardCount() int { return len(r.shards) }

// EvictFromShard implements policy.ShardSource: it pops shard i's current
// least-recently-used entry as a memory-pressure eviction.
func (r *Router) EvictFromShard(i int) (key string, size uint64, ok bool) {
	return r.shards[i].evictVictim(EvictMemory)
}
