// Package engine implements kvmemo's sharded, in-memory key/value store:
// fixed-count hash-routed shards, each with its own mutex, recency index
// and TTL index, fed by a process-wide memory tracker and a pluggable
// eviction policy.
//
// # Design
//
//   - Router routes a key to one of ShardCount shards by masking
//     xxhash64(key) against ShardCount-1. ShardCount must be a power of
//     two; Config.Validate rejects anything else outright.
//   - Each shard holds exactly one mutex. No engine method ever holds
//     two shard locks at the same time. The only path that holds a shard
//     lock together with the Eviction Coordinator's lock is
//     ProcessEvictions, which always takes the coordinator's lock first;
//     no shard code path takes the coordinator's lock.
//   - TTL expiry is both lazy (checked on Get) and swept
//     (Engine.ProcessExpired).
//   - The Eviction Coordinator's LRU policy is collapsed into the
//     shards' own recency indexes: see policy/lru.
//
// # Usage
//
//	e, err := engine.New(engine.DefaultConfig())
//	if err != nil { ... }
//	_ = e.Set([]byte("k"), []byte("v"))
//	v, ok := e.Get([]byte("k"))
package engine
