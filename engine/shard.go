package engine

import (
	"sync"

	"github.com/Gagan2004bansal/KVMemo/internal/util"
)

// onEvictFunc is invoked synchronously, while the shard's lock is held,
// whenever an entry leaves a shard through anything other than an
// explicit Delete call (lazy TTL expiry, a swept expiry, or a capacity-
// or memory-driven eviction), so metrics stay consistent with the
// removal they describe.
type onEvictFunc func(key string, size uint64, reason EvictReason)

// shard is one of the Router's independent partitions: its own mutex,
// its own key/value map, its own recency index and TTL index. Exactly
// one mutex is held at a time; no shard method calls into the Router or
// another shard.
type shard struct {
	mu sync.Mutex

	store   map[string]entry
	recency *recencyIndex
	ttl     *ttlIndex

	hits   util.PaddedAtomicUint64
	misses util.PaddedAtomicUint64
	evicts util.PaddedAtomicUint64

	onEvict onEvictFunc
}

func newShard(capacity int, onEvict onEvictFunc) (*shard, error) {
	ri, err := newRecencyIndex(capacity)
	if err != nil {
		return nil, err
	}
	return &shard{
		store:   make(map[string]entry, capacity),
		recency: ri,
		ttl:     newTTLIndex(),
		onEvict: onEvict,
	}, nil
}

// set stores key/value with no expiry. If the write pushes the shard's
// recency index over capacity, the least-recently-used entry is evicted
// (reason=EvictCapacity).
func (s *shard) set(key string, value []byte, now int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(key, value, now, 0)
}

// setWithTTL stores key/value with an absolute expiry of now+ttlMs.
func (s *shard) setWithTTL(key string, value []byte, now int64, ttlMs uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(key, value, now, ttlMs)
}

func (s *shard) setLocked(key string, value []byte, now int64, ttlMs uint64) {
	var e entry
	if ttlMs > 0 {
		e = newEntryWithTTL(value, now, ttlMs)
		s.ttl.upsert(key, e.expireAt)
	} else {
		e = newEntry(value, now)
		s.ttl.remove(key)
	}
	s.store[key] = e
	overflow := s.recency.touch(key)
	if overflow {
		s.evictCapacityLocked()
	}
}

// get returns the value for key if present and unexpired. A lazily
// discovered expired entry is removed before reporting a miss.
func (s *shard) get(key string, now int64) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.store[key]
	if !ok {
		s.misses.Add(1)
		return nil, false
	}
	if e.expired(now) {
		s.removeLocked(key, entrySize([]byte(key), e.value), EvictTTL)
		s.misses.Add(1)
		return nil, false
	}
	s.recency.touch(key)
	s.hits.Add(1)
	return e.value, true
}

// delete removes key unconditionally, reporting whether it was present
// and the size of the entry removed (0 if absent).
func (s *shard) delete(key string) (removed bool, size uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.store[key]
	if !ok {
		return false, 0
	}
	size = entrySize([]byte(key), e.value)
	s.removeUntrackedLocked(key)
	return true, size
}

// cleanupExpired sweeps every key whose TTL has elapsed as of now,
// firing onEvict(reason=EvictTTL) for each.
func (s *shard) cleanupExpired(now int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	expired := s.ttl.collectExpired(now)
	for _, key := range expired {
		e, ok := s.store[key]
		if !ok {
			continue
		}
		size := entrySize([]byte(key), e.value)
		delete(s.store, key)
		s.recency.remove(key)
		s.evicts.Add(1)
		if s.onEvict != nil {
			s.onEvict(key, size, EvictTTL)
		}
	}
	return len(expired)
}

// evictVictim pops this shard's current least-recently-used entry and
// removes it fully, firing onEvict with the supplied reason. Used both
// by the Eviction Coordinator's collapsed round-robin LRU policy
// (reason=EvictMemory) and, internally, by capacity overflow
// (reason=EvictCapacity).
func (s *shard) evictVictim(reason EvictReason) (key string, size uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictVictimLocked(reason)
}

func (s *shard) evictVictimLocked(reason EvictReason) (key string, size uint64, ok bool) {
	k, found := s.recency.popLeastRecent()
	if !found {
		return "", 0, false
	}
	e, present := s.store[k]
	if !present {
		return "", 0, false
	}
	size = entrySize([]byte(k), e.value)
	delete(s.store, k)
	s.ttl.remove(k)
	s.evicts.Add(1)
	if s.onEvict != nil {
		s.onEvict(k, size, reason)
	}
	return k, size, true
}

func (s *shard) evictCapacityLocked() {
	s.evictVictimLocked(EvictCapacity)
}

// removeLocked removes key (already known present) with a given known
// size and eviction reason, firing onEvict.
func (s *shard) removeLocked(key string, size uint64, reason EvictReason) {
	delete(s.store, key)
	s.recency.remove(key)
	s.ttl.remove(key)
	s.evicts.Add(1)
	if s.onEvict != nil {
		s.onEvict(key, size, reason)
	}
}

// removeUntrackedLocked removes key without firing onEvict: used for
// explicit Delete, which the façade accounts for itself.
func (s *shard) removeUntrackedLocked(key string) {
	delete(s.store, key)
	s.recency.remove(key)
	s.ttl.remove(key)
}

func (s *shard) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.store)
}

