package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Gagan2004bansal/KVMemo/policy"
	"github.com/Gagan2004bansal/KVMemo/policy/lru"
	"github.com/Gagan2004bansal/KVMemo/policy/none"
)

// shardCapacity bounds each shard's recency index. It is intentionally
// large: the per-shard structure exists to give the Recency Index a
// well-defined invariant (never unbounded), while the actual memory
// ceiling the operator tunes is MaxMemoryBytes, enforced by the Eviction
// Coordinator.
const shardCapacity = 1 << 24

// Engine is the single entry point for cache operations:
// Set/SetWithTTL/Get/Delete/ProcessExpired/ProcessEvictions. It holds no
// lock of its own; every invariant it preserves comes from composing
// already-synchronized components (Router's shards, the Eviction
// Coordinator).
type Engine struct {
	cfg         Config
	router      *Router
	coordinator *evictionCoordinator
	mem         *MemoryTracker
	metrics     Metrics
	clock       Clock
}

// Option customizes an Engine at construction time.
type Option func(*engineOptions)

type engineOptions struct {
	metrics Metrics
	clock   Clock
}

// WithMetrics supplies a Metrics sink (see metrics/prom for a Prometheus
// adapter). The default is NoopMetrics.
func WithMetrics(m Metrics) Option {
	return func(o *engineOptions) { o.metrics = m }
}

// WithClock overrides the engine's time source. Used by tests to control
// TTL expiry deterministically.
func WithClock(c Clock) Option {
	return func(o *engineOptions) { o.clock = c }
}

// New validates cfg and builds an Engine. A validation failure aborts
// construction; there is no auto-correction of a bad config.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &engineOptions{metrics: NoopMetrics{}, clock: defaultClock}
	for _, opt := range opts {
		opt(o)
	}

	mem, err := NewMemoryTracker(cfg.MaxMemoryBytes)
	if err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, mem: mem, metrics: o.metrics, clock: o.clock}

	router, err := newRouter(cfg.ShardCount, shardCapacity, e.onShardEvict)
	if err != nil {
		return nil, err
	}
	e.router = router

	var pol policy.Policy
	switch cfg.EvictionPolicy {
	case EvictionPolicyNone:
		pol = none.New()
	case EvictionPolicyLRU:
		pol = lru.New()
	default:
		return nil, errInvalidArgument("eviction_policy must be none or lru")
	}
	e.coordinator = newEvictionCoordinator(mem, pol, router, o.metrics)

	return e, nil
}

// onShardEvict is wired into every shard as its onEvictFunc: it keeps the
// Memory Tracker and Metrics in sync with removals a shard performs on
// its own (lazy TTL expiry during Get, swept expiry, and capacity-overflow
// eviction). It runs under the shard's lock, so it releases bytes on the
// tracker directly instead of taking the Eviction Coordinator's lock.
// Memory-pressure evictions are skipped: collectEvictionCandidates
// releases their bytes and records their metric itself.
func (e *Engine) onShardEvict(key string, size uint64, reason EvictReason) {
	if reason == EvictMemory {
		return
	}
	e.mem.Release(size)
	if e.metrics != nil {
		e.metrics.Evict(reason)
	}
}

// Set stores key/value with no expiry.
func (e *Engine) Set(key, value []byte) error {
	return e.setInternal(key, value, 0)
}

// SetWithTTL stores key/value with a relative expiry of ttlMs
// milliseconds from now. ttlMs must be nonzero; it is an error to call
// SetWithTTL while TTL support is disabled in the engine's Config.
func (e *Engine) SetWithTTL(key, value []byte, ttlMs uint64) error {
	if ttlMs == 0 {
		return errInvalidArgument("ttl_ms must be > 0; use Set for entries with no expiry")
	}
	if !e.cfg.EnableTTL {
		return errInvalidArgument("TTL support is disabled in this engine's configuration")
	}
	return e.setInternal(key, value, ttlMs)
}

func (e *Engine) setInternal(key, value []byte, ttlMs uint64) error {
	if len(key) == 0 {
		return errInvalidArgument("key must not be empty")
	}
	if uint64(len(value)) > e.cfg.MaxValueBytes {
		return errResourceExhausted("value exceeds max_value_bytes")
	}

	now := e.clock.NowMillis()
	delta := entrySize(key, value)
	s := e.router.shardFor(key)
	if ttlMs > 0 {
		s.setWithTTL(string(key), value, now, ttlMs)
	} else {
		s.set(string(key), value, now)
	}
	e.coordinator.onWrite(string(key), delta)
	return nil
}

// Get returns the value stored for key, if present and unexpired.
func (e *Engine) Get(key []byte) ([]byte, bool) {
	now := e.clock.NowMillis()
	s := e.router.shardFor(key)
	value, ok := s.get(string(key), now)
	if ok {
		e.coordinator.onRead(string(key))
		e.metrics.Hit()
	} else {
		e.metrics.Miss()
	}
	return value, ok
}

// Delete removes key unconditionally, reporting whether it was present.
func (e *Engine) Delete(key []byte) bool {
	s := e.router.shardFor(key)
	removed, size := s.delete(string(key))
	e.coordinator.onDelete(string(key), size)
	return removed
}

// ProcessExpired sweeps every shard for TTL-expired entries concurrently
// (shards never share locks, so fanning this out with errgroup is safe)
// and reports how many entries were removed in total.
func (e *Engine) ProcessExpired(ctx context.Context) (int, error) {
	now := e.clock.NowMillis()
	counts := make([]int, len(e.router.shards))

	g, _ := errgroup.WithContext(ctx)
	for i, s := range e.router.shards {
		i, s := i, s
		g.Go(func() error {
			counts[i] = s.cleanupExpired(now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	return total, nil
}

// ProcessEvictions asks the Eviction Coordinator to reclaim entries until
// the engine is back within its configured memory limit, returning how
// many entries were evicted.
func (e *Engine) ProcessEvictions() int {
	victims := e.coordinator.collectEvictionCandidates()
	return len(victims)
}

// Stats is a point-in-time snapshot useful for metrics exporters and
// debugging tools.
type Stats struct {
	Entries     int
	MemoryBytes uint64
	MemoryLimit uint64
	ShardCount  int
}

// Stats reports the engine's current size and memory usage.
func (e *Engine) Stats() Stats {
	entries := 0
	for _, s := range e.router.shards {
		entries += s.size()
	}
	return Stats{
		Entries:     entries,
		MemoryBytes: e.mem.CurrentUsage(),
		MemoryLimit: e.mem.MaxLimit(),
		ShardCount:  e.router.ShardCount(),
	}
}
