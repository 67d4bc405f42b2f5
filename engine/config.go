package engine

import "github.com/Gagan2004bansal/KVMemo/internal/util"

// EvictionPolicyKind selects the Eviction Coordinator's victim policy.
type EvictionPolicyKind int

const (
	// EvictionPolicyNone disables memory-pressure eviction; only TTL
	// expiry and per-shard capacity overflow remove entries.
	EvictionPolicyNone EvictionPolicyKind = iota
	// EvictionPolicyLRU evicts the process's least-recently-used entries
	// (collapsed into the shards' own recency indexes) once over the
	// configured memory limit.
	EvictionPolicyLRU
)

func (k EvictionPolicyKind) String() string {
	switch k {
	case EvictionPolicyNone:
		return "none"
	case EvictionPolicyLRU:
		return "lru"
	default:
		return "unknown"
	}
}

// Config is the engine's startup configuration surface.
type Config struct {
	ShardCount     int    `koanf:"shard_count"`
	MaxMemoryBytes uint64 `koanf:"max_memory_bytes"`
	MaxValueBytes  uint64 `koanf:"max_value_bytes"`
	ListenPort     int    `koanf:"listen_port"`
	MaxConnections int    `koanf:"max_connections"`
	// WorkerThreads sizes cmd/server's connection-handling goroutine
	// pool; 0 means one worker per CPU.
	WorkerThreads      int                `koanf:"worker_threads"`
	EnableTTL          bool               `koanf:"enable_ttl"`
	TTLSweepIntervalMs uint32             `koanf:"ttl_sweep_interval_ms"`
	EnableMetrics      bool               `koanf:"enable_metrics"`
	EvictionPolicy     EvictionPolicyKind `koanf:"eviction_policy"`
}

// DefaultConfig returns sane production defaults: 64 shards, 256MiB
// memory ceiling, 8MiB max value, LRU eviction, TTL enabled with a
// 250ms sweep.
func DefaultConfig() Config {
	return Config{
		ShardCount:         64,
		MaxMemoryBytes:     256 << 20,
		MaxValueBytes:      8 << 20,
		ListenPort:         8080,
		MaxConnections:     4096,
		WorkerThreads:      0,
		EnableTTL:          true,
		TTLSweepIntervalMs: 250,
		EnableMetrics:      true,
		EvictionPolicy:     EvictionPolicyLRU,
	}
}

// Validate checks every field for internal consistency. A non-power-of-
// two shard_count is rejected outright rather than silently rounded up,
// so configuration mistakes surface instead of being auto-corrected.
func (c Config) Validate() error {
	if c.ShardCount <= 0 {
		return errInvalidArgument("shard_count must be > 0")
	}
	if !util.IsPowerOfTwo(uint64(c.ShardCount)) {
		return errInvalidArgument("shard_count must be a power of two")
	}
	if c.MaxMemoryBytes == 0 {
		return errInvalidArgument("max_memory_bytes must be > 0")
	}
	if c.MaxValueBytes == 0 {
		return errInvalidArgument("max_value_bytes must be > 0")
	}
	if c.MaxValueBytes > c.MaxMemoryBytes {
		return errInvalidArgument("max_value_bytes must not exceed max_memory_bytes")
	}
	if c.ListenPort == 0 {
		return errInvalidArgument("listen_port must be nonzero")
	}
	if c.MaxConnections <= 0 {
		return errInvalidArgument("max_connections must be > 0")
	}
	if c.WorkerThreads > 1024 {
		return errInvalidArgument("worker_threads must be <= 1024")
	}
	if c.EnableTTL && c.TTLSweepIntervalMs == 0 {
		return errInvalidArgument("ttl_sweep_interval_ms must be > 0 when enable_ttl is set")
	}
	switch c.EvictionPolicy {
	case EvictionPolicyNone, EvictionPolicyLRU:
	default:
		return errInvalidArgument("eviction_policy must be none or lru")
	}
	return nil
}
