// Package none implements the "no eviction" victim policy: writes past
// the configured memory limit are accepted and never reclaimed by the
// Eviction Coordinator. Capacity-driven per-shard LRU eviction still
// happens independently (see engine.shard), since that bound is a
// structural property of the recency index, not a policy choice.
package none

import "github.com/Gagan2004bansal/KVMemo/policy"

// Policy never selects a victim.
type Policy struct{}

// New returns the no-op victim policy.
func New() *Policy { return &Policy{} }

func (Policy) OnRead(key string)   {}
func (Policy) OnWrite(key string)  {}
func (Policy) OnDelete(key string) {}

func (Policy) SelectVictim(src policy.ShardSource) (key string, size uint64, ok bool) {
	return "", 0, false
}
