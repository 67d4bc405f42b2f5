package engine

import "sync/atomic"

// MemoryTracker is a process-wide atomic counter of estimated bytes in
// use. Release saturates at zero via a compare-and-swap loop instead of
// a raw subtract, so the counter never wraps or goes negative even if
// Reserve/Release calls race or drift.
type MemoryTracker struct {
	current atomic.Uint64
	max     uint64
}

// NewMemoryTracker builds a tracker capped at maxBytes. maxBytes must be
// greater than zero.
func NewMemoryTracker(maxBytes uint64) (*MemoryTracker, error) {
	if maxBytes == 0 {
		return nil, errInvalidArgument("max_memory_bytes must be > 0")
	}
	return &MemoryTracker{max: maxBytes}, nil
}

// Reserve adds delta bytes to the running total and reports whether the
// tracker is now over its limit.
func (m *MemoryTracker) Reserve(delta uint64) bool {
	m.current.Add(delta)
	return m.IsOverLimit()
}

// Release subtracts delta bytes from the running total, clamping at
// zero rather than wrapping.
func (m *MemoryTracker) Release(delta uint64) {
	for {
		cur := m.current.Load()
		var next uint64
		if delta >= cur {
			next = 0
		} else {
			next = cur - delta
		}
		if m.current.CompareAndSwap(cur, next) {
			return
		}
	}
}

// CurrentUsage returns the tracker's current estimated byte count.
func (m *MemoryTracker) CurrentUsage() uint64 { return m.current.Load() }

// MaxLimit returns the configured byte ceiling.
func (m *MemoryTracker) MaxLimit() uint64 { return m.max }

// IsOverLimit reports whether current usage exceeds the configured max.
func (m *MemoryTracker) IsOverLimit() bool { return m.current.Load() > m.max }
