package engine

import "testing"

func TestNewRouterRejectsNonPowerOfTwoShardCount(t *testing.T) {
	if _, err := newRouter(3, 8, nil); err == nil {
		t.Fatal("expected an error for a non-power-of-two shard count")
	}
}

func TestNewRouterRejectsZeroShardCount(t *testing.T) {
	if _, err := newRouter(0, 8, nil); err == nil {
		t.Fatal("expected an error for a zero shard count")
	}
}

func TestRouterShardForIsDeterministic(t *testing.T) {
	r, err := newRouter(8, 64, nil)
	if err != nil {
		t.Fatal(err)
	}
	a := r.shardFor([]byte("hello"))
	b := r.shardFor([]byte("hello"))
	if a != b {
		t.Fatal("shardFor must route the same key to the same shard")
	}
}

func TestRouterShardCountMatchesConfig(t *testing.T) {
	r, err := newRouter(16, 64, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.ShardCount() != 16 {
		t.Fatalf("ShardCount() = %d, want 16", r.ShardCount())
	}
}

func TestRouterEvictFromShard(t *testing.T) {
	r, _ := newRouter(2, 64, nil)
	s := r.shardFor([]byte("k"))
	s.set("k", []byte("v"), 1000)

	// Find which shard index owns "k" by scanning both.
	idx := -1
	for i, sh := range r.shards {
		if sh == s {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatal("failed to locate the owning shard index")
	}

	key, size, ok := r.EvictFromShard(idx)
	if !ok || key != "k" || size == 0 {
		t.Fatalf("EvictFromShard(%d) = %q, %d, %v; want k, >0, true", idx, key, size, ok)
	}
}
