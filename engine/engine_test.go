package engine

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct{ t int64 }

func (f *fakeClock) NowMillis() int64    { return f.t }
func (f *fakeClock) add(d time.Duration) { f.t += int64(d / time.Millisecond) }

func newTestEngine(t *testing.T, clk *fakeClock, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg, WithClock(clk))
	if err != nil {
		t.Fatalf("New(): %v", err)
	}
	return e
}

func TestEngineSetGetDelete(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{}
	e := newTestEngine(t, clk, DefaultConfig())

	if err := e.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok := e.Get([]byte("k"))
	if !ok || string(v) != "v" {
		t.Fatalf("Get = %q, %v; want v, true", v, ok)
	}
	if !e.Delete([]byte("k")) {
		t.Fatal("Delete must report true for a present key")
	}
	if _, ok := e.Get([]byte("k")); ok {
		t.Fatal("k must be absent after Delete")
	}
	if e.Delete([]byte("k")) {
		t.Fatal("Delete must report false for an absent key")
	}
}

func TestEngineSetRejectsEmptyKey(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, &fakeClock{}, DefaultConfig())
	if err := e.Set(nil, []byte("v")); err == nil {
		t.Fatal("expected an error for an empty key")
	}
}

func TestEngineSetRejectsOversizedValue(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.MaxValueBytes = 4
	e := newTestEngine(t, &fakeClock{}, cfg)

	err := e.Set([]byte("k"), []byte("too-big"))
	if err == nil {
		t.Fatal("expected an error for an oversized value")
	}
	var kerr *Error
	if ok := asEngineError(err, &kerr); !ok || kerr.Kind != ErrKindResourceExhausted {
		t.Fatalf("expected ErrKindResourceExhausted, got %v", err)
	}
}

func TestEngineSetWithTTLRejectsZeroTTL(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, &fakeClock{}, DefaultConfig())
	if err := e.SetWithTTL([]byte("k"), []byte("v"), 0); err == nil {
		t.Fatal("expected an error for ttl_ms == 0")
	}
}

func TestEngineSetWithTTLRejectedWhenTTLDisabled(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.EnableTTL = false
	e := newTestEngine(t, &fakeClock{}, cfg)
	if err := e.SetWithTTL([]byte("k"), []byte("v"), 100); err == nil {
		t.Fatal("expected an error when TTL support is disabled")
	}
}

func TestEngineTTLExpiryViaGet(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{}
	e := newTestEngine(t, clk, DefaultConfig())

	if err := e.SetWithTTL([]byte("k"), []byte("v"), 100); err != nil {
		t.Fatalf("SetWithTTL: %v", err)
	}
	if _, ok := e.Get([]byte("k")); !ok {
		t.Fatal("expected a hit before the deadline")
	}
	clk.add(200 * time.Millisecond)
	if _, ok := e.Get([]byte("k")); ok {
		t.Fatal("expected a miss after the deadline")
	}
}

func TestEngineProcessExpiredSweepsAcrossShards(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{}
	e := newTestEngine(t, clk, DefaultConfig())

	for i := 0; i < 50; i++ {
		key := []byte{byte(i)}
		if err := e.SetWithTTL(key, []byte("v"), 10); err != nil {
			t.Fatalf("SetWithTTL(%d): %v", i, err)
		}
	}
	clk.add(50 * time.Millisecond)

	n, err := e.ProcessExpired(context.Background())
	if err != nil {
		t.Fatalf("ProcessExpired: %v", err)
	}
	if n != 50 {
		t.Fatalf("ProcessExpired removed %d, want 50", n)
	}
	if got := e.Stats().Entries; got != 0 {
		t.Fatalf("Stats().Entries = %d, want 0", got)
	}
}

func TestEngineProcessEvictionsReclaimsMemory(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.ShardCount = 1
	cfg.MaxMemoryBytes = 128
	cfg.MaxValueBytes = 64
	cfg.EvictionPolicy = EvictionPolicyLRU
	e := newTestEngine(t, &fakeClock{}, cfg)

	for i := 0; i < 10; i++ {
		if err := e.Set([]byte{byte(i)}, []byte("0123456789")); err != nil {
			t.Fatalf("Set(%d): %v", i, err)
		}
	}
	if n := e.ProcessEvictions(); n == 0 {
		t.Fatal("expected at least one eviction over the memory limit")
	}
	if e.Stats().MemoryBytes > e.Stats().MemoryLimit {
		t.Fatal("expected memory usage back within limit after ProcessEvictions")
	}
}

func TestEngineProcessEvictionsNoopUnderLimit(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, &fakeClock{}, DefaultConfig())
	if err := e.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatal(err)
	}
	if n := e.ProcessEvictions(); n != 0 {
		t.Fatalf("ProcessEvictions() = %d, want 0 while under the memory limit", n)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.ShardCount = 3
	if _, err := New(cfg); err == nil {
		t.Fatal("expected New to reject an invalid config")
	}
}

// asEngineError is a small helper that checks err with a plain type
// assertion to *Error, so this one-off test assertion needs no errors
// import.
func asEngineError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
