package engine

import (
	"strconv"
	"testing"
)

func BenchmarkEngineSet(b *testing.B) {
	e, err := New(DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := []byte(strconv.Itoa(i % 100_000))
			_ = e.Set(key, []byte("v"))
			i++
		}
	})
}

func BenchmarkEngineGetHit(b *testing.B) {
	e, err := New(DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 100_000; i++ {
		_ = e.Set([]byte(strconv.Itoa(i)), []byte("v"))
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = e.Get([]byte(strconv.Itoa(i % 100_000)))
			i++
		}
	})
}

func BenchmarkEngineMixed(b *testing.B) {
	cfg := DefaultConfig()
	e, err := New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := []byte(strconv.Itoa(i % 100_000))
			if i%5 == 0 {
				_ = e.Set(key, []byte("v"))
			} else {
				_, _ = e.Get(key)
			}
			i++
		}
	})
}
