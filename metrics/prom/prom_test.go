package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/Gagan2004bansal/KVMemo/engine"
)

func TestAdapterCountsHitsMissesAndEvictions(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := New(reg, "kvmemo", "test", nil)

	a.Hit()
	a.Hit()
	a.Miss()
	a.Evict(engine.EvictTTL)
	a.Evict(engine.EvictMemory)
	a.Evict(engine.EvictMemory)
	a.Size(3, 512)

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}

	counts := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			counts[mf.GetName()+labelSuffix(m)] += metricValue(m)
		}
	}

	if counts["kvmemo_test_hits_total"] != 2 {
		t.Fatalf("hits_total = %v, want 2", counts["kvmemo_test_hits_total"])
	}
	if counts["kvmemo_test_misses_total"] != 1 {
		t.Fatalf("misses_total = %v, want 1", counts["kvmemo_test_misses_total"])
	}
	if counts["kvmemo_test_evictions_total{reason=ttl}"] != 1 {
		t.Fatalf("evictions_total{reason=ttl} = %v, want 1", counts["kvmemo_test_evictions_total{reason=ttl}"])
	}
	if counts["kvmemo_test_evictions_total{reason=memory}"] != 2 {
		t.Fatalf("evictions_total{reason=memory} = %v, want 2", counts["kvmemo_test_evictions_total{reason=memory}"])
	}
}

func labelSuffix(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	out := "{"
	for i, l := range m.GetLabel() {
		if i > 0 {
			out += ","
		}
		out += l.GetName() + "=" + l.GetValue()
	}
	return out + "}"
}

func metricValue(m *dto.Metric) float64 {
	if c := m.GetCounter(); c != nil {
		return c.GetValue()
	}
	if g := m.GetGauge(); g != nil {
		return g.GetValue()
	}
	return 0
}
