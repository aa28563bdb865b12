package analytics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/snmpconsole/internal/history"
	"github.com/studiowebux/snmpconsole/internal/types"
)

func intPtr(i int64) *int64 { return &i }

func newTestManagers(t *testing.T) (*history.Manager, *Manager) {
	t.Helper()
	hist, err := history.NewManager(filepath.Join(t.TempDir(), "frames.db"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { hist.Close() })
	return hist, NewManager(hist.DB())
}

func TestGetStats_Empty(t *testing.T) {
	_, m := newTestManagers(t)

	stats, err := m.GetStats(ByType)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats == nil || len(stats) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", stats)
	}
}

func TestGetStats_GroupsAndOrders(t *testing.T) {
	hist, m := newTestManagers(t)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	hist.Save(types.TrameRecord{Timestamp: base, Type: "GET", Target: "10.0.0.1", OID: "1.3", LatencyMs: intPtr(10)})
	hist.Save(types.TrameRecord{Timestamp: base.Add(time.Minute), Type: "GET", Target: "10.0.0.2", OID: "1.3", LatencyMs: intPtr(30)})
	hist.Save(types.TrameRecord{Timestamp: base.Add(2 * time.Minute), Type: "SET", Target: "10.0.0.1", OID: "1.3", LatencyMs: intPtr(5)})

	byType, err := m.GetStats(ByType)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if len(byType) != 2 {
		t.Fatalf("len = %d, want 2", len(byType))
	}

	get := byType[0]
	if get.Key != "GET" || get.TotalCalls != 2 {
		t.Errorf("first group = %+v, want GET x2", get)
	}
	if get.AvgLatencyMs != 20 || get.MinLatencyMs != 10 || get.MaxLatencyMs != 30 {
		t.Errorf("latency avg/min/max = %v/%d/%d", get.AvgLatencyMs, get.MinLatencyMs, get.MaxLatencyMs)
	}
	if !get.LastCalled.Equal(base.Add(time.Minute)) {
		t.Errorf("last called = %v, want %v", get.LastCalled, base.Add(time.Minute))
	}

	byTarget, err := m.GetStats(ByTarget)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if len(byTarget) != 2 || byTarget[0].Key != "10.0.0.1" || byTarget[0].TotalCalls != 2 {
		t.Errorf("unexpected per-target stats %+v", byTarget)
	}
}

func TestGetStats_UnknownGrouping(t *testing.T) {
	_, m := newTestManagers(t)

	if _, err := m.GetStats("oid"); err == nil {
		t.Error("expected error for unknown grouping")
	}
}

func TestGetStats_CacheAndInvalidate(t *testing.T) {
	hist, m := newTestManagers(t)

	hist.Save(types.TrameRecord{Type: "GET", Target: "10.0.0.1", OID: "1.3"})
	first, err := m.GetStats(ByType)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	hist.Save(types.TrameRecord{Type: "TRAP", Target: "10.0.0.1", OID: "1.3"})
	cached, _ := m.GetStats(ByType)
	if len(cached) != len(first) {
		t.Errorf("expected cached stats, got %d groups", len(cached))
	}

	m.Invalidate()
	fresh, _ := m.GetStats(ByType)
	if len(fresh) != 2 {
		t.Errorf("expected 2 groups after invalidate, got %d", len(fresh))
	}
}

func TestStatsCache_Expires(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	c := newStatsCache(DefaultCacheTTL)
	c.now = func() time.Time { return now }

	c.set(ByTarget, []Stats{{Key: "10.0.0.1", TotalCalls: 1}})
	if _, ok := c.get(ByTarget); !ok {
		t.Fatal("expected fresh entry")
	}

	now = now.Add(DefaultCacheTTL)
	if _, ok := c.get(ByTarget); ok {
		t.Error("entry should expire after the ttl")
	}
}

func TestGetReport(t *testing.T) {
	hist, m := newTestManagers(t)

	hist.Save(types.TrameRecord{Type: "GET", Target: "10.0.0.1", OID: "1.3"})
	hist.Save(types.TrameRecord{Type: "SET", Target: "10.0.0.2", OID: "1.3"})

	r, err := m.GetReport()
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if r.Total != 2 || len(r.PerType) != 2 || len(r.PerTarget) != 2 {
		t.Errorf("unexpected report %+v", r)
	}
}
