package infrastructure

import (
	"fmt"
	"testing"
	"time"
)

// ========================================
// Tests: SlotCache
// ========================================

func TestSlotCache_SetGet(t *testing.T) {
	cache := NewSlotCache()
	cache.Set("reservations:a", "table-a", 0)

	v, ok := cache.Get("reservations:a")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if v.(string) != "table-a" {
		t.Errorf("Get = %v, want table-a", v)
	}
	if !cache.Has("reservations:a") {
		t.Error("Has should report the stored key")
	}
	if cache.Has("reservations:b") {
		t.Error("Has should not report an unknown key")
	}
}

func TestSlotCache_NewKeyEvictsPreviousSlot(t *testing.T) {
	cache := NewSlotCache()
	cache.Set("file:a", 1, 0)
	cache.Set("file:b", 2, 0)

	if _, ok := cache.Get("file:a"); ok {
		t.Error("Expected previous slot to be evicted")
	}
	if v, ok := cache.Get("file:b"); !ok || v.(int) != 2 {
		t.Errorf("Expected file:b = 2, got %v (%v)", v, ok)
	}
	if cache.CurrentKey() != "file:b" {
		t.Errorf("CurrentKey = %q", cache.CurrentKey())
	}
}

func TestSlotCache_ClearInvalidatesWholesale(t *testing.T) {
	cache := NewSlotCache()
	cache.Set("file:a", 1, 0)
	cache.Clear()

	if cache.Has("file:a") {
		t.Error("Expected empty cache after Clear")
	}
	if cache.CurrentKey() != "" {
		t.Error("Expected no current key after Clear")
	}
}

func TestSlotCache_DeleteOnlyMatchingKey(t *testing.T) {
	cache := NewSlotCache()
	cache.Set("file:a", 1, 0)

	cache.Delete("file:other")
	if !cache.Has("file:a") {
		t.Error("Delete of another key must not evict the slot")
	}

	cache.Delete("file:a")
	if cache.Has("file:a") {
		t.Error("Expected slot to be deleted")
	}
}

func TestSlotCache_Expiration(t *testing.T) {
	cache := NewSlotCache()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("file:a", 1, time.Minute)
	entry, ok := cache.Entry("file:a")
	if !ok {
		t.Fatal("Expected fresh entry")
	}
	if !entry.StoredAt.Equal(now) {
		t.Errorf("StoredAt = %v, want %v", entry.StoredAt, now)
	}

	now = now.Add(2 * time.Minute)
	if cache.Has("file:a") {
		t.Error("Expected entry to be expired")
	}
}

func TestSlotCache_NoTTLNeverExpires(t *testing.T) {
	cache := NewSlotCache()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set("file:a", 1, 0)
	now = now.Add(365 * 24 * time.Hour)
	if !cache.Has("file:a") {
		t.Error("Entry without TTL should survive until invalidated")
	}
}

func TestCacheKeyBuilder(t *testing.T) {
	key := NewCacheKeyBuilder().
		Add("reservations").
		Add("Reservations.xlsx").
		AddInt(42).
		Build()
	if key != "reservations:Reservations.xlsx:42" {
		t.Errorf("Build = %q", key)
	}
}

// ========================================
// Benchmarks
// ========================================

// BenchmarkSlotCache_Get_Hit teste Get sur l'emplacement courant
func BenchmarkSlotCache_Get_Hit(b *testing.B) {
	cache := NewSlotCache()
	cache.Set("key1", "value1", 5*time.Minute)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = cache.Get("key1")
	}
}

// BenchmarkSlotCache_Get_HighContention teste Get avec haute contention
func BenchmarkSlotCache_Get_HighContention(b *testing.B) {
	cache := NewSlotCache()
	cache.Set("shared_key", "shared_value", 0)

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = cache.Get("shared_key")
		}
	})
}

// BenchmarkCacheKeyBuilder compare le builder à fmt.Sprintf
func BenchmarkCacheKeyBuilder(b *testing.B) {
	b.Run("CacheKeyBuilder", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = NewCacheKeyBuilder().Add("reservations").Add("file.xlsx").AddInt(365).Build()
		}
	})

	b.Run("fmt_Sprintf", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = fmt.Sprintf("reservations:%s:%d", "file.xlsx", 365)
		}
	})
}
