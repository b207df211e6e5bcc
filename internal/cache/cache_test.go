package cache

import (
	"bytes"
	"testing"
	"time"

	"github.com/ecotrace/campaignscan/internal/model"
)

func TestKey_StableAndDistinct(t *testing.T) {
	a := Key("https://example.com/toxics/")
	b := Key("https://example.com/toxics/")
	c := Key("https://example.com/oceans/")

	if a != b {
		t.Errorf("Expected stable keys, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected distinct keys for distinct URLs")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := Key("https://example.com")

	if _, found := c.Get(key); found {
		t.Error("Expected miss before set")
	}

	if err := c.Set(key, []byte(`{"has_campaign_targets":true}`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get(key)
	if !found {
		t.Fatal("Expected hit after set")
	}
	if !bytes.Equal(val, []byte(`{"has_campaign_targets":true}`)) {
		t.Errorf("Unexpected payload: %s", val)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := Key("https://example.com")

	if err := c.Set(key, []byte("payload"), time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found := c.Get(key); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Hour, dir, time.Hour)
	key := Key("https://example.com")

	// Seed the disk layer only, simulating a fresh process with a warm
	// disk cache
	if err := NewDiskCache(dir, time.Hour).Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get(key)
	if !found || !bytes.Equal(val, []byte("payload")) {
		t.Fatalf("Expected disk hit, got found=%v val=%s", found, val)
	}

	// The hit was promoted to memory
	if _, found := c.memory.Get(key); !found {
		t.Error("Expected promotion into the memory layer")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Hour, time.Hour)
	key := Key("https://example.com")

	if err := c.Set(key, []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found := c.Get(key)
	if !found || !bytes.Equal(val, []byte("payload")) {
		t.Errorf("Expected hit, got found=%v val=%s", found, val)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("Expected miss after clear")
	}
}

func TestFromConfig(t *testing.T) {
	if c, err := FromConfig(model.CacheConfig{Enabled: false}); err != nil || c != nil {
		t.Errorf("Expected nil cache when disabled, got %v, %v", c, err)
	}

	c, err := FromConfig(model.CacheConfig{Enabled: true, Backend: "memory", TTL: time.Hour})
	if err != nil || c == nil {
		t.Errorf("Expected memory cache, got %v, %v", c, err)
	}

	if _, err := FromConfig(model.CacheConfig{Enabled: true, Backend: "disk"}); err == nil {
		t.Error("Expected error for disk backend without dir")
	}

	if _, err := FromConfig(model.CacheConfig{Enabled: true, Backend: "redis"}); err == nil {
		t.Error("Expected error for unknown backend")
	}
}
