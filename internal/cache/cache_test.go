package cache_test

import (
	"testing"
	"time"

	"github.com/academic-hub/csv-portal/internal/cache"
)

func TestCache_SetGet(t *testing.T) {
	c := cache.New()
	c.Set(cache.Key("a", "b"), 42, time.Minute)

	v, ok := c.Get("a|b")
	if !ok {
		t.Fatalf("expected hit")
	}
	if v.(int) != 42 {
		t.Fatalf("unexpected value: %v", v)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := cache.New()
	c.Set("k", "v", time.Millisecond)

	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected expired entry")
	}
}

func TestCache_NoTTL(t *testing.T) {
	c := cache.New()
	c.Set("k", "v", 0)

	time.Sleep(2 * time.Millisecond)

	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected entry without ttl to persist")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New()
	c.Set("k", "v", time.Minute)
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after delete")
	}
}
