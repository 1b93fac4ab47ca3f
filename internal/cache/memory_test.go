package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemorySetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Fatal("unexpected hit")
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(got) != "v" {
		t.Fatalf("Get() = %q, %v, %v", got, ok, err)
	}

	got[0] = 'x' // callers cannot corrupt the stored value
	if again, _, _ := c.Get(ctx, "k"); string(again) != "v" {
		t.Errorf("stored value mutated to %q", again)
	}

	_ = c.Delete(ctx, "k")
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("hit after delete")
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	now = now.Add(59 * time.Second)
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Error("expired too early")
	}
	now = now.Add(time.Second)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("entry outlived its ttl")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not evicted, len = %d", c.Len())
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%5))
			_ = c.Set(ctx, key, []byte{byte(i)}, time.Minute)
			_, _, _ = c.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	if c.Len() != 5 {
		t.Errorf("len = %d, want 5", c.Len())
	}
}
