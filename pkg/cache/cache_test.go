package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get on empty cache should miss")
	}

	if err := c.Set(ctx, "key", []byte("graph"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get = %v, hit=%v", err, hit)
	}
	if string(data) != "graph" {
		t.Errorf("Get = %q, want graph", data)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestFileCache_Expiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	// Non-positive TTL means no expiration.
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Error("entry with no expiration should hit")
	}

	if err := c.Set(ctx, "gone", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "gone"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCache_Clear(t *testing.T) {
	ctx := context.Background()
	raw, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	c := raw.(*FileCache)

	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)

	entries, size, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if entries != 2 || size == 0 {
		t.Errorf("Stats = (%d, %d), want 2 entries with nonzero size", entries, size)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
	if entries, _, _ := c.Stats(); entries != 0 {
		t.Errorf("Stats after Clear = %d entries, want 0", entries)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("v"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestGraphKey_Deterministic(t *testing.T) {
	a := GraphKey("meshhash", "height", 0.1)
	b := GraphKey("meshhash", "height", 0.1)
	if a != b {
		t.Error("GraphKey should be deterministic")
	}
	if a == GraphKey("meshhash", "height", 0.2) {
		t.Error("threshold must contribute to the key")
	}
	if a == GraphKey("meshhash", "pressure", 0.1) {
		t.Error("field must contribute to the key")
	}
}

func TestHash_Shape(t *testing.T) {
	h := Hash([]byte("hello"))
	if len(h) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h))
	}
	if h == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
}
