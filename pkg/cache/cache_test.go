package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get(missing) = ok=%v, err=%v", ok, err)
	}

	want := []byte(`{"type":"Catalog","id":"root"}`)
	if err := c.Set(ctx, "doc", want, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := c.Get(ctx, "doc")
	if err != nil || !ok || string(got) != string(want) {
		t.Fatalf("Get() = %q, %v, %v", got, ok, err)
	}

	if err := c.Delete(ctx, "doc"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "doc"); ok {
		t.Error("Get() hit after Delete()")
	}
	if err := c.Delete(ctx, "doc"); err != nil {
		t.Errorf("Delete() twice error = %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "doc", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok, err := c.Get(ctx, "doc"); ok || err != nil {
		t.Errorf("Get() after expiry = ok=%v, err=%v", ok, err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("NullCache Get() = ok=%v, err=%v", ok, err)
	}
}

func TestScopedCacheIsolation(t *testing.T) {
	backend, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	a := NewScopedCache(backend, "catalog-a:")
	b := NewScopedCache(backend, "catalog-b:")

	if err := a.Set(ctx, "doc", []byte("from-a"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := b.Get(ctx, "doc"); ok {
		t.Error("scope b sees scope a's entry")
	}
	got, ok, _ := a.Get(ctx, "doc")
	if !ok || string(got) != "from-a" {
		t.Errorf("scope a Get() = %q, %v", got, ok)
	}
}

func TestDocumentKey(t *testing.T) {
	k1 := DocumentKey("ns", "catalog/catalog.json")
	k2 := DocumentKey("ns", "catalog/other.json")
	if k1 == k2 {
		t.Error("distinct hrefs share a key")
	}
	if k1 != DocumentKey("ns", "catalog/catalog.json") {
		t.Error("DocumentKey is not deterministic")
	}
}
