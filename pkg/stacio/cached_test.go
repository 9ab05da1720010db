package stacio

import (
	"context"
	"testing"

	"github.com/stac-utils/gostac/pkg/cache"
)

// countingSource counts backend reads to observe cache hits.
type countingSource struct {
	inner Source
	reads int
}

func (s *countingSource) Read(ctx context.Context, href string) ([]byte, error) {
	s.reads++
	return s.inner.Read(ctx, href)
}

func (s *countingSource) Write(ctx context.Context, href string, data []byte) error {
	return s.inner.Write(ctx, href, data)
}

func TestCachedSourceHitsCache(t *testing.T) {
	mem := NewMemorySource()
	ctx := context.Background()
	if err := mem.Write(ctx, "root.json", []byte(`{"id":"root"}`)); err != nil {
		t.Fatal(err)
	}

	backend := &countingSource{inner: mem}
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	src := NewCachedSource(backend, fc, "test", 0)

	for i := 0; i < 3; i++ {
		got, err := src.Read(ctx, "root.json")
		if err != nil || string(got) != `{"id":"root"}` {
			t.Fatalf("Read() #%d = %q, %v", i, got, err)
		}
	}
	if backend.reads != 1 {
		t.Errorf("backend reads = %d, want 1", backend.reads)
	}
}

func TestCachedSourceWriteRefreshes(t *testing.T) {
	mem := NewMemorySource()
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	backend := &countingSource{inner: mem}
	src := NewCachedSource(backend, fc, "test", 0)

	if err := src.Write(ctx, "doc.json", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	if got, _ := src.Read(ctx, "doc.json"); string(got) != "v1" {
		t.Fatalf("Read() = %q", got)
	}
	if backend.reads != 0 {
		t.Errorf("backend reads = %d, want 0 (write primed the cache)", backend.reads)
	}

	if err := src.Write(ctx, "doc.json", []byte("v2")); err != nil {
		t.Fatal(err)
	}
	if got, _ := src.Read(ctx, "doc.json"); string(got) != "v2" {
		t.Errorf("Read() after rewrite = %q, want v2", got)
	}
}

func TestCachedSourceNilCache(t *testing.T) {
	mem := NewMemorySource()
	ctx := context.Background()
	if err := mem.Write(ctx, "x.json", []byte("{}")); err != nil {
		t.Fatal(err)
	}
	src := NewCachedSource(mem, nil, "test", 0)
	if got, err := src.Read(ctx, "x.json"); err != nil || string(got) != "{}" {
		t.Errorf("Read() = %q, %v", got, err)
	}
}
