// Package stacio abstracts where STAC documents live. A Source reads
// and writes raw document bytes by href; the JSON layer stays unaware
// of storage, and catalogs can move between directories, memory, and
// cached backends without touching the object model.
package stacio

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/stac-utils/gostac/pkg/errors"
	"github.com/stac-utils/gostac/pkg/stacutil"
)

// Source reads and writes STAC documents by href. Hrefs are
// slash-separated and relative to the source root.
type Source interface {
	// Read returns the document bytes at href. A missing document is a
	// NOT_FOUND error.
	Read(ctx context.Context, href string) ([]byte, error)
	// Write stores the document bytes at href, creating intermediate
	// directories as the backend requires.
	Write(ctx context.Context, href string, data []byte) error
}

// FileSource serves documents from a directory tree on disk.
type FileSource struct {
	root string
}

// NewFileSource creates a source rooted at dir, creating the directory
// if needed.
func NewFileSource(dir string) (*FileSource, error) {
	dir = stacutil.NormalizePath(dir)
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidValue, "source directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileSource{root: dir}, nil
}

// Root returns the source's root directory.
func (s *FileSource) Root() string { return s.root }

// Read returns the document bytes at href.
func (s *FileSource) Read(ctx context.Context, href string) ([]byte, error) {
	path, err := s.resolve(href)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "no document at %q", href)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %q", href)
	}
	return data, nil
}

// Write stores the document bytes at href, creating parent directories.
func (s *FileSource) Write(ctx context.Context, href string, data []byte) error {
	path, err := s.resolve(href)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create directories for %q", href)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %q", href)
	}
	return nil
}

// resolve maps an href to a file path under the root, rejecting
// escapes.
func (s *FileSource) resolve(href string) (string, error) {
	if err := errors.ValidateHref(href); err != nil {
		return "", err
	}
	clean := stacutil.ResolveHref("", href)
	if clean == "" || strings.HasPrefix(clean, "../") {
		return "", errors.New(errors.ErrCodeInvalidHref, "href %q escapes the source root", href)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// MemorySource keeps documents in a map. Useful in tests and for
// assembling catalogs that never touch disk.
type MemorySource struct {
	docs map[string][]byte
}

// NewMemorySource creates an empty in-memory source.
func NewMemorySource() *MemorySource {
	return &MemorySource{docs: make(map[string][]byte)}
}

// Read returns the document bytes at href.
func (s *MemorySource) Read(ctx context.Context, href string) ([]byte, error) {
	data, ok := s.docs[normalizeKey(href)]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no document at %q", href)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write stores the document bytes at href.
func (s *MemorySource) Write(ctx context.Context, href string, data []byte) error {
	if err := errors.ValidateHref(href); err != nil {
		return err
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	s.docs[normalizeKey(href)] = stored
	return nil
}

// Hrefs returns the hrefs of every stored document.
func (s *MemorySource) Hrefs() []string {
	out := make([]string, 0, len(s.docs))
	for href := range s.docs {
		out = append(out, href)
	}
	return out
}

func normalizeKey(href string) string {
	return stacutil.ResolveHref("", href)
}

var (
	_ Source = (*FileSource)(nil)
	_ Source = (*MemorySource)(nil)
)
