package stacutil

import (
	"path"
	"strings"
)

// NormalizePath removes a trailing slash from a directory or catalog path.
// The root path "/" maps to the empty string so that joining it with an
// entity id produces "/id".
func NormalizePath(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	return strings.TrimSuffix(p, "/")
}

// JoinHref joins a base directory or URL prefix with a relative reference.
// Absolute references are returned unchanged.
func JoinHref(base, ref string) string {
	if IsAbsoluteHref(ref) {
		return ref
	}
	base = NormalizePath(base)
	if base == "" {
		return strings.TrimPrefix(ref, "./")
	}
	return base + "/" + strings.TrimPrefix(ref, "./")
}

// IsAbsoluteHref reports whether ref is an absolute URL or filesystem path.
func IsAbsoluteHref(ref string) bool {
	return strings.Contains(ref, "://") || strings.HasPrefix(ref, "/")
}

// ResolveHref resolves a possibly relative reference against the href of
// the document it appeared in. "../" segments are collapsed.
func ResolveHref(docHref, ref string) string {
	if IsAbsoluteHref(ref) {
		return ref
	}
	dir := path.Dir(docHref)
	if dir == "." {
		return path.Clean(ref)
	}
	return path.Clean(dir + "/" + ref)
}
