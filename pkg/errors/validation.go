package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateID validates an entity identifier.
// Identifiers become file names when a catalog is saved to disk, so the
// rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "identifier cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidID, "identifier too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "identifier contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidID, "identifier contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateHref validates a link or asset href.
// Relative and absolute references are both allowed per the STAC spec,
// so this only rejects empty strings, embedded whitespace-control bytes,
// and absolute URLs that do not parse.
func ValidateHref(href string) error {
	if href == "" {
		return New(ErrCodeInvalidHref, "href cannot be empty")
	}

	for _, r := range href {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidHref, "href contains invalid characters")
		}
	}

	if strings.Contains(href, "://") {
		if _, err := url.Parse(href); err != nil {
			return Wrap(ErrCodeInvalidHref, err, "malformed URL %q", href)
		}
	}

	return nil
}

// ValidateAssetKey validates the key an asset is stored under within an item.
// Keys are plain map keys, never paths.
func ValidateAssetKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidValue, "asset key cannot be empty")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidValue, "asset key contains invalid control characters")
		}
	}

	return nil
}

// ValidateNonEmpty validates that a required string field is set.
// The field name is included in the error message for context.
func ValidateNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return New(ErrCodeInvalidValue, "%s cannot be empty", field)
	}
	return nil
}
