// Package stacutil provides small stateless helpers shared across the
// gostac object model: RFC 3339 datetime handling, bounding-box math,
// and href normalization.
package stacutil

import (
	"time"

	"github.com/stac-utils/gostac/pkg/errors"
)

// DatetimeFormat is the canonical serialization format for STAC timestamps:
// RFC 3339, section 5.6, in UTC with a Z suffix.
const DatetimeFormat = "2006-01-02T15:04:05Z"

// acceptedFormats lists the layouts ParseDatetime tries, most common first.
// Fractional seconds and numeric offsets appear in the wild even though the
// spec recommends Z-suffixed UTC.
var acceptedFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDatetime parses an RFC 3339 timestamp into a UTC time.
// Returns an INVALID_DATETIME error if the value matches none of the
// accepted layouts.
func ParseDatetime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New(errors.ErrCodeInvalidDatetime, "datetime cannot be empty")
	}
	for _, layout := range acceptedFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidDatetime, "invalid RFC 3339 datetime: %q", value)
}

// FormatDatetime renders a time in the canonical STAC serialization format.
// Sub-second precision is preserved when present.
func FormatDatetime(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond() != 0 {
		return t.Format("2006-01-02T15:04:05.999999999Z")
	}
	return t.Format(DatetimeFormat)
}
