package stac

import "github.com/stac-utils/gostac/pkg/errors"

// Range is a closed numeric interval used in collection summaries.
type Range struct {
	Minimum float64
	Maximum float64
}

// NewRange builds a validated range. The minimum must not exceed the
// maximum; a degenerate range with min == max is allowed.
func NewRange(minimum, maximum float64) (Range, error) {
	if minimum > maximum {
		return Range{}, errors.New(errors.ErrCodeInvalidValue,
			"range minimum %g exceeds maximum %g", minimum, maximum)
	}
	return Range{Minimum: minimum, Maximum: maximum}, nil
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Minimum && v <= r.Maximum
}

// Extend returns the smallest range covering both r and v. The result
// always contains everything r contains.
func (r Range) Extend(v float64) Range {
	out := r
	if v < out.Minimum {
		out.Minimum = v
	}
	if v > out.Maximum {
		out.Maximum = v
	}
	return out
}

// Union returns the smallest range covering both r and other.
func (r Range) Union(other Range) Range {
	return r.Extend(other.Minimum).Extend(other.Maximum)
}
