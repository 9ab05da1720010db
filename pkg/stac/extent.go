package stac

import (
	"slices"
	"time"

	"github.com/stac-utils/gostac/pkg/errors"
	"github.com/stac-utils/gostac/pkg/stacutil"
)

// Interval is a temporal range with optionally open ends. A nil Start or
// End means unbounded on that side; at least one must be set.
type Interval struct {
	Start *time.Time
	End   *time.Time
}

// NewInterval builds a validated interval.
func NewInterval(start, end *time.Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate rejects intervals with both ends open or start after end.
func (iv Interval) Validate() error {
	if iv.Start == nil && iv.End == nil {
		return errors.New(errors.ErrCodeInvalidDatetime, "interval cannot be open on both ends")
	}
	if iv.Start != nil && iv.End != nil && iv.Start.After(*iv.End) {
		return errors.New(errors.ErrCodeInvalidDatetime,
			"interval start %s is after end %s",
			iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
	}
	return nil
}

// Union returns the smallest interval covering both iv and other. An
// open end on either side stays open in the result.
func (iv Interval) Union(other Interval) Interval {
	var out Interval
	if iv.Start != nil && other.Start != nil {
		s := *iv.Start
		if other.Start.Before(s) {
			s = *other.Start
		}
		out.Start = &s
	}
	if iv.End != nil && other.End != nil {
		e := *iv.End
		if other.End.After(e) {
			e = *other.End
		}
		out.End = &e
	}
	return out
}

// SpatialExtent is the set of bounding boxes a collection's items cover.
// The first box is the overall extent; any further boxes describe
// disjoint clusters. An empty box list means no spatial coverage yet.
type SpatialExtent struct {
	BBoxes []stacutil.BBox
}

// IsEmpty reports whether the extent covers nothing.
func (s SpatialExtent) IsEmpty() bool { return len(s.BBoxes) == 0 }

// Overall returns the overall bounding box, or false when empty.
func (s SpatialExtent) Overall() (stacutil.BBox, bool) {
	if len(s.BBoxes) == 0 {
		return stacutil.BBox{}, false
	}
	return s.BBoxes[0], true
}

// TemporalExtent is the set of intervals a collection's items cover.
// The first interval is the overall extent. An empty interval list means
// no temporal coverage yet.
type TemporalExtent struct {
	Intervals []Interval
}

// IsEmpty reports whether the extent covers nothing.
func (t TemporalExtent) IsEmpty() bool { return len(t.Intervals) == 0 }

// Overall returns the overall interval, or false when empty.
func (t TemporalExtent) Overall() (Interval, bool) {
	if len(t.Intervals) == 0 {
		return Interval{}, false
	}
	return t.Intervals[0], true
}

// Extent is a collection's combined spatial and temporal coverage.
type Extent struct {
	Spatial  SpatialExtent
	Temporal TemporalExtent
}

// NewExtent builds a validated extent. Either side may be empty.
func NewExtent(spatial SpatialExtent, temporal TemporalExtent) (Extent, error) {
	for _, b := range spatial.BBoxes {
		if err := b.Validate(); err != nil {
			return Extent{}, err
		}
	}
	for _, iv := range temporal.Intervals {
		if err := iv.Validate(); err != nil {
			return Extent{}, err
		}
	}
	return Extent{
		Spatial:  SpatialExtent{BBoxes: slices.Clone(spatial.BBoxes)},
		Temporal: TemporalExtent{Intervals: slices.Clone(temporal.Intervals)},
	}, nil
}

// IsEmpty reports whether both sides of the extent are empty.
func (e Extent) IsEmpty() bool { return e.Spatial.IsEmpty() && e.Temporal.IsEmpty() }
