package stacutil

import (
	"github.com/stac-utils/gostac/pkg/errors"
)

// BBox is a 2D bounding box in [west, south, east, north] order,
// following RFC 7946, section 5. Coordinates are WGS 84 longitude/latitude.
type BBox [4]float64

// NewBBox constructs a validated bounding box.
// Returns an INVALID_BBOX error when min exceeds max on either axis.
func NewBBox(west, south, east, north float64) (BBox, error) {
	b := BBox{west, south, east, north}
	if err := b.Validate(); err != nil {
		return BBox{}, err
	}
	return b, nil
}

// PointBBox returns the degenerate zero-area box around a single point.
func PointBBox(lon, lat float64) BBox {
	return BBox{lon, lat, lon, lat}
}

// Validate checks min<=max on both axes.
func (b BBox) Validate() error {
	if b[0] > b[2] {
		return errors.New(errors.ErrCodeInvalidBBox, "bbox west %v exceeds east %v", b[0], b[2])
	}
	if b[1] > b[3] {
		return errors.New(errors.ErrCodeInvalidBBox, "bbox south %v exceeds north %v", b[1], b[3])
	}
	return nil
}

// Union returns the component-wise min/max union of two boxes.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		min(b[0], o[0]),
		min(b[1], o[1]),
		max(b[2], o[2]),
		max(b[3], o[3]),
	}
}

// Contains reports whether o lies entirely within b.
func (b BBox) Contains(o BBox) bool {
	return o[0] >= b[0] && o[1] >= b[1] && o[2] <= b[2] && o[3] <= b[3]
}

// ContainsPoint reports whether the point (lon, lat) lies within b.
func (b BBox) ContainsPoint(lon, lat float64) bool {
	return lon >= b[0] && lat >= b[1] && lon <= b[2] && lat <= b[3]
}

// Slice returns the box as a []float64 for JSON serialization.
func (b BBox) Slice() []float64 {
	return []float64{b[0], b[1], b[2], b[3]}
}

// BBoxFromSlice builds a validated BBox from a decoded JSON array.
// Four-element boxes are taken as-is. Six-element boxes (3D, with
// elevation) are projected to 2D by dropping the elevation axis.
func BBoxFromSlice(vals []float64) (BBox, error) {
	switch len(vals) {
	case 4:
		return NewBBox(vals[0], vals[1], vals[2], vals[3])
	case 6:
		return NewBBox(vals[0], vals[1], vals[3], vals[4])
	default:
		return BBox{}, errors.New(errors.ErrCodeInvalidBBox, "bbox must have 4 or 6 elements, got %d", len(vals))
	}
}
