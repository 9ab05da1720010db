package stac

import (
	json "github.com/goccy/go-json"

	"github.com/stac-utils/gostac/pkg/errors"
	"github.com/stac-utils/gostac/pkg/stacutil"
)

// GeometryType identifies a GeoJSON geometry.
type GeometryType string

// Geometry types supported for item footprints. GeometryCollection is
// deliberately absent; STAC items carry a single footprint geometry.
const (
	GeometryPoint           GeometryType = "Point"
	GeometryMultiPoint      GeometryType = "MultiPoint"
	GeometryLineString      GeometryType = "LineString"
	GeometryMultiLineString GeometryType = "MultiLineString"
	GeometryPolygon         GeometryType = "Polygon"
	GeometryMultiPolygon    GeometryType = "MultiPolygon"
)

// Geometry is a GeoJSON geometry in WGS 84 lon/lat order. Construct via
// the New* constructors or UnmarshalJSON; a zero Geometry is invalid.
//
// Coordinates are stored in the shape the type dictates. Exactly one of
// the coordinate fields is populated.
type Geometry struct {
	typ   GeometryType
	point []float64       // Point
	multi [][]float64     // MultiPoint, LineString
	rings [][][]float64   // Polygon, MultiLineString
	polys [][][][]float64 // MultiPolygon
}

// NewPoint builds a point geometry at lon/lat.
func NewPoint(lon, lat float64) *Geometry {
	return &Geometry{typ: GeometryPoint, point: []float64{lon, lat}}
}

// NewLineString builds a line geometry through the given positions.
// At least two positions are required.
func NewLineString(positions [][]float64) (*Geometry, error) {
	g := &Geometry{typ: GeometryLineString, multi: positions}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewPolygon builds a polygon from linear rings, exterior first. Every
// ring must be closed (first position equals last) and have at least
// four positions.
func NewPolygon(rings [][][]float64) (*Geometry, error) {
	g := &Geometry{typ: GeometryPolygon, rings: rings}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Type returns the GeoJSON geometry type.
func (g *Geometry) Type() GeometryType { return g.typ }

// Validate checks coordinate arity, minimum position counts, and ring
// closure for polygon types.
func (g *Geometry) Validate() error {
	switch g.typ {
	case GeometryPoint:
		return validatePosition(g.point)
	case GeometryMultiPoint:
		return validatePositions(g.multi, 1)
	case GeometryLineString:
		return validatePositions(g.multi, 2)
	case GeometryMultiLineString:
		for _, line := range g.rings {
			if err := validatePositions(line, 2); err != nil {
				return err
			}
		}
		return nil
	case GeometryPolygon:
		return validateRings(g.rings)
	case GeometryMultiPolygon:
		for _, poly := range g.polys {
			if err := validateRings(poly); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidGeometry, "unsupported geometry type %q", g.typ)
	}
}

// Bounds returns the smallest bounding box covering every position.
func (g *Geometry) Bounds() (stacutil.BBox, error) {
	positions := g.positions()
	if len(positions) == 0 {
		return stacutil.BBox{}, errors.New(errors.ErrCodeInvalidGeometry,
			"geometry %q has no positions", g.typ)
	}
	box := stacutil.PointBBox(positions[0][0], positions[0][1])
	for _, p := range positions[1:] {
		box = box.Union(stacutil.PointBBox(p[0], p[1]))
	}
	return box, nil
}

// positions flattens the coordinate storage into a single position list.
func (g *Geometry) positions() [][]float64 {
	switch g.typ {
	case GeometryPoint:
		if g.point == nil {
			return nil
		}
		return [][]float64{g.point}
	case GeometryMultiPoint, GeometryLineString:
		return g.multi
	case GeometryMultiLineString, GeometryPolygon:
		var out [][]float64
		for _, line := range g.rings {
			out = append(out, line...)
		}
		return out
	case GeometryMultiPolygon:
		var out [][]float64
		for _, poly := range g.polys {
			for _, ring := range poly {
				out = append(out, ring...)
			}
		}
		return out
	}
	return nil
}

func validatePosition(p []float64) error {
	if len(p) != 2 && len(p) != 3 {
		return errors.New(errors.ErrCodeInvalidGeometry,
			"position must have 2 or 3 coordinates, got %d", len(p))
	}
	return nil
}

func validatePositions(ps [][]float64, minCount int) error {
	if len(ps) < minCount {
		return errors.New(errors.ErrCodeInvalidGeometry,
			"need at least %d positions, got %d", minCount, len(ps))
	}
	for _, p := range ps {
		if err := validatePosition(p); err != nil {
			return err
		}
	}
	return nil
}

func validateRings(rings [][][]float64) error {
	if len(rings) == 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "polygon has no rings")
	}
	for _, ring := range rings {
		if err := validatePositions(ring, 4); err != nil {
			return err
		}
		first, last := ring[0], ring[len(ring)-1]
		if len(first) != len(last) {
			return errors.New(errors.ErrCodeInvalidGeometry, "ring is not closed")
		}
		for i := range first {
			if first[i] != last[i] {
				return errors.New(errors.ErrCodeInvalidGeometry, "ring is not closed")
			}
		}
	}
	return nil
}

// geometryDoc is the GeoJSON wire shape.
type geometryDoc struct {
	Type        GeometryType    `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// MarshalJSON encodes the geometry as GeoJSON.
func (g *Geometry) MarshalJSON() ([]byte, error) {
	var coords any
	switch g.typ {
	case GeometryPoint:
		coords = g.point
	case GeometryMultiPoint, GeometryLineString:
		coords = g.multi
	case GeometryMultiLineString, GeometryPolygon:
		coords = g.rings
	case GeometryMultiPolygon:
		coords = g.polys
	default:
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "unsupported geometry type %q", g.typ)
	}
	raw, err := json.Marshal(coords)
	if err != nil {
		return nil, err
	}
	return json.Marshal(geometryDoc{Type: g.typ, Coordinates: raw})
}

// UnmarshalJSON decodes GeoJSON into the geometry and validates it.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var doc geometryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "decode geometry")
	}
	out := Geometry{typ: doc.Type}
	var err error
	switch doc.Type {
	case GeometryPoint:
		err = json.Unmarshal(doc.Coordinates, &out.point)
	case GeometryMultiPoint, GeometryLineString:
		err = json.Unmarshal(doc.Coordinates, &out.multi)
	case GeometryMultiLineString, GeometryPolygon:
		err = json.Unmarshal(doc.Coordinates, &out.rings)
	case GeometryMultiPolygon:
		err = json.Unmarshal(doc.Coordinates, &out.polys)
	default:
		return errors.New(errors.ErrCodeInvalidGeometry, "unsupported geometry type %q", doc.Type)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGeometry, err, "decode %s coordinates", doc.Type)
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*g = out
	return nil
}
