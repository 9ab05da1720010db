package stac

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/stac-utils/gostac/pkg/stacutil"
)

func TestGeometryBounds(t *testing.T) {
	line, err := NewLineString([][]float64{{0, 0}, {10, 5}, {-2, 3}})
	if err != nil {
		t.Fatalf("NewLineString() error = %v", err)
	}

	tests := []struct {
		name string
		geom *Geometry
		want stacutil.BBox
	}{
		{"point", NewPoint(2, 3), stacutil.BBox{2, 3, 2, 3}},
		{"line", line, stacutil.BBox{-2, 0, 10, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.geom.Bounds()
			if err != nil {
				t.Fatalf("Bounds() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewPolygonValidation(t *testing.T) {
	tests := []struct {
		name    string
		rings   [][][]float64
		wantErr bool
	}{
		{
			name:    "closed ring",
			rings:   [][][]float64{{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}},
			wantErr: false,
		},
		{
			name:    "open ring",
			rings:   [][][]float64{{{0, 0}, {4, 0}, {4, 4}, {0, 4}}},
			wantErr: true,
		},
		{
			name:    "too few positions",
			rings:   [][][]float64{{{0, 0}, {4, 0}, {0, 0}}},
			wantErr: true,
		},
		{
			name:    "no rings",
			rings:   nil,
			wantErr: true,
		},
		{
			name:    "bad arity",
			rings:   [][][]float64{{{0}, {4, 0}, {4, 4}, {0}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolygon(tt.rings)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPolygon() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGeometryJSONRoundTrip(t *testing.T) {
	poly, err := NewPolygon([][][]float64{{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}})
	if err != nil {
		t.Fatalf("NewPolygon() error = %v", err)
	}

	tests := []struct {
		name string
		geom *Geometry
	}{
		{"point", NewPoint(2.5, -3.75)},
		{"polygon", poly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.geom)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			var got Geometry
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got.Type() != tt.geom.Type() {
				t.Errorf("Type = %v, want %v", got.Type(), tt.geom.Type())
			}
			wantBox, _ := tt.geom.Bounds()
			gotBox, _ := got.Bounds()
			if gotBox != wantBox {
				t.Errorf("Bounds = %v, want %v", gotBox, wantBox)
			}
		})
	}
}

func TestGeometryUnmarshalRejectsUnknownType(t *testing.T) {
	var g Geometry
	err := json.Unmarshal([]byte(`{"type":"GeometryCollection","coordinates":[]}`), &g)
	if err == nil {
		t.Fatal("Unmarshal() error = nil, want unsupported type error")
	}
}
