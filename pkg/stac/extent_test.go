package stac

import (
	"testing"
	"time"

	"github.com/stac-utils/gostac/pkg/stacutil"
)

func tp(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestNewInterval(t *testing.T) {
	tests := []struct {
		name    string
		start   *time.Time
		end     *time.Time
		wantErr bool
	}{
		{"closed", tp("2020-01-01T00:00:00Z"), tp("2021-01-01T00:00:00Z"), false},
		{"open start", nil, tp("2021-01-01T00:00:00Z"), false},
		{"open end", tp("2020-01-01T00:00:00Z"), nil, false},
		{"both open", nil, nil, true},
		{"inverted", tp("2021-01-01T00:00:00Z"), tp("2020-01-01T00:00:00Z"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInterval(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewInterval() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIntervalUnion(t *testing.T) {
	a := Interval{Start: tp("2020-01-01T00:00:00Z"), End: tp("2020-06-01T00:00:00Z")}
	b := Interval{Start: tp("2019-01-01T00:00:00Z"), End: tp("2021-06-01T00:00:00Z")}

	u := a.Union(b)
	if !u.Start.Equal(*b.Start) || !u.End.Equal(*b.End) {
		t.Errorf("Union() = [%v, %v], want [%v, %v]", u.Start, u.End, b.Start, b.End)
	}

	// An open end on either operand stays open.
	open := a.Union(Interval{Start: nil, End: tp("2022-01-01T00:00:00Z")})
	if open.Start != nil {
		t.Errorf("Union() with open start = %v, want nil", open.Start)
	}
	if open.End == nil || !open.End.Equal(*tp("2022-01-01T00:00:00Z")) {
		t.Errorf("Union() End = %v", open.End)
	}
}

func TestNewExtentValidates(t *testing.T) {
	bad := SpatialExtent{BBoxes: []stacutil.BBox{{5, 0, 1, 0}}}
	if _, err := NewExtent(bad, TemporalExtent{}); err == nil {
		t.Error("NewExtent() error = nil for inverted bbox")
	}

	ext, err := NewExtent(SpatialExtent{}, TemporalExtent{})
	if err != nil {
		t.Fatalf("NewExtent() error = %v", err)
	}
	if !ext.IsEmpty() {
		t.Error("IsEmpty() = false for empty extent")
	}
}
