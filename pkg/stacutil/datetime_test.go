package stacutil

import (
	"testing"
	"time"

	"github.com/stac-utils/gostac/pkg/errors"
)

func TestParseDatetime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "canonical UTC",
			input: "2020-01-01T00:00:00Z",
			want:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "fractional seconds",
			input: "2021-06-01T12:30:00.5Z",
			want:  time.Date(2021, 6, 1, 12, 30, 0, 500000000, time.UTC),
		},
		{
			name:  "numeric offset normalized to UTC",
			input: "2020-01-01T02:00:00+02:00",
			want:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "2020-01-01",
			want:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "yesterday",
			wantErr: true,
		},
		{
			name:    "bad month",
			input:   "2020-13-01T00:00:00Z",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDatetime(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if errors.GetCode(err) != errors.ErrCodeInvalidDatetime {
					t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDatetime)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseDatetime: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatDatetime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "whole seconds",
			in:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			want: "2020-01-01T00:00:00Z",
		},
		{
			name: "fractional seconds preserved",
			in:   time.Date(2021, 6, 1, 12, 30, 0, 500000000, time.UTC),
			want: "2021-06-01T12:30:00.5Z",
		},
		{
			name: "non-UTC input converted",
			in:   time.Date(2020, 1, 1, 2, 0, 0, 0, time.FixedZone("CET", 2*3600)),
			want: "2020-01-01T00:00:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDatetime(tt.in); got != tt.want {
				t.Errorf("FormatDatetime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDatetimeRoundTrip(t *testing.T) {
	in := "2020-01-01T00:00:00Z"
	parsed, err := ParseDatetime(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatDatetime(parsed); got != in {
		t.Errorf("round trip = %q, want %q", got, in)
	}
}
