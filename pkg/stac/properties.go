package stac

import (
	"maps"
	"time"

	"github.com/stac-utils/gostac/pkg/errors"
)

// Reserved property keys managed through the typed datetime accessors.
const (
	propDatetime      = "datetime"
	propStartDatetime = "start_datetime"
	propEndDatetime   = "end_datetime"
)

// Properties is an item's metadata bag. Every item carries either a
// single acquisition datetime or a start/end pair, never neither, plus
// free-form extra fields. All times are stored in UTC.
type Properties struct {
	datetime *time.Time
	start    *time.Time
	end      *time.Time
	extra    map[string]any
}

// NewProperties builds a property bag with a single acquisition datetime.
func NewProperties(datetime time.Time) *Properties {
	dt := datetime.UTC()
	return &Properties{datetime: &dt}
}

// NewPropertiesRange builds a property bag with a start/end datetime
// pair. The start must not be after the end.
func NewPropertiesRange(start, end time.Time) (*Properties, error) {
	if start.After(end) {
		return nil, errors.New(errors.ErrCodeInvalidDatetime,
			"start_datetime %s is after end_datetime %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	s, e := start.UTC(), end.UTC()
	return &Properties{start: &s, end: &e}, nil
}

// Datetime returns the single acquisition datetime, or false when the
// item carries a range instead.
func (p *Properties) Datetime() (time.Time, bool) {
	if p.datetime == nil {
		return time.Time{}, false
	}
	return *p.datetime, true
}

// DatetimeRange returns the start/end pair, or false when the item
// carries a single datetime instead.
func (p *Properties) DatetimeRange() (start, end time.Time, ok bool) {
	if p.start == nil || p.end == nil {
		return time.Time{}, time.Time{}, false
	}
	return *p.start, *p.end, true
}

// Interval returns the item's temporal coverage: a degenerate interval
// for a single datetime, the pair otherwise.
func (p *Properties) Interval() Interval {
	if p.datetime != nil {
		return Interval{Start: p.datetime, End: p.datetime}
	}
	return Interval{Start: p.start, End: p.end}
}

// Field returns an extra property value by key.
func (p *Properties) Field(key string) (any, bool) {
	v, ok := p.extra[key]
	return v, ok
}

// Fields returns a copy of the extra property fields.
func (p *Properties) Fields() map[string]any {
	if len(p.extra) == 0 {
		return nil
	}
	return maps.Clone(p.extra)
}

// setField stores an extra field. The datetime family is reserved for
// the typed setters on Item.
func (p *Properties) setField(key string, value any) error {
	switch key {
	case propDatetime, propStartDatetime, propEndDatetime:
		return errors.New(errors.ErrCodeInvalidValue,
			"property %q is reserved, use the datetime setters", key)
	}
	if err := errors.ValidateNonEmpty("property key", key); err != nil {
		return err
	}
	if p.extra == nil {
		p.extra = make(map[string]any)
	}
	p.extra[key] = value
	return nil
}

// deleteField removes an extra field, reporting whether it existed.
func (p *Properties) deleteField(key string) bool {
	if _, ok := p.extra[key]; !ok {
		return false
	}
	delete(p.extra, key)
	return true
}

// setDatetime switches the bag to a single acquisition datetime.
func (p *Properties) setDatetime(datetime time.Time) {
	dt := datetime.UTC()
	p.datetime = &dt
	p.start, p.end = nil, nil
}

// setDatetimeRange switches the bag to a start/end pair.
func (p *Properties) setDatetimeRange(start, end time.Time) error {
	if start.After(end) {
		return errors.New(errors.ErrCodeInvalidDatetime,
			"start_datetime %s is after end_datetime %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	s, e := start.UTC(), end.UTC()
	p.start, p.end = &s, &e
	p.datetime = nil
	return nil
}
