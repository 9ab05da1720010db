package stac

import (
	"slices"
	"time"

	"github.com/stac-utils/gostac/pkg/errors"
	"github.com/stac-utils/gostac/pkg/observe"
	"github.com/stac-utils/gostac/pkg/stacutil"
)

// Item is a leaf entity: a single spatiotemporal record with an optional
// footprint geometry, a property bag, and downloadable assets keyed by
// unique names.
type Item struct {
	entityNode

	geometry   *Geometry
	bbox       *stacutil.BBox
	properties *Properties
	assets     map[string]Asset
}

// NewItem builds an item. An empty id gets a generated UUID. The
// geometry may be nil; when present it is validated and the item's bbox
// is derived from it. The property bag is required since every item
// needs temporal coverage.
func NewItem(id string, geometry *Geometry, properties *Properties) (*Item, error) {
	resolved, err := resolveEntityID(id)
	if err != nil {
		return nil, err
	}
	if properties == nil {
		return nil, errors.New(errors.ErrCodeInvalidValue, "item properties cannot be nil")
	}
	it := &Item{properties: properties}
	it.entityNode = newEntityNode(it, resolved)
	if geometry != nil {
		if err := it.setGeometry(geometry); err != nil {
			return nil, err
		}
	}
	it.refreshStructuralLinks("")
	observe.Entity().OnCreate(string(KindItem), it.id)
	return it, nil
}

// Kind returns KindItem.
func (it *Item) Kind() Kind { return KindItem }

// Geometry returns the footprint geometry, nil when absent.
func (it *Item) Geometry() *Geometry { return it.geometry }

// BBox returns the bounding box derived from the geometry, or false
// when the item has no geometry.
func (it *Item) BBox() (stacutil.BBox, bool) {
	if it.bbox == nil {
		return stacutil.BBox{}, false
	}
	return *it.bbox, true
}

// Properties returns the item's property bag. The bag is read-only from
// here; mutations go through the item's setters so observers hear them.
func (it *Item) Properties() *Properties { return it.properties }

// Collection returns the id of the nearest ancestor collection, or
// false when the item is not under one.
func (it *Item) Collection() (string, bool) {
	for p := it.parent; p != nil; p = p.Parent() {
		if p.Kind() == KindCollection {
			return p.ID(), true
		}
	}
	return "", false
}

// SetGeometry replaces the footprint geometry and re-derives the bbox.
// A nil geometry clears both.
func (it *Item) SetGeometry(g *Geometry) error {
	prev := it.geometry
	if g == nil {
		it.geometry, it.bbox = nil, nil
	} else if err := it.setGeometry(g); err != nil {
		return err
	}
	return it.notifyMutation("geometry", prev)
}

func (it *Item) setGeometry(g *Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	box, err := g.Bounds()
	if err != nil {
		return err
	}
	it.geometry = g
	it.bbox = &box
	return nil
}

// SetDatetime switches the item to a single acquisition datetime.
func (it *Item) SetDatetime(datetime time.Time) error {
	prev := it.properties.Interval()
	it.properties.setDatetime(datetime)
	return it.notifyMutation("datetime", prev)
}

// SetDatetimeRange switches the item to a start/end datetime pair.
func (it *Item) SetDatetimeRange(start, end time.Time) error {
	prev := it.properties.Interval()
	if err := it.properties.setDatetimeRange(start, end); err != nil {
		return err
	}
	return it.notifyMutation("datetime", prev)
}

// SetProperty stores a free-form property field. The datetime family is
// reserved for the typed setters.
func (it *Item) SetProperty(key string, value any) error {
	prev, _ := it.properties.Field(key)
	if err := it.properties.setField(key, value); err != nil {
		return err
	}
	return it.notifyMutation("properties", prev)
}

// RemoveProperty deletes a free-form property field.
func (it *Item) RemoveProperty(key string) error {
	prev, _ := it.properties.Field(key)
	if !it.properties.deleteField(key) {
		return errors.New(errors.ErrCodeNotFound, "item %q has no property %q", it.id, key)
	}
	return it.notifyMutation("properties", prev)
}

// SetAsset stores an asset under the given key, replacing any existing
// asset with that key.
func (it *Item) SetAsset(key string, asset Asset) error {
	if err := errors.ValidateAssetKey(key); err != nil {
		return err
	}
	var prev any
	if existing, ok := it.assets[key]; ok {
		prev = existing
	}
	if it.assets == nil {
		it.assets = make(map[string]Asset)
	}
	it.assets[key] = asset
	return it.notifyMutation("assets", prev)
}

// RemoveAsset deletes the asset under the given key.
func (it *Item) RemoveAsset(key string) error {
	prev, ok := it.assets[key]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "item %q has no asset %q", it.id, key)
	}
	delete(it.assets, key)
	return it.notifyMutation("assets", prev)
}

// Asset returns the asset under the given key.
func (it *Item) Asset(key string) (Asset, bool) {
	a, ok := it.assets[key]
	return a, ok
}

// AssetKeys returns the asset keys in sorted order.
func (it *Item) AssetKeys() []string {
	keys := make([]string, 0, len(it.assets))
	for k := range it.assets {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// OnEvent forwards events upward. Items have no children in practice,
// but the forwarding keeps the bubbling contract uniform.
func (it *Item) OnEvent(ev observe.Event) error {
	return it.Notify(ev)
}

var _ Entity = (*Item)(nil)
