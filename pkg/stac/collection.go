package stac

import (
	"maps"
	"slices"

	"github.com/stac-utils/gostac/pkg/errors"
	"github.com/stac-utils/gostac/pkg/observe"
	"github.com/stac-utils/gostac/pkg/stacutil"
)

// Collection is a catalog whose items share a license, providers, and a
// combined spatial/temporal extent.
//
// The extent is tracked lazily: structural changes and descendant
// geometry or datetime changes only mark it stale, and the next Extent
// read or an explicit FinalizeExtent call recomputes it from the items
// in the subtree. Bulk inserts therefore cost one traversal, not one
// per insert.
type Collection struct {
	Catalog

	license   string
	providers []Provider
	keywords  []string
	summaries map[string]any
	assets    map[string]Asset

	extent      Extent
	extentStale bool
}

// NewCollection builds a collection. An empty id gets a generated UUID,
// the description is required, and an empty license defaults to
// proprietary. The extent may be empty; it is validated when given.
func NewCollection(id, description, license string, extent Extent) (*Collection, error) {
	c := &Collection{}
	if err := c.Catalog.init(c, id, description); err != nil {
		return nil, err
	}
	if license == "" {
		license = LicenseProprietary
	}
	validated, err := NewExtent(extent.Spatial, extent.Temporal)
	if err != nil {
		return nil, err
	}
	c.license = license
	c.extent = validated
	observe.Entity().OnCreate(string(KindCollection), c.id)
	return c, nil
}

// Kind returns KindCollection.
func (c *Collection) Kind() Kind { return KindCollection }

// License returns the collection's license identifier.
func (c *Collection) License() string { return c.license }

// SetLicense updates the license identifier.
func (c *Collection) SetLicense(license string) error {
	if err := errors.ValidateNonEmpty("license", license); err != nil {
		return err
	}
	prev := c.license
	c.license = license
	return c.notifyMutation("license", prev)
}

// Providers returns a copy of the collection's providers in order.
func (c *Collection) Providers() []Provider { return slices.Clone(c.providers) }

// AddProvider appends a provider.
func (c *Collection) AddProvider(p Provider) error {
	c.providers = append(c.providers, p)
	return c.notifyMutation("providers", nil)
}

// Keywords returns a copy of the collection's keywords.
func (c *Collection) Keywords() []string { return slices.Clone(c.keywords) }

// SetKeywords replaces the keyword list.
func (c *Collection) SetKeywords(keywords []string) error {
	prev := c.keywords
	c.keywords = slices.Clone(keywords)
	return c.notifyMutation("keywords", prev)
}

// Summaries returns a copy of the summary map. Values are either Range
// or arbitrary JSON-encodable values.
func (c *Collection) Summaries() map[string]any {
	if len(c.summaries) == 0 {
		return nil
	}
	return maps.Clone(c.summaries)
}

// SetSummary stores a summary under the given field name.
func (c *Collection) SetSummary(field string, value any) error {
	if err := errors.ValidateNonEmpty("summary field", field); err != nil {
		return err
	}
	if c.summaries == nil {
		c.summaries = make(map[string]any)
	}
	prev := c.summaries[field]
	c.summaries[field] = value
	return c.notifyMutation("summaries", prev)
}

// SetAsset stores a collection-level asset under the given key,
// replacing any existing asset with that key.
func (c *Collection) SetAsset(key string, asset Asset) error {
	if err := errors.ValidateAssetKey(key); err != nil {
		return err
	}
	var prev any
	if existing, ok := c.assets[key]; ok {
		prev = existing
	}
	if c.assets == nil {
		c.assets = make(map[string]Asset)
	}
	c.assets[key] = asset
	return c.notifyMutation("assets", prev)
}

// RemoveAsset deletes the asset under the given key.
func (c *Collection) RemoveAsset(key string) error {
	prev, ok := c.assets[key]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "collection %q has no asset %q", c.id, key)
	}
	delete(c.assets, key)
	return c.notifyMutation("assets", prev)
}

// Asset returns the asset under the given key.
func (c *Collection) Asset(key string) (Asset, bool) {
	a, ok := c.assets[key]
	return a, ok
}

// AssetKeys returns the asset keys in sorted order.
func (c *Collection) AssetKeys() []string {
	keys := make([]string, 0, len(c.assets))
	for k := range c.assets {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Extent returns the collection's extent, recomputing it first when a
// change since the last read has marked it stale.
func (c *Collection) Extent() Extent {
	if c.extentStale {
		c.extent = c.computeExtent()
		c.extentStale = false
	}
	return c.extent
}

// SetExtent replaces the extent with a caller-provided one and clears
// any pending recompute.
func (c *Collection) SetExtent(extent Extent) error {
	validated, err := NewExtent(extent.Spatial, extent.Temporal)
	if err != nil {
		return err
	}
	prev := c.extent
	c.extent = validated
	c.extentStale = false
	return c.notifyMutation("extent", prev)
}

// FinalizeExtent recomputes the extent from the items currently in the
// subtree and returns it. A collection with no items gets an empty
// extent; that is a valid state, not an error.
func (c *Collection) FinalizeExtent() Extent {
	c.extent = c.computeExtent()
	c.extentStale = false
	return c.extent
}

// ExtentStale reports whether a recompute is pending.
func (c *Collection) ExtentStale() bool { return c.extentStale }

// AddChild attaches a child and marks the extent stale when the attach
// succeeded, observer failures included.
func (c *Collection) AddChild(child Entity) error {
	err := c.Catalog.AddChild(child)
	if child != nil && child.Parent() == Entity(c) {
		c.extentStale = true
	}
	return err
}

// RemoveChild detaches a child and marks the extent stale when the
// removal happened.
func (c *Collection) RemoveChild(id string) (Entity, error) {
	removed, err := c.Catalog.RemoveChild(id)
	if removed != nil {
		c.extentStale = true
	}
	return removed, err
}

// OnEvent marks the extent stale on structural changes and descendant
// geometry or datetime changes, then forwards the event upward.
func (c *Collection) OnEvent(ev observe.Event) error {
	switch ev.Kind {
	case observe.KindChildAdded, observe.KindChildRemoved:
		c.extentStale = true
	case observe.KindFieldChanged:
		if ev.Field == "geometry" || ev.Field == "datetime" {
			c.extentStale = true
		}
	}
	return c.Notify(ev)
}

// computeExtent unions the bounds and temporal coverage of every item
// in the subtree.
func (c *Collection) computeExtent() Extent {
	var (
		box     stacutil.BBox
		haveBox bool
		iv      Interval
		haveIv  bool
	)
	for e := range c.Walk() {
		item, ok := e.(*Item)
		if !ok {
			continue
		}
		if b, ok := item.BBox(); ok {
			if haveBox {
				box = box.Union(b)
			} else {
				box, haveBox = b, true
			}
		}
		in := item.properties.Interval()
		if in.Start != nil || in.End != nil {
			if haveIv {
				iv = iv.Union(in)
			} else {
				iv, haveIv = in, true
			}
		}
	}
	var out Extent
	if haveBox {
		out.Spatial.BBoxes = []stacutil.BBox{box}
	}
	if haveIv {
		out.Temporal.Intervals = []Interval{iv}
	}
	return out
}

var _ Entity = (*Collection)(nil)
