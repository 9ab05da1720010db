package stacjson

import (
	"bytes"
	"io"
	"time"

	json "github.com/goccy/go-json"

	"github.com/stac-utils/gostac/pkg/errors"
	"github.com/stac-utils/gostac/pkg/stac"
	"github.com/stac-utils/gostac/pkg/stacutil"
)

// Decode reads a JSON document from r and builds the entity tree.
func Decode(r io.Reader, opts Options) (stac.Entity, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, err, "read document")
	}
	return DecodeBytes(data, opts)
}

// DecodeBytes builds the entity tree from a JSON document. Inline
// children and items are attached and wired for observation; child and
// item relation links are kept as plain links, not followed (use Load
// to resolve them through a source). Nothing is returned on failure,
// duplicate sibling ids included.
func DecodeBytes(data []byte, opts Options) (stac.Entity, error) {
	entity, err := decodeDocument(data, false)
	if err != nil {
		return nil, err
	}
	if opts.StrictIDs {
		if err := checkGlobalIDs(entity); err != nil {
			return nil, err
		}
	}
	return entity, nil
}

func decodeDocument(data []byte, dropChildLinks bool) (stac.Entity, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, err, "malformed document")
	}
	return buildEntity(&doc, dropChildLinks)
}

func buildEntity(doc *document, dropChildLinks bool) (stac.Entity, error) {
	if doc.Type == "" {
		return nil, errors.New(errors.ErrCodeSchema, "document %q: missing type", doc.ID)
	}
	if doc.ID == "" {
		return nil, errors.New(errors.ErrCodeSchema, "%s document: missing id", doc.Type)
	}

	var (
		entity stac.Entity
		err    error
	)
	switch stac.Kind(doc.Type) {
	case stac.KindCatalog:
		entity, err = buildCatalog(doc)
	case stac.KindCollection:
		entity, err = buildCollection(doc)
	case stac.KindItem:
		entity, err = buildItem(doc)
	default:
		return nil, errors.New(errors.ErrCodeSchema,
			"document %q: unknown type %q", doc.ID, doc.Type)
	}
	if err != nil {
		return nil, err
	}

	// The document's declared version wins over the compiled-in default.
	if doc.StacVersion != "" && doc.StacVersion != entity.StacVersion() {
		setter, ok := entity.(interface{ SetStacVersion(string) error })
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal,
				"entity %q cannot carry a stac_version", entity.ID())
		}
		if err := setter.SetStacVersion(doc.StacVersion); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSchema, err, "document %q", doc.ID)
		}
	}

	if err := restoreLinks(entity, doc, dropChildLinks); err != nil {
		return nil, err
	}
	if err := attachInline(entity, doc); err != nil {
		return nil, err
	}

	// Attaching children marks a collection's extent stale; the
	// documented extent wins over a recompute until the tree mutates.
	if c, ok := entity.(*stac.Collection); ok && doc.Extent != nil && len(c.Children()) > 0 {
		extent, err := decodeExtent(doc)
		if err != nil {
			return nil, err
		}
		if err := c.SetExtent(extent); err != nil {
			return nil, err
		}
	}
	return entity, nil
}

func buildCatalog(doc *document) (stac.Entity, error) {
	if doc.Description == "" {
		return nil, errors.New(errors.ErrCodeSchema, "catalog %q: missing description", doc.ID)
	}
	c, err := stac.NewCatalog(doc.ID, doc.Description)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, err, "catalog %q", doc.ID)
	}
	if doc.Title != "" {
		if err := c.SetTitle(doc.Title); err != nil {
			return nil, err
		}
	}
	for _, ext := range doc.StacExtensions {
		c.AddExtension(ext)
	}
	return c, nil
}

func buildCollection(doc *document) (stac.Entity, error) {
	if doc.Description == "" {
		return nil, errors.New(errors.ErrCodeSchema, "collection %q: missing description", doc.ID)
	}
	extent, err := decodeExtent(doc)
	if err != nil {
		return nil, err
	}
	c, err := stac.NewCollection(doc.ID, doc.Description, doc.License, extent)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, err, "collection %q", doc.ID)
	}
	if doc.Title != "" {
		if err := c.SetTitle(doc.Title); err != nil {
			return nil, err
		}
	}
	for _, ext := range doc.StacExtensions {
		c.AddExtension(ext)
	}
	if len(doc.Keywords) > 0 {
		if err := c.SetKeywords(doc.Keywords); err != nil {
			return nil, err
		}
	}
	for _, pd := range doc.Providers {
		roles := make([]stac.ProviderRole, len(pd.Roles))
		for i, r := range pd.Roles {
			roles[i] = stac.ProviderRole(r)
		}
		p, err := stac.NewProvider(pd.Name, pd.Description, roles, pd.URL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSchema, err, "collection %q: provider", doc.ID)
		}
		if err := c.AddProvider(p); err != nil {
			return nil, err
		}
	}
	for field, raw := range doc.Summaries {
		value, err := decodeSummary(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSchema, err,
				"collection %q: summary %q", doc.ID, field)
		}
		if err := c.SetSummary(field, value); err != nil {
			return nil, err
		}
	}
	if err := decodeAssets(doc.Assets, c, "collection", doc.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func buildItem(doc *document) (stac.Entity, error) {
	props, err := decodeProperties(doc)
	if err != nil {
		return nil, err
	}

	var geom *stac.Geometry
	if len(doc.Geometry) > 0 && !bytes.Equal(doc.Geometry, []byte("null")) {
		geom = &stac.Geometry{}
		if err := json.Unmarshal(doc.Geometry, geom); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSchema, err, "item %q: geometry", doc.ID)
		}
	}

	it, err := stac.NewItem(doc.ID, geom, props)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, err, "item %q", doc.ID)
	}
	for _, ext := range doc.StacExtensions {
		it.AddExtension(ext)
	}

	// The datetime family went into the Properties constructor; everything
	// else in the properties object is a free-form field.
	for key, raw := range doc.Properties {
		switch key {
		case "datetime", "start_datetime", "end_datetime":
			continue
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSchema, err,
				"item %q: property %q", doc.ID, key)
		}
		if err := it.SetProperty(key, value); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSchema, err,
				"item %q: property %q", doc.ID, key)
		}
	}

	if err := decodeAssets(doc.Assets, it, "item", doc.ID); err != nil {
		return nil, err
	}
	return it, nil
}

// assetSetter is satisfied by items and collections; both carry keyed
// assets.
type assetSetter interface {
	SetAsset(key string, asset stac.Asset) error
}

func decodeAssets(raw json.RawMessage, into assetSetter, what, id string) error {
	if len(raw) == 0 {
		return nil
	}
	if err := checkDuplicateKeys(raw); err != nil {
		return errors.Wrap(errors.ErrCodeSchema, err, "%s %q: assets", what, id)
	}
	var assets map[string]assetDoc
	if err := json.Unmarshal(raw, &assets); err != nil {
		return errors.Wrap(errors.ErrCodeSchema, err, "%s %q: assets", what, id)
	}
	for key, ad := range assets {
		a, err := stac.NewAsset(ad.Href, ad.Title, ad.Description, ad.Type, ad.Roles)
		if err != nil {
			return errors.Wrap(errors.ErrCodeSchema, err, "%s %q: asset %q", what, id, key)
		}
		if err := into.SetAsset(key, a); err != nil {
			return err
		}
	}
	return nil
}

// decodeProperties enforces the temporal rule: a single datetime or a
// start/end pair, never neither.
func decodeProperties(doc *document) (*stac.Properties, error) {
	get := func(key string) (time.Time, bool, error) {
		raw, ok := doc.Properties[key]
		if !ok || bytes.Equal(raw, []byte("null")) {
			return time.Time{}, false, nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, false, errors.Wrap(errors.ErrCodeSchema, err,
				"item %q: property %q", doc.ID, key)
		}
		t, err := stacutil.ParseDatetime(s)
		if err != nil {
			return time.Time{}, false, errors.Wrap(errors.ErrCodeSchema, err,
				"item %q: property %q", doc.ID, key)
		}
		return t, true, nil
	}

	dt, hasDT, err := get("datetime")
	if err != nil {
		return nil, err
	}
	start, hasStart, err := get("start_datetime")
	if err != nil {
		return nil, err
	}
	end, hasEnd, err := get("end_datetime")
	if err != nil {
		return nil, err
	}

	var props *stac.Properties
	switch {
	case hasDT:
		props = stac.NewProperties(dt)
	case hasStart && hasEnd:
		props, err = stac.NewPropertiesRange(start, end)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSchema, err, "item %q", doc.ID)
		}
	default:
		return nil, errors.New(errors.ErrCodeSchema,
			"item %q: needs a datetime or a start_datetime/end_datetime pair", doc.ID)
	}
	return props, nil
}

func decodeExtent(doc *document) (stac.Extent, error) {
	var extent stac.Extent
	if doc.Extent == nil {
		return extent, nil
	}
	for _, raw := range doc.Extent.Spatial.BBox {
		box, err := stacutil.BBoxFromSlice(raw)
		if err != nil {
			return extent, errors.Wrap(errors.ErrCodeSchema, err,
				"collection %q: spatial extent", doc.ID)
		}
		extent.Spatial.BBoxes = append(extent.Spatial.BBoxes, box)
	}
	for _, pair := range doc.Extent.Temporal.Interval {
		if len(pair) != 2 {
			return extent, errors.New(errors.ErrCodeSchema,
				"collection %q: temporal interval needs 2 entries, got %d", doc.ID, len(pair))
		}
		var iv stac.Interval
		for i, raw := range pair {
			if raw == nil {
				continue
			}
			t, err := stacutil.ParseDatetime(*raw)
			if err != nil {
				return extent, errors.Wrap(errors.ErrCodeSchema, err,
					"collection %q: temporal extent", doc.ID)
			}
			if i == 0 {
				iv.Start = &t
			} else {
				iv.End = &t
			}
		}
		if err := iv.Validate(); err != nil {
			return extent, errors.Wrap(errors.ErrCodeSchema, err,
				"collection %q: temporal extent", doc.ID)
		}
		extent.Temporal.Intervals = append(extent.Temporal.Intervals, iv)
	}
	return extent, nil
}

// decodeSummary maps a raw summary value: an object with exactly a
// minimum and a maximum becomes a Range, anything else stays generic.
func decodeSummary(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &keys); err != nil {
			return nil, err
		}
		_, hasMin := keys["minimum"]
		_, hasMax := keys["maximum"]
		if len(keys) == 2 && hasMin && hasMax {
			var rd rangeDoc
			if err := json.Unmarshal(trimmed, &rd); err == nil {
				return stac.NewRange(rd.Minimum, rd.Maximum)
			}
		}
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// restoreLinks re-adds the document's non-structural links. Self, root,
// and parent links are synthesized from tree shape instead, and child or
// item links are dropped when the caller resolves them into children.
func restoreLinks(entity stac.Entity, doc *document, dropChildLinks bool) error {
	adder, ok := entity.(interface{ AddLink(stac.Link) })
	if !ok {
		return errors.New(errors.ErrCodeInternal, "entity %q cannot carry links", entity.ID())
	}
	for _, ld := range doc.Links {
		rel := stac.RelType(ld.Rel)
		switch rel {
		case stac.RelSelf, stac.RelRoot, stac.RelParent:
			continue
		case stac.RelChild, stac.RelItem:
			if dropChildLinks || len(doc.Children) > 0 || len(doc.Items) > 0 {
				continue
			}
		}
		l, err := stac.NewLink(rel, ld.Href, ld.Type, ld.Title)
		if err != nil {
			return errors.Wrap(errors.ErrCodeSchema, err, "document %q: link", doc.ID)
		}
		adder.AddLink(l)
	}
	return nil
}

func attachInline(entity stac.Entity, doc *document) error {
	if len(doc.Children) == 0 && len(doc.Items) == 0 {
		return nil
	}
	for _, raw := range append(append([]json.RawMessage{}, doc.Children...), doc.Items...) {
		child, err := decodeDocument(raw, false)
		if err != nil {
			return err
		}
		if err := addChild(entity, child); err != nil {
			return err
		}
	}
	return nil
}

// addChild dispatches to the concrete parent type; items cannot carry
// children.
func addChild(parent, child stac.Entity) error {
	switch p := parent.(type) {
	case *stac.Collection:
		return p.AddChild(child)
	case *stac.Catalog:
		return p.AddChild(child)
	default:
		return errors.New(errors.ErrCodeSchema,
			"document %q: %s cannot carry children", parent.ID(), parent.Kind())
	}
}

// checkDuplicateKeys scans the top level of a JSON object for repeated
// keys, which a plain map decode would silently collapse.
func checkDuplicateKeys(raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New(errors.ErrCodeSchema, "expected a JSON object")
	}
	seen := make(map[string]bool)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		if seen[key] {
			return errors.New(errors.ErrCodeSchema, "duplicate key %q", key)
		}
		seen[key] = true
		if err := skipValue(dec); err != nil {
			return err
		}
	}
	return nil
}

// skipValue consumes one JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// checkGlobalIDs enforces tree-wide id uniqueness for strict loads.
func checkGlobalIDs(root stac.Entity) error {
	seen := make(map[string]bool)
	for e := range root.Walk() {
		if seen[e.ID()] {
			return errors.New(errors.ErrCodeDuplicateID,
				"id %q appears more than once in the tree", e.ID())
		}
		seen[e.ID()] = true
	}
	return nil
}
