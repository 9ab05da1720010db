package stacjson

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/stac-utils/gostac/pkg/errors"
	"github.com/stac-utils/gostac/pkg/stac"
	"github.com/stac-utils/gostac/pkg/stacutil"
)

// Encode writes the entity's JSON document to w.
func Encode(w io.Writer, e stac.Entity, opts Options) error {
	data, err := EncodeBytes(e, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// EncodeBytes renders the entity as a JSON document. With opts.Inline
// the whole subtree is embedded; otherwise children appear only as
// child/item relation links.
func EncodeBytes(e stac.Entity, opts Options) ([]byte, error) {
	doc, err := buildDocument(e, opts.Inline)
	if err != nil {
		return nil, err
	}
	if opts.Pretty {
		return json.MarshalIndent(doc, "", opts.Indent)
	}
	return json.Marshal(doc)
}

func buildDocument(e stac.Entity, inline bool) (*document, error) {
	doc := &document{
		Type:        string(e.Kind()),
		StacVersion: e.StacVersion(),
		ID:          e.ID(),
	}
	for _, l := range e.Links() {
		if inline && (l.Rel == stac.RelChild || l.Rel == stac.RelItem) {
			continue
		}
		doc.Links = append(doc.Links, linkDoc{
			Rel:   string(l.Rel),
			Href:  l.Href,
			Type:  l.MediaType,
			Title: l.Title,
		})
	}

	switch v := e.(type) {
	case *stac.Collection:
		doc.Title = v.Title()
		doc.Description = v.Description()
		doc.StacExtensions = v.Extensions()
		doc.License = v.License()
		doc.Extent = encodeExtent(v.Extent())
		doc.Keywords = v.Keywords()
		for _, p := range v.Providers() {
			doc.Providers = append(doc.Providers, encodeProvider(p))
		}
		var err error
		if doc.Summaries, err = encodeSummaries(v.Summaries()); err != nil {
			return nil, err
		}
		if doc.Assets, err = encodeAssets(v); err != nil {
			return nil, err
		}
	case *stac.Catalog:
		doc.Title = v.Title()
		doc.Description = v.Description()
		doc.StacExtensions = v.Extensions()
	case *stac.Item:
		if err := encodeItem(doc, v); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInternal, "unknown entity kind %q", e.Kind())
	}

	if inline {
		for _, child := range e.Children() {
			raw, err := buildDocument(child, true)
			if err != nil {
				return nil, err
			}
			data, err := json.Marshal(raw)
			if err != nil {
				return nil, err
			}
			if child.Kind() == stac.KindItem {
				doc.Items = append(doc.Items, data)
			} else {
				doc.Children = append(doc.Children, data)
			}
		}
	}
	return doc, nil
}

func encodeItem(doc *document, it *stac.Item) error {
	if g := it.Geometry(); g != nil {
		raw, err := json.Marshal(g)
		if err != nil {
			return err
		}
		doc.Geometry = raw
	}
	if box, ok := it.BBox(); ok {
		doc.BBox = box.Slice()
	}
	if id, ok := it.Collection(); ok {
		doc.Collection = id
	}
	doc.StacExtensions = it.Extensions()

	props := make(map[string]json.RawMessage)
	p := it.Properties()
	if dt, ok := p.Datetime(); ok {
		props["datetime"] = mustJSON(stacutil.FormatDatetime(dt))
	} else if start, end, ok := p.DatetimeRange(); ok {
		props["datetime"] = json.RawMessage("null")
		props["start_datetime"] = mustJSON(stacutil.FormatDatetime(start))
		props["end_datetime"] = mustJSON(stacutil.FormatDatetime(end))
	}
	for k, v := range p.Fields() {
		raw, err := json.Marshal(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode property %q", k)
		}
		props[k] = raw
	}
	doc.Properties = props

	var err error
	doc.Assets, err = encodeAssets(it)
	return err
}

// assetHolder is satisfied by items and collections; both carry keyed
// assets.
type assetHolder interface {
	AssetKeys() []string
	Asset(key string) (stac.Asset, bool)
}

func encodeAssets(h assetHolder) (json.RawMessage, error) {
	keys := h.AssetKeys()
	if len(keys) == 0 {
		return nil, nil
	}
	assets := make(map[string]assetDoc, len(keys))
	for _, key := range keys {
		a, _ := h.Asset(key)
		assets[key] = assetDoc{
			Href:        a.Href,
			Title:       a.Title,
			Description: a.Description,
			Type:        a.MediaType,
			Roles:       a.Roles,
		}
	}
	return json.Marshal(assets)
}

func encodeExtent(ext stac.Extent) *extentDoc {
	doc := &extentDoc{
		Spatial:  spatialDoc{BBox: [][]float64{}},
		Temporal: temporalDoc{Interval: [][]*string{}},
	}
	for _, b := range ext.Spatial.BBoxes {
		doc.Spatial.BBox = append(doc.Spatial.BBox, b.Slice())
	}
	for _, iv := range ext.Temporal.Intervals {
		var start, end *string
		if iv.Start != nil {
			s := stacutil.FormatDatetime(*iv.Start)
			start = &s
		}
		if iv.End != nil {
			e := stacutil.FormatDatetime(*iv.End)
			end = &e
		}
		doc.Temporal.Interval = append(doc.Temporal.Interval, []*string{start, end})
	}
	return doc
}

func encodeProvider(p stac.Provider) providerDoc {
	doc := providerDoc{Name: p.Name, Description: p.Description, URL: p.URL}
	for _, r := range p.Roles {
		doc.Roles = append(doc.Roles, string(r))
	}
	return doc
}

func encodeSummaries(summaries map[string]any) (map[string]json.RawMessage, error) {
	if len(summaries) == 0 {
		return nil, nil
	}
	out := make(map[string]json.RawMessage, len(summaries))
	for field, value := range summaries {
		if r, ok := value.(stac.Range); ok {
			value = rangeDoc{Minimum: r.Minimum, Maximum: r.Maximum}
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode summary %q", field)
		}
		out[field] = raw
	}
	return out, nil
}

func mustJSON(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}
