package stacjson

import (
	"strings"
	"testing"

	"github.com/stac-utils/gostac/pkg/errors"
	"github.com/stac-utils/gostac/pkg/stac"
)

func TestDecodeSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{
			name: "missing type",
			doc:  `{"id":"x","description":"d"}`,
			code: errors.ErrCodeSchema,
		},
		{
			name: "unknown type",
			doc:  `{"type":"Sandwich","id":"x"}`,
			code: errors.ErrCodeSchema,
		},
		{
			name: "missing id",
			doc:  `{"type":"Catalog","description":"d"}`,
			code: errors.ErrCodeSchema,
		},
		{
			name: "catalog missing description",
			doc:  `{"type":"Catalog","id":"x"}`,
			code: errors.ErrCodeSchema,
		},
		{
			name: "item without temporal coverage",
			doc:  `{"type":"Feature","id":"i","properties":{}}`,
			code: errors.ErrCodeSchema,
		},
		{
			name: "item with half a range",
			doc:  `{"type":"Feature","id":"i","properties":{"start_datetime":"2020-01-01T00:00:00Z"}}`,
			code: errors.ErrCodeSchema,
		},
		{
			name: "not json",
			doc:  `{"type":`,
			code: errors.ErrCodeSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes([]byte(tt.doc), DefaultOptions())
			if !errors.Is(err, tt.code) {
				t.Errorf("DecodeBytes() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestDecodeDuplicateSiblingIDs(t *testing.T) {
	doc := `{
		"type": "Catalog", "id": "root", "description": "d",
		"children": [
			{"type": "Catalog", "id": "sub", "description": "a"},
			{"type": "Catalog", "id": "sub", "description": "b"}
		]
	}`
	entity, err := DecodeBytes([]byte(doc), DefaultOptions())
	if !errors.Is(err, errors.ErrCodeDuplicateID) {
		t.Errorf("DecodeBytes() error = %v, want DUPLICATE_ID", err)
	}
	if entity != nil {
		t.Error("DecodeBytes() returned a partial tree alongside the error")
	}
}

func TestDecodeStrictIDs(t *testing.T) {
	// Same id at different levels: legal by default, rejected in
	// strict mode.
	doc := `{
		"type": "Catalog", "id": "dup", "description": "d",
		"children": [
			{"type": "Catalog", "id": "mid", "description": "m",
			 "children": [{"type": "Catalog", "id": "dup", "description": "leaf"}]}
		]
	}`
	if _, err := DecodeBytes([]byte(doc), DefaultOptions()); err != nil {
		t.Fatalf("default decode error = %v", err)
	}

	opts := DefaultOptions()
	opts.StrictIDs = true
	if _, err := DecodeBytes([]byte(doc), opts); !errors.Is(err, errors.ErrCodeDuplicateID) {
		t.Errorf("strict decode error = %v, want DUPLICATE_ID", err)
	}
}

func TestDecodeDuplicateAssetKeys(t *testing.T) {
	doc := `{
		"type": "Feature", "id": "i",
		"properties": {"datetime": "2020-01-01T00:00:00Z"},
		"assets": {
			"data": {"href": "./a.tif"},
			"data": {"href": "./b.tif"}
		}
	}`
	_, err := DecodeBytes([]byte(doc), DefaultOptions())
	if !errors.Is(err, errors.ErrCodeSchema) {
		t.Fatalf("DecodeBytes() error = %v, want SCHEMA", err)
	}
	if !strings.Contains(err.Error(), "duplicate key") {
		t.Errorf("error %q does not mention the duplicate key", err)
	}
}

func TestDecodeRestoresItemProperties(t *testing.T) {
	doc := `{
		"type": "Feature", "id": "scene-1",
		"properties": {
			"datetime": "2020-01-01T00:00:00Z",
			"gsd": 30,
			"platform": "landsat-8",
			"eo:cloud_cover": 12.5
		}
	}`
	entity, err := DecodeBytes([]byte(doc), DefaultOptions())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	props := entity.(*stac.Item).Properties()

	if v, ok := props.Field("gsd"); !ok || v != 30.0 {
		t.Errorf("Field(gsd) = %v, %v, want 30", v, ok)
	}
	if v, ok := props.Field("platform"); !ok || v != "landsat-8" {
		t.Errorf("Field(platform) = %v, %v, want landsat-8", v, ok)
	}
	if v, ok := props.Field("eo:cloud_cover"); !ok || v != 12.5 {
		t.Errorf("Field(eo:cloud_cover) = %v, %v, want 12.5", v, ok)
	}
	// The datetime family stays out of the free-form fields.
	if _, ok := props.Field("datetime"); ok {
		t.Error("Field(datetime) present in free-form fields")
	}
}

func TestDecodeWiresObservers(t *testing.T) {
	doc := `{
		"type": "Collection", "id": "col", "description": "d", "license": "proprietary",
		"items": [
			{"type": "Feature", "id": "i1", "properties": {"datetime": "2020-01-01T00:00:00Z"},
			 "geometry": {"type": "Point", "coordinates": [2, 3]}}
		]
	}`
	entity, err := DecodeBytes([]byte(doc), DefaultOptions())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	col := entity.(*stac.Collection)

	item, err := col.FindByID("i1")
	if err != nil {
		t.Fatal(err)
	}
	if err := item.(*stac.Item).SetGeometry(stac.NewPoint(9, 9)); err != nil {
		t.Fatal(err)
	}
	if !col.ExtentStale() {
		t.Error("loaded collection did not observe its item's geometry change")
	}
}

func TestDecodeCarriesStacVersion(t *testing.T) {
	doc := `{"type": "Catalog", "id": "old", "description": "d", "stac_version": "0.9.0"}`
	entity, err := DecodeBytes([]byte(doc), DefaultOptions())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if v := entity.StacVersion(); v != "0.9.0" {
		t.Errorf("StacVersion() = %q, want the document's 0.9.0", v)
	}

	data, err := EncodeBytes(entity, DefaultOptions())
	if err != nil {
		t.Fatalf("EncodeBytes() error = %v", err)
	}
	if !strings.Contains(string(data), `"stac_version": "0.9.0"`) {
		t.Errorf("re-encoded document lost the declared version: %s", data)
	}

	// A document without the field gets the current release.
	entity, err = DecodeBytes([]byte(`{"type": "Catalog", "id": "new", "description": "d"}`), DefaultOptions())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if v := entity.StacVersion(); v != stac.Version {
		t.Errorf("StacVersion() = %q, want %q", v, stac.Version)
	}
}

func TestDecodeKeepsUnresolvedChildLinks(t *testing.T) {
	doc := `{
		"type": "Catalog", "id": "root", "description": "d",
		"links": [
			{"rel": "child", "href": "./sub/sub.json"},
			{"rel": "license", "href": "https://example.com/license"}
		]
	}`
	entity, err := DecodeBytes([]byte(doc), DefaultOptions())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	cat := entity.(*stac.Catalog)

	if len(cat.Children()) != 0 {
		t.Error("DecodeBytes() followed a child link")
	}
	if links := cat.LinksByRel(stac.RelChild); len(links) != 1 || links[0].Href != "./sub/sub.json" {
		t.Errorf("child links = %+v, want the unresolved link kept", links)
	}
	if links := cat.LinksByRel(stac.RelLicense); len(links) != 1 {
		t.Errorf("license links = %+v", links)
	}
}

func TestDecodeCollectionAssets(t *testing.T) {
	doc := `{
		"type": "Collection", "id": "col", "description": "d", "license": "proprietary",
		"assets": {
			"overview": {"href": "./overview.tif", "title": "Overview", "roles": ["overview"]}
		}
	}`
	entity, err := DecodeBytes([]byte(doc), DefaultOptions())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	col := entity.(*stac.Collection)

	a, ok := col.Asset("overview")
	if !ok || a.Href != "./overview.tif" || a.Title != "Overview" {
		t.Errorf("Asset(overview) = %+v, %v", a, ok)
	}

	// The asset survives a re-encode.
	data, err := EncodeBytes(col, DefaultOptions())
	if err != nil {
		t.Fatalf("EncodeBytes() error = %v", err)
	}
	if !strings.Contains(string(data), `"./overview.tif"`) {
		t.Error("encoded collection is missing the asset href")
	}

	// Duplicate keys are rejected, same as item assets.
	dup := `{
		"type": "Collection", "id": "col", "description": "d", "license": "proprietary",
		"assets": {
			"overview": {"href": "./a.tif"},
			"overview": {"href": "./b.tif"}
		}
	}`
	if _, err := DecodeBytes([]byte(dup), DefaultOptions()); !errors.Is(err, errors.ErrCodeSchema) {
		t.Errorf("duplicate asset keys error = %v, want SCHEMA", err)
	}
}

func TestDecodeRestoresCollectionExtent(t *testing.T) {
	doc := `{
		"type": "Collection", "id": "col", "description": "d", "license": "proprietary",
		"extent": {
			"spatial": {"bbox": [[-180, -90, 180, 90]]},
			"temporal": {"interval": [["2015-06-23T00:00:00Z", null]]}
		},
		"items": [
			{"type": "Feature", "id": "i1", "properties": {"datetime": "2020-01-01T00:00:00Z"},
			 "geometry": {"type": "Point", "coordinates": [2, 3]}}
		]
	}`
	entity, err := DecodeBytes([]byte(doc), DefaultOptions())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	col := entity.(*stac.Collection)

	// The documented extent survives the load; it is not immediately
	// recomputed from the single item.
	box, ok := col.Extent().Spatial.Overall()
	if !ok || box.Slice()[0] != -180 {
		t.Errorf("extent after load = %v, want the documented [-180 -90 180 90]", box)
	}
	iv, ok := col.Extent().Temporal.Overall()
	if !ok || iv.End != nil {
		t.Errorf("temporal extent = %+v, want open end preserved", iv)
	}
}

func TestDecodeSummaries(t *testing.T) {
	doc := `{
		"type": "Collection", "id": "col", "description": "d", "license": "CC-BY-4.0",
		"summaries": {
			"gsd": {"minimum": 0.3, "maximum": 30},
			"platform": ["landsat-8", "sentinel-2"]
		}
	}`
	entity, err := DecodeBytes([]byte(doc), DefaultOptions())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	col := entity.(*stac.Collection)

	summaries := col.Summaries()
	r, ok := summaries["gsd"].(stac.Range)
	if !ok || r.Minimum != 0.3 || r.Maximum != 30 {
		t.Errorf("summaries[gsd] = %#v, want Range{0.3 30}", summaries["gsd"])
	}
	if _, ok := summaries["platform"].(stac.Range); ok {
		t.Error("summaries[platform] decoded as Range")
	}
}
