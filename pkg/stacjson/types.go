package stacjson

import (
	json "github.com/goccy/go-json"
)

// document is the wire shape shared by all three entity kinds. The
// type discriminant decides which fields apply.
type document struct {
	Type           string    `json:"type"`
	StacVersion    string    `json:"stac_version"`
	ID             string    `json:"id"`
	Title          string    `json:"title,omitempty"`
	Description    string    `json:"description,omitempty"`
	StacExtensions []string  `json:"stac_extensions,omitempty"`
	Links          []linkDoc `json:"links,omitempty"`

	// Collection fields.
	License   string                     `json:"license,omitempty"`
	Extent    *extentDoc                 `json:"extent,omitempty"`
	Providers []providerDoc              `json:"providers,omitempty"`
	Keywords  []string                   `json:"keywords,omitempty"`
	Summaries map[string]json.RawMessage `json:"summaries,omitempty"`

	// Item fields. Assets applies to collections too; it stays raw so
	// duplicate keys can be detected before the map decode collapses them.
	Geometry   json.RawMessage            `json:"geometry,omitempty"`
	BBox       []float64                  `json:"bbox,omitempty"`
	Properties map[string]json.RawMessage `json:"properties,omitempty"`
	Assets     json.RawMessage            `json:"assets,omitempty"`
	Collection string                     `json:"collection,omitempty"`

	// Inline subtree.
	Children []json.RawMessage `json:"children,omitempty"`
	Items    []json.RawMessage `json:"items,omitempty"`
}

type linkDoc struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

type providerDoc struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	URL         string   `json:"url,omitempty"`
}

type assetDoc struct {
	Href        string   `json:"href"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

type extentDoc struct {
	Spatial  spatialDoc  `json:"spatial"`
	Temporal temporalDoc `json:"temporal"`
}

type spatialDoc struct {
	BBox [][]float64 `json:"bbox"`
}

type temporalDoc struct {
	Interval [][]*string `json:"interval"`
}

// rangeDoc is the summaries range shape: an object with exactly a
// minimum and a maximum.
type rangeDoc struct {
	Minimum float64 `json:"minimum"`
	Maximum float64 `json:"maximum"`
}
