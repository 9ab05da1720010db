package stacjson

import (
	"context"

	json "github.com/goccy/go-json"

	"github.com/stac-utils/gostac/pkg/errors"
	"github.com/stac-utils/gostac/pkg/observe"
	"github.com/stac-utils/gostac/pkg/stac"
	"github.com/stac-utils/gostac/pkg/stacio"
	"github.com/stac-utils/gostac/pkg/stacutil"
)

// Load reads the document at href from src and builds the entity tree,
// resolving child and item relation links through the source. Inline
// children are attached as well, so mixed layouts load fine.
func Load(ctx context.Context, src stacio.Source, href string, opts Options) (stac.Entity, error) {
	entity, err := loadLinked(ctx, src, href)
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

func loadLinked(ctx context.Context, src stacio.Source, href string) (stac.Entity, error) {
	data, err := src.Read(ctx, href)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, err, "malformed document at %q", href)
	}

	entity, err := buildEntity(&doc, true)
	if err != nil {
		return nil, err
	}
	for _, ld := range doc.Links {
		rel := stac.RelType(ld.Rel)
		if rel != stac.RelChild && rel != stac.RelItem {
			continue
		}
		child, err := loadLinked(ctx, src, stacutil.ResolveHref(href, ld.Href))
		if err != nil {
			return nil, err
		}
		if err := addChild(entity, child); err != nil {
			return nil, err
		}
	}

	if c, ok := entity.(*stac.Collection); ok && doc.Extent != nil && len(c.Children()) > 0 {
		extent, err := decodeExtent(&doc)
		if err != nil {
			return nil, err
		}
		if err := c.SetExtent(extent); err != nil {
			return nil, err
		}
	}
	return entity, nil
}

// Save writes one linked document per entity in the subtree through
// src: the root at <id>.json, every descendant in its own directory.
// Observers of the root hear a single saved event afterwards.
func Save(ctx context.Context, e stac.Entity, src stacio.Source, opts Options) error {
	linked := opts
	linked.Inline = false
	for entity := range e.Walk() {
		data, err := EncodeBytes(entity, linked)
		if err != nil {
			return err
		}
		if err := src.Write(ctx, entity.DocHref(), data); err != nil {
			return err
		}
	}
	observe.Entity().OnMutate(string(e.Kind()), e.ID(), "saved")
	if n, ok := e.(interface{ Notify(observe.Event) error }); ok {
		return n.Notify(observe.Event{Kind: observe.KindSaved, Source: e})
	}
	return nil
}
