// Package pkg provides the gostac libraries for building, mutating, and
// serializing SpatioTemporal Asset Catalogs.
//
// # Overview
//
// gostac models a STAC tree in memory and maps it to the STAC JSON
// document form. The pkg directory is organized by concern:
//
//  1. [stac] - The object model: Catalog, Collection, Item, links,
//     assets, extents, and change notification.
//  2. [stacjson] - JSON encoding and decoding, inline and linked
//     document layouts, save/load through a source.
//  3. [stacio] - Document sources: directory trees, memory, cached.
//  4. [observe] - The observer protocol and hook sinks used by the
//     object model.
//  5. [cache], [config], [errors], [stacutil] - Supporting
//     infrastructure.
//
// # Quick Start
//
// Build a tree, then save one document per entity into a directory:
//
//	root, _ := stac.NewCatalog("demo", "Demo catalog")
//	col, _ := stac.NewCollection("scenes", "Scenes", "proprietary", stac.Extent{})
//	item, _ := stac.NewItem("scene-1", stac.NewPoint(2, 3),
//	    stac.NewProperties(time.Now()))
//	_ = col.AddChild(item)
//	_ = root.AddChild(col)
//
//	src, _ := stacio.NewFileSource("./catalog")
//	_ = stacjson.Save(context.Background(), root, src, stacjson.DefaultOptions())
//
// Collections keep their extent in sync with their items lazily; read
// it with Extent or force a recompute with FinalizeExtent.
package pkg
