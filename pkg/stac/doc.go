// Package stac implements the SpatioTemporal Asset Catalog object model:
// a mutable in-memory tree of Catalog, Collection, and Item entities with
// their links, providers, assets, and spatial/temporal extents.
//
// # Entity tree
//
// Catalogs own an ordered sequence of child entities; Collections extend
// Catalogs with an extent, providers, and a license; Items are leaf nodes
// carrying geometry, a property bag, and downloadable assets. Every child
// holds a non-owning back-reference to its parent, used only for link
// synthesis and change notification, never for lifetime.
//
// Parents register as observers of their children when the child is
// attached, so a mutation anywhere in the tree bubbles to every ancestor.
// Collections use this to invalidate their derived extent lazily: the
// extent is marked stale on relevant changes and recomputed on the next
// read or an explicit FinalizeExtent call. The staleness window between a
// mutation and the next read is deliberate; bulk loads would otherwise
// pay a full traversal per insert.
//
// # Concurrency
//
// The tree follows a single-owner, synchronous model. Mutations and their
// notification fan-outs complete before the mutating call returns, and no
// operation blocks on I/O. The types are not safe for concurrent use
// without external synchronization.
package stac
