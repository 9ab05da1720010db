// Package stacjson maps the STAC object model to and from its JSON
// document form.
//
// Two document shapes are supported. Inline documents embed the whole
// subtree in children and items arrays, which suits single-file
// round-trips. Linked documents reference children through child and
// item relation links, one document per entity, which is the layout
// Save writes through a stacio.Source and Load resolves back.
//
// Decoding validates structure before any tree is returned: an unknown
// type discriminant, a missing id, duplicate sibling ids, or duplicate
// asset keys abort the load with a SCHEMA or DUPLICATE_ID error and no
// partial tree. Structural links (self, root, parent, and resolved
// child/item links) are re-synthesized from tree shape on load, so the
// round-trip load(dump(e)) preserves every modeled field.
package stacjson
