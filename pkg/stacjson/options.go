package stacjson

// Options controls document shape and load strictness.
type Options struct {
	// Inline embeds the whole subtree in children/items arrays instead
	// of child/item relation links. Save ignores this and always writes
	// linked documents, one per entity.
	Inline bool

	// Pretty indents the output with Indent.
	Pretty bool

	// Indent is the indentation unit when Pretty is set.
	Indent string

	// StrictIDs additionally requires ids to be unique across the
	// whole tree on load, not just among siblings.
	StrictIDs bool
}

// DefaultOptions returns the defaults: pretty-printed inline documents
// with sibling-level id uniqueness.
func DefaultOptions() Options {
	return Options{Inline: true, Pretty: true, Indent: "  "}
}
