package stac

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/stac-utils/gostac/pkg/errors"
	"github.com/stac-utils/gostac/pkg/observe"
	"github.com/stac-utils/gostac/pkg/stacutil"
)

// Kind is the STAC document type discriminant.
type Kind string

// Entity kinds. Items use the GeoJSON Feature discriminant, matching the
// wire format.
const (
	KindCatalog    Kind = "Catalog"
	KindCollection Kind = "Collection"
	KindItem       Kind = "Feature"
)

// Entity is a node in a STAC tree. The interface is sealed: Catalog,
// Collection, and Item are the only implementations, and consumers
// dispatch on Kind or a type switch.
type Entity interface {
	observe.Observer

	// Kind returns the document type discriminant.
	Kind() Kind
	// ID returns the entity identifier, unique among its siblings.
	ID() string
	// StacVersion returns the STAC version the entity declares.
	StacVersion() string
	// Links returns a copy of the entity's links in order.
	Links() []Link
	// Path returns the slash-separated catalog path from the root,
	// empty for a detached or root entity.
	Path() string
	// DocHref returns the entity's document location relative to the
	// tree root.
	DocHref() string
	// Parent returns the owning entity, nil for roots.
	Parent() Entity
	// Children returns the ordered child entities, nil for items.
	Children() []Entity
	// Walk yields the entity and every descendant in pre-order. The
	// sequence is lazy and restartable.
	Walk() iter.Seq[Entity]
	// Attach registers an observer; re-registration is a no-op.
	Attach(observe.Observer)
	// Detach removes an observer; absent observers are a no-op.
	Detach(observe.Observer)

	node() *entityNode
}

// entityNode is the state shared by every entity kind.
type entityNode struct {
	observe.Observable

	id          string
	stacVersion string
	extensions  []string
	links       []Link
	path        string
	parent      Entity

	// self is the outermost entity wrapping this node, so that shared
	// code attaches and reports the concrete type, not the embedded one.
	self Entity
}

func newEntityNode(self Entity, id string) entityNode {
	return entityNode{
		id:          id,
		stacVersion: Version,
		self:        self,
	}
}

func (n *entityNode) node() *entityNode { return n }

func (n *entityNode) ID() string          { return n.id }
func (n *entityNode) StacVersion() string { return n.stacVersion }

// SetStacVersion overrides the declared STAC version. New entities
// declare the current release; loading a document written against an
// older release carries its version through instead.
func (n *entityNode) SetStacVersion(v string) error {
	if err := errors.ValidateNonEmpty("stac_version", v); err != nil {
		return err
	}
	prev := n.stacVersion
	n.stacVersion = v
	return n.notifyMutation("stac_version", prev)
}
func (n *entityNode) Path() string        { return n.path }
func (n *entityNode) Parent() Entity      { return n.parent }
func (n *entityNode) Children() []Entity  { return nil }

// Extensions returns the STAC extension identifiers the entity declares.
func (n *entityNode) Extensions() []string { return slices.Clone(n.extensions) }

// AddExtension declares a STAC extension on the entity.
func (n *entityNode) AddExtension(id string) {
	if !slices.Contains(n.extensions, id) {
		n.extensions = append(n.extensions, id)
	}
}

// Links returns a copy of the entity's links in order.
func (n *entityNode) Links() []Link { return slices.Clone(n.links) }

// LinksByRel returns the entity's links with the given relation.
func (n *entityNode) LinksByRel(rel RelType) []Link {
	var out []Link
	for _, l := range n.links {
		if l.Rel == rel {
			out = append(out, l)
		}
	}
	return out
}

// AddLink appends a link to the entity.
func (n *entityNode) AddLink(l Link) {
	n.links = append(n.links, l)
}

// RemoveLinks drops every link with the given relation, reporting how
// many were removed.
func (n *entityNode) RemoveLinks(rel RelType) int {
	before := len(n.links)
	n.links = slices.DeleteFunc(n.links, func(l Link) bool { return l.Rel == rel })
	return before - len(n.links)
}

func (n *entityNode) removeLink(rel RelType, href string) {
	n.links = slices.DeleteFunc(n.links, func(l Link) bool {
		return l.Rel == rel && l.Href == href
	})
}

// Walk yields the entity and every descendant in pre-order.
func (n *entityNode) Walk() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		preorder(n.self, yield)
	}
}

func preorder(e Entity, yield func(Entity) bool) bool {
	if !yield(e) {
		return false
	}
	for _, child := range e.Children() {
		if !preorder(child, yield) {
			return false
		}
	}
	return true
}

// Root walks the parent chain to the tree root.
func (n *entityNode) Root() Entity {
	root := n.self
	for root.Parent() != nil {
		root = root.Parent()
	}
	return root
}

// DocHref returns the entity's document location relative to the tree
// root: the root document sits at <id>.json, every descendant in its
// own directory at <path>/<id>.json.
func (n *entityNode) DocHref() string {
	return stacutil.JoinHref(n.path, n.id+".json")
}

// depth counts path segments, the directory depth of the entity's doc.
func (n *entityNode) depth() int {
	if n.path == "" {
		return 0
	}
	return strings.Count(n.path, "/") + 1
}

// notifyMutation reports a field change to observers and hooks.
func (n *entityNode) notifyMutation(field string, prev any) error {
	observe.Entity().OnMutate(string(n.self.Kind()), n.id, field)
	return n.Notify(observe.Event{
		Kind:   observe.KindFieldChanged,
		Source: n.self,
		Field:  field,
		Prev:   prev,
	})
}

// refreshStructuralLinks rebuilds the synthesized self, root, and parent
// links from the entity's current position in the tree. User-added links
// with other relations are left alone.
func (n *entityNode) refreshStructuralLinks(title string) {
	n.RemoveLinks(RelSelf)
	n.RemoveLinks(RelRoot)
	n.RemoveLinks(RelParent)

	n.links = append(n.links, Link{
		Rel:       RelSelf,
		Href:      n.id + ".json",
		MediaType: mediaTypeFor(n.self.Kind()),
		Title:     title,
	})

	if n.parent == nil {
		return
	}
	up := strings.Repeat("../", n.depth())
	root := n.Root()
	n.links = append(n.links, Link{
		Rel:       RelRoot,
		Href:      up + root.ID() + ".json",
		MediaType: mediaTypeFor(root.Kind()),
	})
	n.links = append(n.links, Link{
		Rel:       RelParent,
		Href:      "../" + n.parent.ID() + ".json",
		MediaType: mediaTypeFor(n.parent.Kind()),
	})
}

func mediaTypeFor(k Kind) string {
	if k == KindItem {
		return MediaTypeItem
	}
	return MediaTypeCatalog
}

// childLinkHref is the href a parent uses to reference a child document,
// relative to the parent's directory.
func childLinkHref(childID string) string {
	return "./" + childID + "/" + childID + ".json"
}

// resolveEntityID validates a caller-supplied id, generating one when
// empty.
func resolveEntityID(id string) (string, error) {
	if id == "" {
		return newID(), nil
	}
	if err := errors.ValidateID(id); err != nil {
		return "", err
	}
	return id, nil
}

// Describe writes an indented listing of the subtree rooted at e.
func Describe(e Entity, w io.Writer) error {
	return describe(e, w, 0)
}

func describe(e Entity, w io.Writer, depth int) error {
	indent := strings.Repeat("    ", depth)
	label := string(e.Kind())
	if e.Kind() == KindItem {
		label = "Item"
	}
	if _, err := fmt.Fprintf(w, "%s* <%s id=%s>\n", indent, label, e.ID()); err != nil {
		return err
	}
	for _, child := range e.Children() {
		if err := describe(child, w, depth+1); err != nil {
			return err
		}
	}
	return nil
}
