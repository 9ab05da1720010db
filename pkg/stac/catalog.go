package stac

import (
	"github.com/stac-utils/gostac/pkg/errors"
	"github.com/stac-utils/gostac/pkg/observe"
	"github.com/stac-utils/gostac/pkg/stacutil"
)

// Catalog groups child catalogs, collections, and items under a common
// identifier and description. A catalog owns its children; parents hold
// only back-references.
type Catalog struct {
	entityNode

	title       string
	description string
	children    []Entity
}

// NewCatalog builds a catalog. An empty id gets a generated UUID; the
// description is required.
func NewCatalog(id, description string) (*Catalog, error) {
	c := &Catalog{}
	if err := c.init(c, id, description); err != nil {
		return nil, err
	}
	observe.Entity().OnCreate(string(KindCatalog), c.id)
	return c, nil
}

// init wires the shared node state. self is the outermost entity so
// that embedding types keep their own dispatch.
func (c *Catalog) init(self Entity, id, description string) error {
	resolved, err := resolveEntityID(id)
	if err != nil {
		return err
	}
	if err := errors.ValidateNonEmpty("description", description); err != nil {
		return err
	}
	c.entityNode = newEntityNode(self, resolved)
	c.description = description
	c.refreshStructuralLinks(c.title)
	return nil
}

// Kind returns KindCatalog.
func (c *Catalog) Kind() Kind { return KindCatalog }

// Title returns the optional display title.
func (c *Catalog) Title() string { return c.title }

// Description returns the catalog description.
func (c *Catalog) Description() string { return c.description }

// Children returns the ordered child entities.
func (c *Catalog) Children() []Entity {
	out := make([]Entity, len(c.children))
	copy(out, c.children)
	return out
}

// SetTitle updates the display title. The title propagates to the
// synthesized self link and, when attached, to the parent's child link.
func (c *Catalog) SetTitle(title string) error {
	prev := c.title
	c.title = title
	for i := range c.links {
		if c.links[i].Rel == RelSelf && c.links[i].Href == c.id+".json" {
			c.links[i].Title = title
		}
	}
	if p := c.parent; p != nil {
		pn := p.node()
		href := childLinkHref(c.id)
		for i := range pn.links {
			if pn.links[i].Href == href {
				pn.links[i].Title = title
			}
		}
	}
	return c.notifyMutation("title", prev)
}

// SetDescription updates the catalog description.
func (c *Catalog) SetDescription(description string) error {
	if err := errors.ValidateNonEmpty("description", description); err != nil {
		return err
	}
	prev := c.description
	c.description = description
	return c.notifyMutation("description", prev)
}

// AddChild attaches a catalog, collection, or item as the last child.
// Sibling ids must be unique; attaching an entity that already has a
// parent, or an ancestor of the catalog, is rejected. On success the
// catalog observes the child, so descendant changes bubble up, and the
// structural links on both sides are synthesized.
func (c *Catalog) AddChild(child Entity) error {
	if child == nil {
		return errors.New(errors.ErrCodeInvalidValue, "child cannot be nil")
	}
	self := c.entityNode.self
	for anc := self; anc != nil; anc = anc.Parent() {
		if anc == child {
			return errors.New(errors.ErrCodeInvalidValue,
				"cannot attach %q to its own subtree", child.ID())
		}
	}
	if child.Parent() != nil {
		return errors.New(errors.ErrCodeInvalidValue,
			"entity %q is already attached to %q", child.ID(), child.Parent().ID())
	}
	for _, existing := range c.children {
		if existing.ID() == child.ID() {
			return errors.New(errors.ErrCodeDuplicateID,
				"entity %q already has a child with id %q", c.id, child.ID())
		}
	}

	cn := child.node()
	cn.parent = self
	c.children = append(c.children, child)
	reattachSubtree(child)

	rel := RelChild
	if child.Kind() == KindItem {
		rel = RelItem
	}
	c.links = append(c.links, Link{
		Rel:       rel,
		Href:      childLinkHref(child.ID()),
		MediaType: mediaTypeFor(child.Kind()),
		Title:     titleOf(child),
	})
	child.Attach(self)

	observe.Entity().OnMutate(string(self.Kind()), c.id, "children")
	return c.Notify(observe.Event{
		Kind:   observe.KindChildAdded,
		Source: self,
		Child:  child,
	})
}

// RemoveChild detaches the direct child with the given id. The observer
// registration, back-reference, and structural links on both sides are
// severed together before observers hear about the removal. The removed
// entity survives as the root of its own subtree.
func (c *Catalog) RemoveChild(id string) (Entity, error) {
	idx := -1
	for i, child := range c.children {
		if child.ID() == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, errors.New(errors.ErrCodeNotFound,
			"entity %q has no child with id %q", c.id, id)
	}

	self := c.entityNode.self
	child := c.children[idx]
	c.children = append(c.children[:idx], c.children[idx+1:]...)
	child.Detach(self)
	child.node().parent = nil
	reattachSubtree(child)

	href := childLinkHref(id)
	c.removeLink(RelChild, href)
	c.removeLink(RelItem, href)

	observe.Entity().OnMutate(string(self.Kind()), c.id, "children")
	err := c.Notify(observe.Event{
		Kind:   observe.KindChildRemoved,
		Source: self,
		Child:  child,
	})
	return child, err
}

// Child returns the direct child with the given id.
func (c *Catalog) Child(id string) (Entity, bool) {
	for _, child := range c.children {
		if child.ID() == id {
			return child, true
		}
	}
	return nil, false
}

// FindByID searches the subtree, the catalog included, for an entity
// with the given id and returns the first pre-order match.
func (c *Catalog) FindByID(id string) (Entity, error) {
	for e := range c.Walk() {
		if e.ID() == id {
			return e, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no entity with id %q under %q", id, c.id)
}

// OnEvent forwards a child's event to the catalog's own observers, so
// changes deep in the tree bubble to every ancestor.
func (c *Catalog) OnEvent(ev observe.Event) error {
	return c.Notify(ev)
}

// reattachSubtree recomputes paths and structural links for an entity
// and all its descendants after the entity moved in the tree.
func reattachSubtree(e Entity) {
	n := e.node()
	if n.parent == nil {
		n.path = ""
	} else {
		n.path = stacutil.JoinHref(n.parent.node().path, n.id)
	}
	n.refreshStructuralLinks(titleOf(e))
	for _, child := range e.Children() {
		reattachSubtree(child)
	}
}

// titleOf returns the display title for link synthesis. Items carry no
// title of their own.
func titleOf(e Entity) string {
	switch v := e.(type) {
	case *Collection:
		return v.title
	case *Catalog:
		return v.title
	default:
		return ""
	}
}

var _ Entity = (*Catalog)(nil)
