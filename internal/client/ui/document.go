// Package ui is the interaction layer of the storefront: a document of
// clickable controls rendered from service state, a binder that attaches
// exactly one handler per control, the auth modal, transient notifications,
// and the Shop that ties them to the services.
package ui

import "sync"

type Kind string

const (
	KindAddToCart      Kind = "add-to-cart"
	KindWishlistToggle Kind = "wishlist-toggle"
	KindLogout         Kind = "logout"
	KindOpenAuth       Kind = "open-auth"
	KindOpenCart       Kind = "open-cart"
	KindOpenWishlist   Kind = "open-wishlist"
	KindModalClose     Kind = "modal-close"
	KindAuthTab        Kind = "auth-tab"
	KindCartRemove     Kind = "cart-remove"
	KindQtyDec         Kind = "qty-dec"
	KindQtyInc         Kind = "qty-inc"
	KindWishlistRemove Kind = "wishlist-remove"
	KindCheckout       Kind = "checkout"
)

// Node is one control in the document.
type Node struct {
	ID      string
	Kind    Kind
	Section string

	// Ref names what the control acts on: a product id, a cart line id, a
	// wishlist entry id, a modal or a tab, depending on Kind.
	Ref string

	Label string

	// Badge is a counter shown next to the label; zero hides it.
	Badge int

	// Active marks toggles that are on, e.g. a filled wishlist heart.
	Active bool
}

// Document is an ordered collection of nodes grouped in sections. Observers
// are told about every node that is added, so handlers can be attached to
// controls that appear after the initial render.
type Document struct {
	mu        sync.RWMutex
	sections  []string
	bySection map[string][]Node
	index     map[string]Node
	observers []func(added []Node)
}

func NewDocument() *Document {
	return &Document{
		bySection: make(map[string][]Node),
		index:     make(map[string]Node),
	}
}

// Observe registers fn to be called after nodes are added.
func (d *Document) Observe(fn func(added []Node)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, fn)
}

// Append adds nodes at the end of their sections. A node whose ID is already
// present replaces the old one.
func (d *Document) Append(nodes ...Node) {
	d.mu.Lock()
	for _, n := range nodes {
		if old, ok := d.index[n.ID]; ok {
			d.removeLocked(old)
		}
		d.addLocked(n)
	}
	d.mu.Unlock()

	d.notify(nodes)
}

// Replace swaps the whole content of section for nodes.
func (d *Document) Replace(section string, nodes ...Node) {
	d.mu.Lock()
	for _, old := range d.bySection[section] {
		delete(d.index, old.ID)
	}
	d.bySection[section] = nil
	d.touchSection(section)

	added := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		n.Section = section
		if old, ok := d.index[n.ID]; ok {
			d.removeLocked(old)
		}
		d.addLocked(n)
		added = append(added, n)
	}
	d.mu.Unlock()

	d.notify(added)
}

func (d *Document) Get(id string) (Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n, ok := d.index[id]
	return n, ok
}

// Nodes returns all nodes in section order.
func (d *Document) Nodes() []Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []Node
	for _, s := range d.sections {
		out = append(out, d.bySection[s]...)
	}
	return out
}

// Section returns the nodes of one section in order.
func (d *Document) Section(name string) []Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Node(nil), d.bySection[name]...)
}

func (d *Document) touchSection(name string) {
	for _, s := range d.sections {
		if s == name {
			return
		}
	}
	d.sections = append(d.sections, name)
}

func (d *Document) addLocked(n Node) {
	d.touchSection(n.Section)
	d.bySection[n.Section] = append(d.bySection[n.Section], n)
	d.index[n.ID] = n
}

func (d *Document) removeLocked(n Node) {
	delete(d.index, n.ID)
	list := d.bySection[n.Section]
	for i := range list {
		if list[i].ID == n.ID {
			d.bySection[n.Section] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

func (d *Document) notify(added []Node) {
	if len(added) == 0 {
		return
	}
	d.mu.RLock()
	obs := append([]func([]Node){}, d.observers...)
	d.mu.RUnlock()

	for _, fn := range obs {
		fn(added)
	}
}
