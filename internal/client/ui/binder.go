package ui

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/footcap/internal/client/services"
	"github.com/dmitrijs2005/footcap/internal/common"
)

// ErrNotBound is returned by Click for ids that are not in the document or
// have no handler attached.
var ErrNotBound = errors.New("no such control")

// Handler reacts to a click on n.
type Handler func(ctx context.Context, n Node) error

type binding struct {
	fn      Handler
	guarded bool
}

// Binder attaches handlers to document nodes by kind. Each node id is bound
// at most once, however many times it is rendered.
//
// Guarded kinds require a session: clicking one while logged out opens the
// auth modal on the signup tab and returns common.ErrNotLoggedIn.
type Binder struct {
	identity services.IdentityProvider
	modal    *AuthModal

	mu       sync.Mutex
	doc      *Document
	handlers map[Kind]binding
	bound    map[string]binding
}

func NewBinder(identity services.IdentityProvider, modal *AuthModal) *Binder {
	return &Binder{
		identity: identity,
		modal:    modal,
		handlers: make(map[Kind]binding),
		bound:    make(map[string]binding),
	}
}

// Handle registers fn for every node of kind.
func (b *Binder) Handle(kind Kind, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = binding{fn: fn}
}

// HandleGuarded registers fn for kind behind the session guard.
func (b *Binder) HandleGuarded(kind Kind, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = binding{fn: fn, guarded: true}
}

// Bind attaches handlers to the nodes currently in doc and returns how many
// were newly bound. Calling it again only binds nodes that appeared since.
func (b *Binder) Bind(doc *Document) int {
	b.mu.Lock()
	b.doc = doc
	b.mu.Unlock()
	return b.bindNodes(doc.Nodes())
}

// Observe binds doc now and keeps binding nodes as they are added.
func (b *Binder) Observe(doc *Document) int {
	n := b.Bind(doc)
	doc.Observe(func(added []Node) { b.bindNodes(added) })
	return n
}

func (b *Binder) bindNodes(nodes []Node) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, node := range nodes {
		if _, done := b.bound[node.ID]; done {
			continue
		}
		h, ok := b.handlers[node.Kind]
		if !ok {
			continue
		}
		b.bound[node.ID] = h
		n++
	}
	return n
}

func (b *Binder) Bound(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.bound[id]
	return ok
}

// Click dispatches to the handler bound to the node with the given id.
func (b *Binder) Click(ctx context.Context, id string) error {
	b.mu.Lock()
	doc := b.doc
	h, bound := b.bound[id]
	b.mu.Unlock()

	if doc == nil || !bound {
		return ErrNotBound
	}
	node, ok := doc.Get(id)
	if !ok {
		return ErrNotBound
	}

	if h.guarded && !b.identity.IsLoggedIn() {
		b.modal.Open()
		return common.ErrNotLoggedIn
	}
	return h.fn(ctx, node)
}
