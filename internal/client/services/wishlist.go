package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/footcap/internal/client/events"
	"github.com/dmitrijs2005/footcap/internal/client/models"
	"github.com/dmitrijs2005/footcap/internal/client/repositories/kv"
	"github.com/dmitrijs2005/footcap/internal/common"
	"github.com/dmitrijs2005/footcap/internal/logging"
)

// WishlistService is the logged-in shopper's wishlist. Entries are keyed by
// models.WishlistID of the product name and carry no quantity.
type WishlistService interface {
	// AddItem reports whether p was added; an existing entry is left as is.
	AddItem(ctx context.Context, p models.Product) (bool, error)
	// Toggle adds p when absent and removes it when present, returning the
	// resulting membership.
	Toggle(ctx context.Context, p models.Product) (bool, error)
	RemoveItem(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Reload(ctx context.Context) error

	Contains(p models.Product) bool
	Entries() []models.WishlistEntry
	Count() int

	Watch(fn func())
}

type wishlistService struct {
	repo     kv.Repository
	identity IdentityProvider
	log      logging.Logger
	now      func() time.Time

	mu      sync.Mutex
	entries []models.WishlistEntry

	watchers watchers
}

// NewWishlistService builds a WishlistService subscribed to bus the same way
// as the cart.
func NewWishlistService(repo kv.Repository, identity IdentityProvider, bus *events.Bus, log logging.Logger) WishlistService {
	w := &wishlistService{
		repo:     repo,
		identity: identity,
		log:      log.With("component", "wishlist"),
		now:      time.Now,
	}

	bus.Subscribe(func(ctx context.Context, e events.Event) error {
		switch e.(type) {
		case events.UserLoggedIn:
			return w.Reload(ctx)
		case events.UserLoggedOut:
			return w.Clear(ctx)
		}
		return nil
	})
	return w
}

func (w *wishlistService) Watch(fn func()) { w.watchers.add(fn) }

func (w *wishlistService) Entries() []models.WishlistEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.entries)
}

func (w *wishlistService) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

func (w *wishlistService) Contains(p models.Product) bool {
	id := models.WishlistID(p.Name)
	w.mu.Lock()
	defer w.mu.Unlock()
	return indexOf(w.entries, id) >= 0
}

func (w *wishlistService) AddItem(ctx context.Context, p models.Product) (bool, error) {
	added := false
	err := w.mutate(ctx, func(entries []models.WishlistEntry) ([]models.WishlistEntry, bool) {
		if indexOf(entries, models.WishlistID(p.Name)) >= 0 {
			return entries, false
		}
		added = true
		return append(entries, w.entryFor(p)), true
	})
	return added, err
}

func (w *wishlistService) Toggle(ctx context.Context, p models.Product) (bool, error) {
	in := false
	err := w.mutate(ctx, func(entries []models.WishlistEntry) ([]models.WishlistEntry, bool) {
		if i := indexOf(entries, models.WishlistID(p.Name)); i >= 0 {
			return slices.Delete(entries, i, i+1), true
		}
		in = true
		return append(entries, w.entryFor(p)), true
	})
	if err != nil {
		return false, err
	}
	return in, nil
}

func (w *wishlistService) RemoveItem(ctx context.Context, id string) error {
	return w.mutate(ctx, func(entries []models.WishlistEntry) ([]models.WishlistEntry, bool) {
		i := indexOf(entries, id)
		if i < 0 {
			return entries, false
		}
		return slices.Delete(entries, i, i+1), true
	})
}

func (w *wishlistService) Clear(ctx context.Context) error {
	w.mu.Lock()
	if u, ok := w.identity.CurrentUser(); ok {
		if err := saveJSON(ctx, w.repo, WishlistKey(u.ID), []models.WishlistEntry{}); err != nil {
			w.mu.Unlock()
			return fmt.Errorf("save wishlist error: %w", err)
		}
	}
	w.entries = nil
	w.mu.Unlock()

	w.watchers.notify()
	return nil
}

func (w *wishlistService) Reload(ctx context.Context) error {
	var (
		entries []models.WishlistEntry
		err     error
	)
	if u, ok := w.identity.CurrentUser(); ok {
		entries, err = loadList[models.WishlistEntry](ctx, w.repo, w.log, WishlistKey(u.ID))
		if err != nil {
			err = fmt.Errorf("load wishlist error: %w", err)
		}
	}

	w.mu.Lock()
	w.entries = entries
	w.mu.Unlock()

	w.watchers.notify()
	return err
}

func (w *wishlistService) entryFor(p models.Product) models.WishlistEntry {
	return models.WishlistEntry{
		ID:      models.WishlistID(p.Name),
		Name:    p.Name,
		Price:   p.Price,
		Image:   p.Image,
		Badge:   p.Badge,
		AddedAt: w.now().UTC(),
	}
}

func (w *wishlistService) mutate(ctx context.Context, fn func([]models.WishlistEntry) ([]models.WishlistEntry, bool)) error {
	u, ok := w.identity.CurrentUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	w.mu.Lock()
	next, changed := fn(slices.Clone(w.entries))
	if !changed {
		w.mu.Unlock()
		return nil
	}
	if next == nil {
		next = []models.WishlistEntry{}
	}
	if err := saveJSON(ctx, w.repo, WishlistKey(u.ID), next); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("save wishlist error: %w", err)
	}
	w.entries = next
	w.mu.Unlock()

	w.watchers.notify()
	return nil
}

func indexOf(entries []models.WishlistEntry, id string) int {
	return slices.IndexFunc(entries, func(e models.WishlistEntry) bool { return e.ID == id })
}
