package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/footcap/internal/client/events"
	"github.com/dmitrijs2005/footcap/internal/client/models"
	"github.com/dmitrijs2005/footcap/internal/client/repositories/kv"
	"github.com/dmitrijs2005/footcap/internal/common"
	"github.com/dmitrijs2005/footcap/internal/logging"
	"github.com/google/uuid"
)

// CartService is the logged-in shopper's cart.
//
// Every mutation persists the new line set under the user's cart key before
// committing it in memory and re-rendering. Mutations other than Clear return
// common.ErrNotLoggedIn when there is no session.
type CartService interface {
	// AddItem merges p into the line with the same name and price, or starts a
	// new line with quantity 1. It returns the resulting line.
	AddItem(ctx context.Context, p models.Product) (models.CartLine, error)
	// RemoveItem drops the line; unknown ids are ignored.
	RemoveItem(ctx context.Context, lineID string) error
	// SetQuantity sets a line's quantity; qty <= 0 removes the line.
	SetQuantity(ctx context.Context, lineID string, qty int) error
	// Clear empties the cart, persisting the empty cart only when a session
	// exists.
	Clear(ctx context.Context) error
	// Reload replaces the in-memory cart with the current user's stored one.
	Reload(ctx context.Context) error

	Lines() []models.CartLine
	Summary() models.CartSummary

	// Watch registers fn to be called after every state change.
	Watch(fn func())
}

type cartService struct {
	repo     kv.Repository
	identity IdentityProvider
	log      logging.Logger

	mu    sync.Mutex
	lines []models.CartLine

	watchers watchers
}

// NewCartService builds a CartService and subscribes it to bus: login events
// reload the cart, logout events clear it.
func NewCartService(repo kv.Repository, identity IdentityProvider, bus *events.Bus, log logging.Logger) CartService {
	c := &cartService{
		repo:     repo,
		identity: identity,
		log:      log.With("component", "cart"),
	}

	bus.Subscribe(func(ctx context.Context, e events.Event) error {
		switch e.(type) {
		case events.UserLoggedIn:
			return c.Reload(ctx)
		case events.UserLoggedOut:
			return c.Clear(ctx)
		}
		return nil
	})
	return c
}

func (c *cartService) Watch(fn func()) { c.watchers.add(fn) }

func (c *cartService) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.lines)
}

func (c *cartService) Summary() models.CartSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.Summarize(c.lines)
}

func (c *cartService) AddItem(ctx context.Context, p models.Product) (models.CartLine, error) {
	var result models.CartLine

	err := c.mutate(ctx, func(lines []models.CartLine) ([]models.CartLine, bool) {
		for i := range lines {
			if lines[i].Matches(p) {
				lines[i].Quantity++
				result = lines[i]
				return lines, true
			}
		}
		result = models.CartLine{
			ID:       uuid.NewString(),
			Name:     p.Name,
			Price:    p.Price,
			Image:    p.Image,
			Badge:    p.Badge,
			Quantity: 1,
		}
		return append(lines, result), true
	})
	if err != nil {
		return models.CartLine{}, err
	}
	return result, nil
}

func (c *cartService) RemoveItem(ctx context.Context, lineID string) error {
	return c.mutate(ctx, func(lines []models.CartLine) ([]models.CartLine, bool) {
		next := slices.DeleteFunc(lines, func(l models.CartLine) bool { return l.ID == lineID })
		return next, len(next) != len(lines)
	})
}

func (c *cartService) SetQuantity(ctx context.Context, lineID string, qty int) error {
	if qty <= 0 {
		return c.RemoveItem(ctx, lineID)
	}
	return c.mutate(ctx, func(lines []models.CartLine) ([]models.CartLine, bool) {
		i := slices.IndexFunc(lines, func(l models.CartLine) bool { return l.ID == lineID })
		if i < 0 || lines[i].Quantity == qty {
			return lines, false
		}
		lines[i].Quantity = qty
		return lines, true
	})
}

func (c *cartService) Clear(ctx context.Context) error {
	c.mu.Lock()
	if u, ok := c.identity.CurrentUser(); ok {
		if err := saveJSON(ctx, c.repo, CartKey(u.ID), []models.CartLine{}); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("save cart error: %w", err)
		}
	}
	c.lines = nil
	c.mu.Unlock()

	c.watchers.notify()
	return nil
}

func (c *cartService) Reload(ctx context.Context) error {
	var (
		lines []models.CartLine
		err   error
	)
	if u, ok := c.identity.CurrentUser(); ok {
		lines, err = loadList[models.CartLine](ctx, c.repo, c.log, CartKey(u.ID))
		if err != nil {
			err = fmt.Errorf("load cart error: %w", err)
		}
	}

	c.mu.Lock()
	c.lines = lines
	c.mu.Unlock()

	c.watchers.notify()
	return err
}

// mutate applies fn to a copy of the lines and commits the result once it is
// persisted. fn reports whether it changed anything; unchanged results are
// neither persisted nor rendered.
func (c *cartService) mutate(ctx context.Context, fn func([]models.CartLine) ([]models.CartLine, bool)) error {
	u, ok := c.identity.CurrentUser()
	if !ok {
		return common.ErrNotLoggedIn
	}

	c.mu.Lock()
	next, changed := fn(slices.Clone(c.lines))
	if !changed {
		c.mu.Unlock()
		return nil
	}
	if next == nil {
		next = []models.CartLine{}
	}
	if err := saveJSON(ctx, c.repo, CartKey(u.ID), next); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("save cart error: %w", err)
	}
	c.lines = next
	c.mu.Unlock()

	c.watchers.notify()
	return nil
}
