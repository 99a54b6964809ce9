package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/footcap/internal/client/catalog"
	"github.com/dmitrijs2005/footcap/internal/client/events"
	"github.com/dmitrijs2005/footcap/internal/client/models"
	"github.com/dmitrijs2005/footcap/internal/client/services"
	"github.com/dmitrijs2005/footcap/internal/common"
	"github.com/dmitrijs2005/footcap/internal/logging"
)

// Services are the application services the Shop drives.
type Services struct {
	Identity services.IdentityService
	Cart     services.CartService
	Wishlist services.WishlistService
	Checkout services.CheckoutService
}

type Options struct {
	Scheduler       Scheduler
	ModalCloseDelay time.Duration
	NotificationTTL time.Duration
	Locale          string
	CurrencySymbol  string
}

// Shop is the storefront screen. Its Submit*, Click and other exported
// actions are the form boundary: every failure becomes a notification and
// is reported to the caller only as ok=false.
type Shop struct {
	svc     Services
	catalog *catalog.Catalog
	log     logging.Logger

	doc      *Document
	binder   *Binder
	modal    *AuthModal
	notifier *Notifier
	format   *Formatter

	mu           sync.Mutex
	cartOpen     bool
	wishlistOpen bool
	checkoutOpen bool
}

// NewShop renders the initial document, binds its controls and keeps it in
// sync with the services. It must be created after the cart and wishlist so
// that it renders after they have reacted to identity events.
func NewShop(svc Services, cat *catalog.Catalog, bus *events.Bus, log logging.Logger, opts Options) *Shop {
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler{}
	}

	modal := NewAuthModal(opts.Scheduler, opts.ModalCloseDelay)
	s := &Shop{
		svc:      svc,
		catalog:  cat,
		log:      log.With("component", "shop"),
		doc:      NewDocument(),
		binder:   NewBinder(svc.Identity, modal),
		modal:    modal,
		notifier: NewNotifier(opts.Scheduler, opts.NotificationTTL),
		format:   NewFormatter(opts.Locale, opts.CurrencySymbol),
	}
	s.registerHandlers()

	svc.Cart.Watch(s.Render)
	svc.Wishlist.Watch(s.Render)
	bus.Subscribe(func(_ context.Context, e events.Event) error {
		if _, out := e.(events.UserLoggedOut); out {
			s.mu.Lock()
			s.cartOpen, s.wishlistOpen, s.checkoutOpen = false, false, false
			s.mu.Unlock()
		}
		s.Render()
		return nil
	})

	s.Render()
	s.binder.Observe(s.doc)
	return s
}

func (s *Shop) Document() *Document   { return s.doc }
func (s *Shop) Binder() *Binder       { return s.binder }
func (s *Shop) Modal() *AuthModal     { return s.modal }
func (s *Shop) Notifier() *Notifier   { return s.notifier }
func (s *Shop) Formatter() *Formatter { return s.format }

func (s *Shop) Catalog() *catalog.Catalog { return s.catalog }

func (s *Shop) CartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartOpen
}

func (s *Shop) WishlistOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlistOpen
}

// CheckoutOpen reports whether the checkout form is waiting to be submitted.
func (s *Shop) CheckoutOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkoutOpen
}

func (s *Shop) registerHandlers() {
	b := s.binder

	b.HandleGuarded(KindAddToCart, func(ctx context.Context, n Node) error {
		p, err := s.catalog.ByID(n.Ref)
		if err != nil {
			return err
		}
		if _, err := s.svc.Cart.AddItem(ctx, p); err != nil {
			return err
		}
		s.notifier.Show(NotifySuccess, fmt.Sprintf("%s added to cart!", p.Name))
		return nil
	})

	b.HandleGuarded(KindWishlistToggle, func(ctx context.Context, n Node) error {
		p, err := s.catalog.ByID(n.Ref)
		if err != nil {
			return err
		}
		in, err := s.svc.Wishlist.Toggle(ctx, p)
		if err != nil {
			return err
		}
		if in {
			s.notifier.Show(NotifyAdd, fmt.Sprintf("%s added to wishlist!", p.Name))
		} else {
			s.notifier.Show(NotifyRemove, fmt.Sprintf("%s removed from wishlist!", p.Name))
		}
		return nil
	})

	b.Handle(KindLogout, func(ctx context.Context, _ Node) error {
		return s.logOut(ctx)
	})

	b.Handle(KindOpenAuth, func(context.Context, Node) error {
		s.modal.Open()
		return nil
	})

	b.HandleGuarded(KindOpenCart, func(context.Context, Node) error {
		s.mu.Lock()
		s.cartOpen, s.wishlistOpen = true, false
		s.mu.Unlock()
		return nil
	})

	b.HandleGuarded(KindOpenWishlist, func(context.Context, Node) error {
		if s.svc.Wishlist.Count() == 0 {
			s.notifier.Show(NotifyInfo, "Your wishlist is empty!")
			return nil
		}
		s.mu.Lock()
		s.wishlistOpen, s.cartOpen = true, false
		s.mu.Unlock()
		return nil
	})

	b.Handle(KindModalClose, func(_ context.Context, n Node) error {
		switch n.Ref {
		case "auth":
			s.modal.Close()
		default:
			s.mu.Lock()
			switch n.Ref {
			case "cart":
				s.cartOpen = false
			case "wishlist":
				s.wishlistOpen = false
			}
			s.mu.Unlock()
		}
		return nil
	})

	b.Handle(KindAuthTab, func(_ context.Context, n Node) error {
		return s.modal.SelectTab(ModalState(n.Ref))
	})

	step := func(delta int) Handler {
		return func(ctx context.Context, n Node) error {
			l, err := s.lineByID(n.Ref)
			if err != nil {
				return err
			}
			return s.svc.Cart.SetQuantity(ctx, l.ID, l.Quantity+delta)
		}
	}
	b.HandleGuarded(KindQtyDec, step(-1))
	b.HandleGuarded(KindQtyInc, step(+1))

	b.HandleGuarded(KindCartRemove, func(ctx context.Context, n Node) error {
		l, err := s.lineByID(n.Ref)
		if err != nil {
			return err
		}
		if err := s.svc.Cart.RemoveItem(ctx, l.ID); err != nil {
			return err
		}
		s.notifier.Show(NotifyRemove, fmt.Sprintf("%s removed from cart", l.Name))
		return nil
	})

	b.HandleGuarded(KindWishlistRemove, func(ctx context.Context, n Node) error {
		name := n.Ref
		for _, e := range s.svc.Wishlist.Entries() {
			if e.ID == n.Ref {
				name = e.Name
			}
		}
		if err := s.svc.Wishlist.RemoveItem(ctx, n.Ref); err != nil {
			return err
		}
		s.notifier.Show(NotifyRemove, fmt.Sprintf("%s removed from wishlist!", name))
		return nil
	})

	b.HandleGuarded(KindCheckout, func(context.Context, Node) error {
		if len(s.svc.Cart.Lines()) == 0 {
			return common.ErrEmptyCart
		}
		s.mu.Lock()
		s.cartOpen, s.checkoutOpen = false, true
		s.mu.Unlock()
		return nil
	})
}

func (s *Shop) lineByID(id string) (models.CartLine, error) {
	for _, l := range s.svc.Cart.Lines() {
		if l.ID == id {
			return l, nil
		}
	}
	return models.CartLine{}, fmt.Errorf("cart line %q: %w", id, common.ErrNotFound)
}

func (s *Shop) logOut(ctx context.Context) error {
	if !s.svc.Identity.IsLoggedIn() {
		s.notifier.Show(NotifyInfo, "You are not logged in")
		return nil
	}
	if err := s.svc.Identity.LogOut(ctx); err != nil {
		return err
	}
	s.notifier.Show(NotifySuccess, "Logged out successfully")
	return nil
}

// Click presses the control with the given id.
func (s *Shop) Click(ctx context.Context, id string) bool {
	err := s.binder.Click(ctx, id)
	s.Render()
	if err != nil {
		if errors.Is(err, ErrNotBound) {
			s.notifier.Show(NotifyError, fmt.Sprintf("Unknown control %q", id))
			return false
		}
		s.fail(ctx, "click", err)
		return false
	}
	return true
}

func (s *Shop) SubmitSignup(ctx context.Context, name, email string, password []byte) bool {
	s.modal.Remember(AuthForm{Name: name, Email: email})

	if _, err := s.svc.Identity.SignUp(ctx, name, email, password); err != nil {
		s.fail(ctx, "signup", err)
		return false
	}
	s.modal.Close()
	s.notifier.Show(NotifySuccess, "Account created successfully!")
	return true
}

func (s *Shop) SubmitLogin(ctx context.Context, email string, password []byte) bool {
	s.modal.Remember(AuthForm{Email: email})

	if _, err := s.svc.Identity.LogIn(ctx, email, password); err != nil {
		s.fail(ctx, "login", err)
		return false
	}
	s.modal.Close()
	s.notifier.Show(NotifySuccess, "Login successful!")
	return true
}

func (s *Shop) LogOut(ctx context.Context) bool {
	if err := s.logOut(ctx); err != nil {
		s.fail(ctx, "logout", err)
		return false
	}
	return true
}

// SubmitCheckout places the order for the current cart.
func (s *Shop) SubmitCheckout(ctx context.Context, customer models.Customer, method models.PaymentMethod) (*models.Order, bool) {
	order, err := s.svc.Checkout.PlaceOrder(ctx, customer, method)
	if err != nil && order == nil {
		s.fail(ctx, "checkout", err)
		return nil, false
	}
	if err != nil {
		s.log.Error(ctx, "post-order cleanup failed", "order_id", order.ID, "error", err)
	}

	s.mu.Lock()
	s.checkoutOpen = false
	s.mu.Unlock()

	s.notifier.Show(NotifySuccess, fmt.Sprintf("Order confirmed! Order ID: %s, Total: %s, Payment: %s",
		order.ID, s.format.Price(order.Total), order.PaymentMethod.DisplayName()))
	return order, true
}

// CancelCheckout dismisses the checkout form without placing an order.
func (s *Shop) CancelCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkoutOpen = false
}

// SetQuantity sets the quantity of the cart line shown at 1-based position.
func (s *Shop) SetQuantity(ctx context.Context, position, qty int) bool {
	l, ok := s.lineAt(ctx, position)
	if !ok {
		return false
	}
	if err := s.svc.Cart.SetQuantity(ctx, l.ID, qty); err != nil {
		s.fail(ctx, "set quantity", err)
		return false
	}
	return true
}

// RemoveLine removes the cart line shown at 1-based position.
func (s *Shop) RemoveLine(ctx context.Context, position int) bool {
	l, ok := s.lineAt(ctx, position)
	if !ok {
		return false
	}
	return s.Click(ctx, CartRemoveID(l.ID))
}

func (s *Shop) ClearCart(ctx context.Context) bool {
	if !s.svc.Identity.IsLoggedIn() {
		s.fail(ctx, "clear cart", common.ErrNotLoggedIn)
		return false
	}
	if err := s.svc.Cart.Clear(ctx); err != nil {
		s.fail(ctx, "clear cart", err)
		return false
	}
	s.notifier.Show(NotifyInfo, "Cart cleared")
	return true
}

func (s *Shop) Orders(ctx context.Context) ([]models.Order, bool) {
	orders, err := s.svc.Checkout.Orders(ctx)
	if err != nil {
		s.fail(ctx, "orders", err)
		return nil, false
	}
	return orders, true
}

func (s *Shop) lineAt(ctx context.Context, position int) (models.CartLine, bool) {
	if !s.svc.Identity.IsLoggedIn() {
		s.fail(ctx, "cart", common.ErrNotLoggedIn)
		return models.CartLine{}, false
	}
	lines := s.svc.Cart.Lines()
	if position < 1 || position > len(lines) {
		s.fail(ctx, "cart", fmt.Errorf("cart line #%d: %w", position, common.ErrNotFound))
		return models.CartLine{}, false
	}
	return lines[position-1], true
}

// fail turns err into a notification. Unexpected errors are logged and shown
// with a generic text.
func (s *Shop) fail(ctx context.Context, op string, err error) {
	kind, msg := NotifyError, userMessage(err)
	switch {
	case errors.Is(err, common.ErrNotLoggedIn):
		kind = NotifyInfo
		if !s.modal.IsOpen() {
			s.modal.Open()
		}
	case msg == "":
		s.log.Error(ctx, op+" failed", "error", err)
		msg = "Something went wrong, please try again"
	default:
		s.log.Debug(ctx, op+" rejected", "error", err)
	}
	s.notifier.Show(kind, msg)
}

// userMessage returns the text shown for expected errors, or "" for
// everything else.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrConflict):
		return "User with this email already exists"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, common.ErrNotLoggedIn):
		return "Please sign up or log in to continue"
	case errors.Is(err, common.ErrEmptyCart):
		return "Your cart is empty"
	case errors.Is(err, common.ErrNotFound):
		return "Not found: " + strings.TrimSuffix(err.Error(), ": "+common.ErrNotFound.Error())
	case errors.Is(err, common.ErrValidation):
		return capitalize(strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": "))
	}
	return ""
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
