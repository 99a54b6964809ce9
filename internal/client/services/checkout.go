package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/footcap/internal/client/models"
	"github.com/dmitrijs2005/footcap/internal/client/repositories/kv"
	"github.com/dmitrijs2005/footcap/internal/common"
	"github.com/dmitrijs2005/footcap/internal/logging"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,13}$`)

// CheckoutService turns the current cart into an order.
type CheckoutService interface {
	// PlaceOrder snapshots the cart into a new order, stores it under the
	// user's orders key and then empties the cart.
	PlaceOrder(ctx context.Context, customer models.Customer, method models.PaymentMethod) (*models.Order, error)
	// Orders lists the current user's past orders, oldest first.
	Orders(ctx context.Context) ([]models.Order, error)
}

type checkoutService struct {
	repo     kv.Repository
	identity IdentityProvider
	cart     CartService
	log      logging.Logger
	now      func() time.Time
}

func NewCheckoutService(repo kv.Repository, identity IdentityProvider, cart CartService, log logging.Logger) CheckoutService {
	return &checkoutService{
		repo:     repo,
		identity: identity,
		cart:     cart,
		log:      log.With("component", "checkout"),
		now:      time.Now,
	}
}

// normalizeCustomer trims the form fields and strips spaces and dashes from
// the phone number before validation.
func normalizeCustomer(c models.Customer) models.Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	c.Phone = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(c.Phone))
	return c
}

func validateCustomer(c models.Customer) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	case !phonePattern.MatchString(c.Phone):
		return fmt.Errorf("%w: please enter a valid phone number", common.ErrValidation)
	case c.Address == "":
		return fmt.Errorf("%w: delivery address is required", common.ErrValidation)
	}
	return nil
}

func (s *checkoutService) PlaceOrder(ctx context.Context, customer models.Customer, method models.PaymentMethod) (*models.Order, error) {
	u, ok := s.identity.CurrentUser()
	if !ok {
		return nil, common.ErrNotLoggedIn
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, common.ErrEmptyCart
	}

	customer = normalizeCustomer(customer)
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", common.ErrValidation, method)
	}

	orders, err := loadList[models.Order](ctx, s.repo, s.log, OrdersKey(u.ID))
	if err != nil {
		return nil, fmt.Errorf("load orders error: %w", err)
	}

	now := s.now()
	order := models.Order{
		ID:            nextOrderID(now, orders),
		Customer:      customer,
		PaymentMethod: method,
		Items:         lines,
		Total:         models.Summarize(lines).TotalPrice,
		OrderDate:     now.UTC(),
	}

	if err := saveJSON(ctx, s.repo, OrdersKey(u.ID), append(orders, order)); err != nil {
		return nil, fmt.Errorf("save order error: %w", err)
	}
	s.log.Info(ctx, "order placed", "user_id", u.ID, "order_id", order.ID, "total", order.Total)

	if err := s.cart.Clear(ctx); err != nil {
		return &order, fmt.Errorf("order %s placed but cart not cleared: %w", order.ID, err)
	}
	return &order, nil
}

// nextOrderID is ORD<unix millis>, with a -2, -3, ... suffix when an earlier
// order of the same user already took that id.
func nextOrderID(now time.Time, orders []models.Order) string {
	base := fmt.Sprintf("ORD%d", now.UnixMilli())
	taken := make(map[string]bool, len(orders))
	for _, o := range orders {
		taken[o.ID] = true
	}
	id := base
	for n := 2; taken[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func (s *checkoutService) Orders(ctx context.Context) ([]models.Order, error) {
	u, ok := s.identity.CurrentUser()
	if !ok {
		return nil, common.ErrNotLoggedIn
	}
	orders, err := loadList[models.Order](ctx, s.repo, s.log, OrdersKey(u.ID))
	if err != nil {
		return nil, fmt.Errorf("load orders error: %w", err)
	}
	return orders, nil
}
