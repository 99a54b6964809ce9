package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/footcap/internal/client/events"
	"github.com/dmitrijs2005/footcap/internal/client/models"
	"github.com/dmitrijs2005/footcap/internal/client/repositories/kv"
	"github.com/dmitrijs2005/footcap/internal/logging"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// flakyRepo wraps a repository and fails writes while failWrites is set.
type flakyRepo struct {
	kv.Repository
	failWrites bool
}

func (r *flakyRepo) Set(ctx context.Context, key string, value []byte) error {
	if r.failWrites {
		return errDiskFull
	}
	return r.Repository.Set(ctx, key, value)
}

func (r *flakyRepo) SetMany(ctx context.Context, entries ...kv.Entry) error {
	if r.failWrites {
		return errDiskFull
	}
	return r.Repository.SetMany(ctx, entries...)
}

func (r *flakyRepo) Clear(ctx context.Context) error {
	if r.failWrites {
		return errDiskFull
	}
	return r.Repository.Clear(ctx)
}

type testEnv struct {
	repo     *flakyRepo
	bus      *events.Bus
	identity IdentityService
	cart     CartService
	wishlist WishlistService
	checkout CheckoutService

	published []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithRepo(t, kv.NewMemoryRepository(), time.Hour)
}

// newTestEnvWithRepo wires a fresh set of services over repo, as a restarted
// process would.
func newTestEnvWithRepo(t *testing.T, repo kv.Repository, ttl time.Duration) *testEnv {
	t.Helper()
	log := logging.Discard()

	env := &testEnv{repo: &flakyRepo{Repository: repo}, bus: events.NewBus()}
	env.identity = NewIdentityService(env.repo, env.bus, log, ttl)
	env.cart = NewCartService(env.repo, env.identity, env.bus, log)
	env.wishlist = NewWishlistService(env.repo, env.identity, env.bus, log)
	env.checkout = NewCheckoutService(env.repo, env.identity, env.cart, log)

	env.bus.Subscribe(func(_ context.Context, e events.Event) error {
		env.published = append(env.published, e.Name())
		return nil
	})
	return env
}

func (env *testEnv) signUp(t *testing.T, name, email string) *models.User {
	t.Helper()
	u, err := env.identity.SignUp(context.Background(), name, email, []byte("secret1"))
	require.NoError(t, err)
	return u
}

func (env *testEnv) storedJSON(t *testing.T, key string, v any) bool {
	t.Helper()
	data, err := env.repo.Get(context.Background(), key)
	require.NoError(t, err)
	if data == nil {
		return false
	}
	require.NoError(t, json.Unmarshal(data, v))
	return true
}

var (
	runner = models.Product{ID: "p1", Name: "Running Sneaker Shoes", Price: 1999, Image: "product-1.jpg", Badge: "New"}
	loafer = models.Product{ID: "p2", Name: "Leather Mens Slipper", Price: 1450, Image: "product-2.jpg"}
	boots  = models.Product{ID: "p3", Name: "Simple Fabric Shoe", Price: 999.5, Image: "product-3.jpg", Badge: "-25%"}
)
