package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/footcap/internal/client/catalog"
	"github.com/dmitrijs2005/footcap/internal/client/config"
	"github.com/dmitrijs2005/footcap/internal/client/events"
	"github.com/dmitrijs2005/footcap/internal/client/repositories/kv"
	"github.com/dmitrijs2005/footcap/internal/client/services"
	"github.com/dmitrijs2005/footcap/internal/client/storage"
	"github.com/dmitrijs2005/footcap/internal/client/ui"
	"github.com/dmitrijs2005/footcap/internal/logging"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	identity services.IdentityService
	shop     *ui.Shop
	reader   *bufio.Reader
	out      io.Writer
	closeFn  func() error
}

// NewApp opens the configured storage, restores any persisted session and
// prepares the storefront on stdin/stdout.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := storage.Open(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening storage", "backend", c.StorageBackend, "error", err)
		return nil, err
	}

	cat, err := catalog.Load(c.CatalogPath)
	if err != nil {
		store.Close()
		return nil, err
	}

	app, err := newApp(ctx, c, store.KV, cat, log, ui.TimerScheduler{}, os.Stdin, os.Stdout)
	if err != nil {
		store.Close()
		return nil, err
	}
	app.closeFn = store.Close
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, repo kv.Repository, cat *catalog.Catalog,
	log logging.Logger, sched ui.Scheduler, in io.Reader, out io.Writer) (*App, error) {

	bus := events.NewBus()
	identity := services.NewIdentityService(repo, bus, log, c.SessionTTL)
	cart := services.NewCartService(repo, identity, bus, log)
	wishlist := services.NewWishlistService(repo, identity, bus, log)
	checkout := services.NewCheckoutService(repo, identity, cart, log)

	shop := ui.NewShop(ui.Services{
		Identity: identity,
		Cart:     cart,
		Wishlist: wishlist,
		Checkout: checkout,
	}, cat, bus, log, ui.Options{
		Scheduler:       sched,
		ModalCloseDelay: c.ModalCloseDelay,
		NotificationTTL: c.NotificationTTL,
		Locale:          c.Locale,
		CurrencySymbol:  c.CurrencySymbol,
	})

	shop.Notifier().OnShow(func(n ui.Notification) {
		fmt.Fprintf(out, "(%s) %s\n", n.Kind, n.Message)
	})

	if err := identity.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	return &App{
		config:   c,
		log:      log,
		identity: identity,
		shop:     shop,
		reader:   bufio.NewReader(in),
		out:      out,
	}, nil
}

// Run starts the REPL and releases storage when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to Footcap (type 'help' for commands)")
	if u, ok := a.identity.CurrentUser(); ok {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	err := a.closeFn()
	a.closeFn = nil
	return err
}

func (a *App) isLoggedIn() bool {
	return a.identity.IsLoggedIn()
}

func (a *App) getStatus() string {
	if u, ok := a.identity.CurrentUser(); ok {
		return fmt.Sprintf("(%s)", u.Name)
	}
	return ""
}

// followUp continues with whatever dialog the last command opened.
func (a *App) followUp(ctx context.Context) {
	if m := a.shop.Modal(); m.IsOpen() && !m.Closing() {
		a.authDialog(ctx)
	}
	if a.shop.CheckoutOpen() {
		a.checkoutDialog(ctx)
	}
}
