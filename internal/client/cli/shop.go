package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/footcap/internal/client/ui"
)

func (a *App) WhoAmI(ctx context.Context) error {
	fmt.Fprintln(a.out, a.shop.NavView())
	if u, ok := a.identity.CurrentUser(); ok {
		fmt.Fprintf(a.out, "Logged in as %s <%s>\n", u.Name, u.Email)
	}
	return nil
}

func (a *App) Catalog(ctx context.Context) error {
	fmt.Fprintln(a.out, a.shop.CatalogView())
	return nil
}

// Click presses any control shown in brackets, then shows the open panel and
// continues with whatever dialog the control opened.
func (a *App) Click(ctx context.Context, control string) error {
	a.shop.Click(ctx, control)

	if a.shop.CartOpen() {
		fmt.Fprintln(a.out, a.shop.CartView())
	}
	if a.shop.WishlistOpen() {
		fmt.Fprintln(a.out, a.shop.WishlistView())
	}
	a.followUp(ctx)
	return nil
}

func (a *App) productControl(n int, id func(string) string) (string, bool) {
	p, err := a.shop.Catalog().At(n)
	if err != nil {
		printlnFn(fmt.Sprintf("No product #%d (1-%d)", n, a.shop.Catalog().Len()))
		return "", false
	}
	return id(p.ID), true
}

func (a *App) Add(ctx context.Context, n int) error {
	if id, ok := a.productControl(n, ui.AddControlID); ok {
		return a.Click(ctx, id)
	}
	return nil
}

func (a *App) Wish(ctx context.Context, n int) error {
	if id, ok := a.productControl(n, ui.HeartControlID); ok {
		return a.Click(ctx, id)
	}
	return nil
}

func (a *App) Cart(ctx context.Context) error {
	return a.Click(ctx, ui.NavCartID)
}

func (a *App) Qty(ctx context.Context, line, qty int) error {
	if a.shop.SetQuantity(ctx, line, qty) {
		fmt.Fprintln(a.out, a.shop.CartView())
	}
	a.followUp(ctx)
	return nil
}

func (a *App) Remove(ctx context.Context, line int) error {
	if a.shop.RemoveLine(ctx, line) {
		fmt.Fprintln(a.out, a.shop.CartView())
	}
	a.followUp(ctx)
	return nil
}

func (a *App) ClearCart(ctx context.Context) error {
	a.shop.ClearCart(ctx)
	a.followUp(ctx)
	return nil
}

func (a *App) Wishlist(ctx context.Context) error {
	return a.Click(ctx, ui.NavWishlistID)
}

func (a *App) Unwish(ctx context.Context, id string) error {
	return a.Click(ctx, ui.UnwishID(id))
}
