package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/footcap/internal/client/ui"
	"github.com/dmitrijs2005/footcap/internal/common"
)

// getSimpleText, getTextWithDefault and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
	getPassword        = GetPassword
)

// SignUp opens the auth dialog on the signup tab.
func (a *App) SignUp(ctx context.Context) error {
	if u, ok := a.identity.CurrentUser(); ok {
		fmt.Fprintf(a.out, "Already logged in as %s\n", u.Email)
		return nil
	}
	a.shop.Click(ctx, ui.NavSignupID)
	a.followUp(ctx)
	return nil
}

// Login opens the auth dialog on the login tab.
func (a *App) Login(ctx context.Context) error {
	if u, ok := a.identity.CurrentUser(); ok {
		fmt.Fprintf(a.out, "Already logged in as %s\n", u.Email)
		return nil
	}
	a.shop.Click(ctx, ui.NavSignupID)
	a.shop.Click(ctx, ui.TabLoginID)
	a.followUp(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.shop.LogOut(ctx)
	return nil
}

// authDialog runs the signup/login forms until the modal is dismissed or a
// submit succeeds. Input errors (EOF) close the modal.
func (a *App) authDialog(ctx context.Context) {
	m := a.shop.Modal()
	for m.IsOpen() && !m.Closing() {
		var (
			done bool
			err  error
		)
		if m.State() == ui.ModalLogin {
			done, err = a.loginForm(ctx)
		} else {
			done, err = a.signupForm(ctx)
		}
		if err != nil {
			a.shop.Click(ctx, ui.AuthCloseID)
			return
		}
		if done {
			return
		}
	}
}

// formCommand handles the words that switch tabs or cancel instead of being
// taken as input. It reports whether s was one of them and whether the
// dialog is finished.
func (a *App) formCommand(ctx context.Context, s string) (handled, done bool) {
	switch strings.ToLower(s) {
	case "", "cancel":
		a.shop.Click(ctx, ui.AuthCloseID)
		return true, true
	case "login":
		a.shop.Click(ctx, ui.TabLoginID)
		return true, false
	case "signup":
		a.shop.Click(ctx, ui.TabSignupID)
		return true, false
	}
	return false, false
}

func (a *App) signupForm(ctx context.Context) (bool, error) {
	fmt.Fprintln(a.out, "== Sign Up ==  (type 'login' to switch tabs, 'cancel' to close)")
	form := a.shop.Modal().Form()

	name, err := getTextWithDefault(a.reader, "Full name", form.Name, a.out)
	if err != nil {
		return true, err
	}
	if handled, done := a.formCommand(ctx, name); handled {
		return done, nil
	}

	email, err := getTextWithDefault(a.reader, "Email", form.Email, a.out)
	if err != nil {
		return true, err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return true, err
	}
	defer common.WipeByteArray(password)

	return a.shop.SubmitSignup(ctx, name, email, password), nil
}

func (a *App) loginForm(ctx context.Context) (bool, error) {
	fmt.Fprintln(a.out, "== Login ==  (type 'signup' to switch tabs, 'cancel' to close)")
	form := a.shop.Modal().Form()

	email, err := getTextWithDefault(a.reader, "Email", form.Email, a.out)
	if err != nil {
		return true, err
	}
	if handled, done := a.formCommand(ctx, email); handled {
		return done, nil
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return true, err
	}
	defer common.WipeByteArray(password)

	return a.shop.SubmitLogin(ctx, email, password), nil
}

// Reset deletes every stored user, cart, wishlist and order after the user
// confirms with "yes".
func (a *App) Reset(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This deletes all footcap users, carts, wishlists and orders. Type 'yes' to continue", a.out)
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "yes" {
		fmt.Fprintln(a.out, "Reset cancelled")
		return nil
	}

	n, err := a.identity.ClearLocalData(ctx)
	if err != nil {
		a.log.Error(ctx, "reset failed", "error", err)
		return err
	}
	fmt.Fprintf(a.out, "Removed %d stored entries\n", n)
	return nil
}
