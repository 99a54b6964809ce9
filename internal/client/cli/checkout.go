package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/footcap/internal/client/models"
	"github.com/dmitrijs2005/footcap/internal/client/ui"
)

var paymentChoices = []models.PaymentMethod{
	models.PaymentPaytm,
	models.PaymentGPay,
	models.PaymentPhonePe,
	models.PaymentCOD,
}

// Checkout opens the checkout form for the current cart.
func (a *App) Checkout(ctx context.Context) error {
	if !a.shop.CheckoutOpen() {
		a.shop.Click(ctx, ui.CheckoutID)
	}
	a.followUp(ctx)
	return nil
}

func (a *App) checkoutDialog(ctx context.Context) {
	fmt.Fprintln(a.out, "== Checkout ==  (leave the name empty to cancel)")
	fmt.Fprintln(a.out, a.shop.CartView())

	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil || name == "" {
		a.shop.CancelCheckout()
		return
	}
	phone, err := getSimpleText(a.reader, "Phone number", a.out)
	if err != nil {
		a.shop.CancelCheckout()
		return
	}
	address, err := getSimpleText(a.reader, "Delivery address", a.out)
	if err != nil {
		a.shop.CancelCheckout()
		return
	}

	var b strings.Builder
	b.WriteString("Payment method:")
	for i, m := range paymentChoices {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, m.DisplayName())
	}
	choice, err := getSimpleText(a.reader, b.String(), a.out)
	if err != nil {
		a.shop.CancelCheckout()
		return
	}

	order, ok := a.shop.SubmitCheckout(ctx, models.Customer{Name: name, Phone: phone, Address: address}, parsePayment(choice))
	if !ok {
		fmt.Fprintln(a.out, "Type 'checkout' to try again.")
		return
	}

	fmt.Fprintf(a.out, "Order Confirmed!\nOrder ID: %s\nTotal: %s\nPayment: %s\n\nYour order will be delivered to:\n%s\n\nThank you for shopping with Footcap!\n",
		order.ID, a.shop.Formatter().Price(order.Total), order.PaymentMethod.DisplayName(), order.Customer.Address)
}

// parsePayment accepts a menu number or a method code such as "gpay".
func parsePayment(s string) models.PaymentMethod {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(paymentChoices) {
		return paymentChoices[n-1]
	}
	return models.PaymentMethod(s)
}

func (a *App) Orders(ctx context.Context) error {
	orders, ok := a.shop.Orders(ctx)
	if !ok {
		a.followUp(ctx)
		return nil
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet")
		return nil
	}
	f := a.shop.Formatter()
	for _, o := range orders {
		fmt.Fprintf(a.out, "%s  %s  %d items  %s  %s\n",
			o.ID, o.OrderDate.Local().Format("2006-01-02 15:04"), models.Summarize(o.Items).TotalItems,
			f.Price(o.Total), o.PaymentMethod.DisplayName())
	}
	return nil
}
