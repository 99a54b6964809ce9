package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWishlistID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Running Sneaker Shoes", "wishlist_running-sneaker-shoes"},
		{"  Leather Mens Slipper ", "wishlist_leather-mens-slipper"},
		{"Simple Fabric Shoe!!", "wishlist_simple-fabric-shoe"},
		{"Air Jordan 7 Retro", "wishlist_air-jordan-7-retro"},
		{"Кеды", "wishlist_кеды"},
		{"Туфли Classic", "wishlist_туфли-classic"},
		{"Café Crème", "wishlist_café-crème"},
		{"ランニング 2", "wishlist_ランニング-2"},
		{"", "wishlist_"},
		{"!!!", "wishlist_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WishlistID(tt.name))
		})
	}
}

func TestWishlistID_DistinctScriptsDoNotCollide(t *testing.T) {
	assert.NotEqual(t, WishlistID("Кеды"), WishlistID("Туфли"))
	assert.True(t, HasWishlistID("Кеды"))
	assert.False(t, HasWishlistID("  -- "))
}

func TestWishlistID_PunctuationVariantsShareID(t *testing.T) {
	assert.Equal(t, WishlistID("Air Max 90"), WishlistID("Air-Max 90!"))
}

func TestCartLine_Matches(t *testing.T) {
	line := CartLine{Name: "Runner", Price: 1999, Quantity: 1}

	assert.True(t, line.Matches(Product{ID: "p-9", Name: "Runner", Price: 1999}))
	assert.False(t, line.Matches(Product{Name: "Runner", Price: 2099}))
	assert.False(t, line.Matches(Product{Name: "Walker", Price: 1999}))
}

func TestSummarize(t *testing.T) {
	lines := []CartLine{
		{Name: "Runner", Price: 1999, Quantity: 2},
		{Name: "Slipper", Price: 499.5, Quantity: 1},
	}
	s := Summarize(lines)
	assert.Equal(t, 3, s.TotalItems)
	assert.InDelta(t, 4497.5, s.TotalPrice, 1e-9)

	assert.Equal(t, CartSummary{}, Summarize(nil))
}

func TestUser_PublicDropsHash(t *testing.T) {
	u := User{ID: "u1", Email: "a@x.com", PasswordHash: "argon2id$a$b"}
	p := u.Public()
	assert.Empty(t, p.PasswordHash)
	assert.Equal(t, "argon2id$a$b", u.PasswordHash)
	assert.Equal(t, "u1", p.ID)
}

func TestPaymentMethod(t *testing.T) {
	assert.True(t, PaymentCOD.Valid())
	assert.Equal(t, "Google Pay", PaymentGPay.DisplayName())
	assert.False(t, PaymentMethod("bitcoin").Valid())
	assert.Equal(t, "bitcoin", PaymentMethod("bitcoin").DisplayName())
}
