package models

import (
	"strings"
	"unicode"
)

// Product is one card of the storefront catalog.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Badge string  `json:"badge,omitempty"`
}

const wishlistIDPrefix = "wishlist_"

// WishlistID derives the wishlist identity of a product from its name, so the
// same product toggles the same entry no matter which card it was clicked on.
// Letters and digits of any script are kept; every run of other characters
// becomes a single dash. Names that differ only in punctuation or spacing
// share an id, so a catalog must not contain two of them (see catalog.Parse).
func WishlistID(name string) string {
	var b strings.Builder
	b.WriteString(wishlistIDPrefix)
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > len(wishlistIDPrefix):
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// HasWishlistID reports whether name yields a usable wishlist id, that is,
// it contains at least one letter or digit.
func HasWishlistID(name string) bool {
	return WishlistID(name) != wishlistIDPrefix
}
