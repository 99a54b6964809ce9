package ui

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/footcap/internal/client/models"
)

const (
	SectionNav      = "nav"
	SectionCatalog  = "catalog"
	SectionCart     = "cart"
	SectionWishlist = "wishlist"
	SectionAuth     = "auth"
)

// Control ids. They are stable for the lifetime of what they point at, so a
// control keeps its single handler across renders.
const (
	NavSignupID   = "nav-signup"
	NavLogoutID   = "nav-logout"
	NavCartID     = "nav-cart"
	NavWishlistID = "nav-wishlist"
	CheckoutID    = "checkout"
	AuthCloseID   = "auth-close"
	CartCloseID   = "cart-close"
	WishCloseID   = "wishlist-close"
	TabSignupID   = "tab-signup"
	TabLoginID    = "tab-login"
)

func AddControlID(productID string) string   { return "add-" + productID }
func HeartControlID(productID string) string { return "heart-" + productID }
func QtyDecID(lineID string) string          { return "qty-dec-" + lineID }
func QtyIncID(lineID string) string          { return "qty-inc-" + lineID }
func CartRemoveID(lineID string) string      { return "cart-remove-" + lineID }
func UnwishID(entryID string) string         { return "unwish-" + entryID }

// Render rebuilds every section of the document from current service state.
func (s *Shop) Render() {
	s.doc.Replace(SectionNav, s.navNodes()...)
	s.doc.Replace(SectionCatalog, s.catalogNodes()...)
	s.doc.Replace(SectionCart, s.cartNodes()...)
	s.doc.Replace(SectionWishlist, s.wishlistNodes()...)
	s.doc.Replace(SectionAuth,
		Node{ID: AuthCloseID, Kind: KindModalClose, Ref: "auth", Label: "Close"},
		Node{ID: TabSignupID, Kind: KindAuthTab, Ref: string(ModalSignup), Label: "Sign Up"},
		Node{ID: TabLoginID, Kind: KindAuthTab, Ref: string(ModalLogin), Label: "Login"},
	)
}

func (s *Shop) navNodes() []Node {
	wish := Node{ID: NavWishlistID, Kind: KindOpenWishlist, Label: "Wishlist", Badge: s.svc.Wishlist.Count()}

	if _, ok := s.svc.Identity.CurrentUser(); !ok {
		return []Node{
			{ID: NavSignupID, Kind: KindOpenAuth, Label: "Sign Up"},
			wish,
		}
	}
	return []Node{
		{ID: NavCartID, Kind: KindOpenCart, Label: "Cart", Badge: s.svc.Cart.Summary().TotalItems},
		wish,
		{ID: NavLogoutID, Kind: KindLogout, Label: "Logout"},
	}
}

func (s *Shop) catalogNodes() []Node {
	products := s.catalog.Products()
	nodes := make([]Node, 0, 2*len(products))
	for _, p := range products {
		nodes = append(nodes,
			Node{ID: AddControlID(p.ID), Kind: KindAddToCart, Ref: p.ID, Label: "Add to cart"},
			Node{ID: HeartControlID(p.ID), Kind: KindWishlistToggle, Ref: p.ID, Label: "Wishlist", Active: s.svc.Wishlist.Contains(p)},
		)
	}
	return nodes
}

func (s *Shop) cartNodes() []Node {
	lines := s.svc.Cart.Lines()
	nodes := []Node{{ID: CartCloseID, Kind: KindModalClose, Ref: "cart", Label: "Close"}}
	for _, l := range lines {
		nodes = append(nodes,
			Node{ID: QtyDecID(l.ID), Kind: KindQtyDec, Ref: l.ID, Label: "-"},
			Node{ID: QtyIncID(l.ID), Kind: KindQtyInc, Ref: l.ID, Label: "+"},
			Node{ID: CartRemoveID(l.ID), Kind: KindCartRemove, Ref: l.ID, Label: "Remove"},
		)
	}
	return append(nodes, Node{ID: CheckoutID, Kind: KindCheckout, Label: "Checkout"})
}

func (s *Shop) wishlistNodes() []Node {
	nodes := []Node{{ID: WishCloseID, Kind: KindModalClose, Ref: "wishlist", Label: "Close"}}
	for _, e := range s.svc.Wishlist.Entries() {
		nodes = append(nodes, Node{ID: UnwishID(e.ID), Kind: KindWishlistRemove, Ref: e.ID, Label: "Remove"})
	}
	return nodes
}

func control(n Node) string {
	label := n.Label
	if n.Badge > 0 {
		label = fmt.Sprintf("%s (%d)", label, n.Badge)
	}
	return fmt.Sprintf("[%s] %s", n.ID, label)
}

func heart(active bool) string {
	if active {
		return "♥"
	}
	return "♡"
}

// NavView is the header line: greeting and navigation controls.
func (s *Shop) NavView() string {
	var parts []string
	if u, ok := s.svc.Identity.CurrentUser(); ok {
		parts = append(parts, "Welcome, "+u.Name)
	}
	for _, n := range s.doc.Section(SectionNav) {
		parts = append(parts, control(n))
	}
	return strings.Join(parts, "  |  ")
}

// CatalogView lists the product cards with their controls.
func (s *Shop) CatalogView() string {
	var b strings.Builder
	for i, p := range s.catalog.Products() {
		hn, _ := s.doc.Get(HeartControlID(p.ID))
		badge := ""
		if p.Badge != "" {
			badge = " (" + p.Badge + ")"
		}
		fmt.Fprintf(&b, "%2d. %s%s  %s\n    [%s] Add to cart  [%s] %s\n",
			i+1, p.Name, badge, s.format.Price(p.Price), AddControlID(p.ID), hn.ID, heart(hn.Active))
	}
	return strings.TrimRight(b.String(), "\n")
}

// CartView is the body of the cart modal.
func (s *Shop) CartView() string {
	lines := s.svc.Cart.Lines()
	if len(lines) == 0 {
		return "Your cart is empty"
	}

	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%2d. %s  %s x %d = %s\n    [%s] -  [%s] +  [%s] remove\n",
			i+1, l.Name, s.format.Price(l.Price), l.Quantity, s.format.Price(l.Subtotal()),
			QtyDecID(l.ID), QtyIncID(l.ID), CartRemoveID(l.ID))
	}
	sum := models.Summarize(lines)
	fmt.Fprintf(&b, "Total (%s items): %s\n[%s] Checkout  [%s] Close",
		s.format.Count(sum.TotalItems), s.format.Price(sum.TotalPrice), CheckoutID, CartCloseID)
	return b.String()
}

// WishlistView is the body of the wishlist modal.
func (s *Shop) WishlistView() string {
	entries := s.svc.Wishlist.Entries()
	if len(entries) == 0 {
		return "Your wishlist is empty"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "My Wishlist (%d items)\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, " ♥ %s  %s  [%s] remove\n", e.Name, s.format.Price(e.Price), UnwishID(e.ID))
	}
	fmt.Fprintf(&b, "[%s] Close", WishCloseID)
	return b.String()
}
