package services

// Storage keys. Values are JSON text; per-user keys are suffixed with the
// user id so carts and wishlists never leak between accounts.
const (
	KeyUsers         = "footcap_users"
	KeyCurrentUser   = "footcap_current_user"
	KeySessionSecret = "footcap_session_secret"
)

func CartKey(userID string) string     { return "footcap_cart_" + userID }
func WishlistKey(userID string) string { return "footcap_wishlist_" + userID }
func OrdersKey(userID string) string   { return "footcap_orders_" + userID }
