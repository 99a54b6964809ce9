package models

import "time"

// WishlistEntry marks a product as wished for. There is no quantity.
type WishlistEntry struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Price   float64   `json:"price"`
	Image   string    `json:"image"`
	Badge   string    `json:"badge,omitempty"`
	AddedAt time.Time `json:"addedAt"`
}
