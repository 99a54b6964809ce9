package models

// CartLine is one product in the cart with its quantity. Two additions with
// the same Name and Price land on the same line.
type CartLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Badge    string  `json:"badge,omitempty"`
	Quantity int     `json:"quantity"`
}

// Matches reports whether p merges into this line.
func (l CartLine) Matches(p Product) bool {
	return l.Name == p.Name && l.Price == p.Price
}

// Subtotal is Price × Quantity.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CartSummary is derived from the lines on every read.
type CartSummary struct {
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}

func Summarize(lines []CartLine) CartSummary {
	var s CartSummary
	for _, l := range lines {
		s.TotalItems += l.Quantity
		s.TotalPrice += l.Subtotal()
	}
	return s
}
