package models

import "time"

type PaymentMethod string

const (
	PaymentPaytm   PaymentMethod = "paytm"
	PaymentGPay    PaymentMethod = "gpay"
	PaymentPhonePe PaymentMethod = "phonepe"
	PaymentCOD     PaymentMethod = "cod"
)

var paymentMethodNames = map[PaymentMethod]string{
	PaymentPaytm:   "Paytm",
	PaymentGPay:    "Google Pay",
	PaymentPhonePe: "PhonePe",
	PaymentCOD:     "Cash on Delivery",
}

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodNames[m]
	return ok
}

// DisplayName is the label shown on the order confirmation.
func (m PaymentMethod) DisplayName() string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}
	return string(m)
}

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is a snapshot of the cart taken at checkout.
type Order struct {
	ID            string        `json:"orderId"`
	Customer      Customer      `json:"customer"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Items         []CartLine    `json:"items"`
	Total         float64       `json:"total"`
	OrderDate     time.Time     `json:"orderDate"`
}
