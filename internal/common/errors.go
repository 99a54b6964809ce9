// Package common defines shared constants and sentinel errors used across
// footcap components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Input validation (malformed email, short password, bad checkout form).
	ErrValidation = errors.New("validation error")

	// Signup with an email that is already registered.
	ErrConflict = errors.New("user with this email already exists")

	// Login failure. Deliberately the same for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Cart or wishlist action attempted without an active session.
	ErrNotLoggedIn = errors.New("login required")

	// Checkout attempted with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
