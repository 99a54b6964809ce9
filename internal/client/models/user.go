// Package models defines the client-side records persisted by footcap.
package models

import "time"

// User is a registered shopper. Records accumulate in the global users
// collection and are never edited after signup.
type User struct {
	// ID is the stable identifier used to namespace per-user storage keys.
	ID string `json:"id"`

	Name string `json:"name"`

	// Email is the login key; stored trimmed and lower-cased.
	Email string `json:"email"`

	// PasswordHash is the salted argon2id encoding produced by cryptox.
	PasswordHash string `json:"password,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Public returns a copy of u without credential material, suitable for the
// persisted session pointer and for handing to other components.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Session is the single active authenticated-user reference.
type Session struct {
	User User `json:"user"`

	// Token is a signed token bound to User.ID; a session whose token does not
	// verify is discarded on restore.
	Token string `json:"token"`

	CreatedAt time.Time `json:"createdAt"`
}
