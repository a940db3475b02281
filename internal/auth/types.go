package auth

import "time"

// Identity is a durable login account. Accounts are never hard-deleted;
// DeletedAt marks retirement and excludes the row from credential lookups.
type Identity struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Actor is the authenticated caller resolved from a session token, attached
// to the request context by the HTTP layer.
type Actor struct {
	ID   string
	Role Role
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Identity  *Identity
}
