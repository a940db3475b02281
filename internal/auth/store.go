package auth

import "context"

// IdentityStore persists login accounts. Lookups exclude soft-deleted rows;
// the underlying store provides its own transaction isolation.
type IdentityStore interface {
	Create(ctx context.Context, identity *Identity) error
	Find(ctx context.Context, id string) (*Identity, error)
	FindByEmail(ctx context.Context, email string) (*Identity, error)
	SetActive(ctx context.Context, id string, active bool) error
}
