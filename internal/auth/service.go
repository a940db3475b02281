package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campuscore.org/internal/audit"
	"campuscore.org/internal/ids"
	"campuscore.org/internal/obs"
)

const moduleCore = "core"

// Service verifies credentials, issues session tokens, and manages account
// lifecycle. It writes LOGIN/LOGIN_FAILED/LOGOUT records itself; handlers
// audit their own mutations.
type Service struct {
	identities IdentityStore
	tokens     *TokenCodec
	trail      *audit.Trail
	now        func() time.Time
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs a Service. All collaborators are required.
func NewService(identities IdentityStore, tokens *TokenCodec, trail *audit.Trail, opts ...ServiceOption) (*Service, error) {
	if identities == nil {
		return nil, errors.New("auth: identity store is required")
	}
	if tokens == nil {
		return nil, errors.New("auth: token codec is required")
	}
	if trail == nil {
		return nil, errors.New("auth: audit trail is required")
	}
	s := &Service{
		identities: identities,
		tokens:     tokens,
		trail:      trail,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Login authenticates the credentials and issues a session token.
//
// Unknown email and wrong password both return ErrInvalidCredentials; a
// disabled account returns the distinct ErrAccountDisabled. A wrong password
// on an existing account appends a LOGIN_FAILED record with no resolved
// actor so repeated failures can be detected downstream. The audit write
// sits between the credential check and token issuance, but a failed write
// never blocks the login; the trail escalates it on its own.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	// Email comparison is case-sensitive, exactly as stored.
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	identity, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			obs.LoginFailure()
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("lookup identity: %w", err)
	}
	if !identity.Active {
		return Session{}, ErrAccountDisabled
	}

	if err := VerifyPassword(identity.PasswordHash, password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			obs.LoginFailure()
			s.trail.Record(ctx, audit.Entry{
				Action:       audit.ActionLoginFailed,
				Module:       moduleCore,
				ResourceType: "identity",
				ResourceID:   identity.ID,
			})
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("verify password: %w", err)
	}

	s.trail.Record(ctx, audit.Entry{
		ActorID:      identity.ID,
		ActorRole:    string(identity.Role),
		Action:       audit.ActionLogin,
		Module:       moduleCore,
		ResourceType: "identity",
		ResourceID:   identity.ID,
	})

	token, expiresAt, err := s.tokens.Issue(identity.ID, identity.Role)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Token: token, ExpiresAt: expiresAt, Identity: identity}, nil
}

// Logout records the end of a session. Tokens are stateless, so the only
// server-side effect is the audit record; the client discards the token.
func (s *Service) Logout(ctx context.Context, actor Actor) {
	s.trail.Record(ctx, audit.Entry{
		ActorID:      actor.ID,
		ActorRole:    string(actor.Role),
		Action:       audit.ActionLogout,
		Module:       moduleCore,
		ResourceType: "identity",
		ResourceID:   actor.ID,
	})
}

// Register creates a new active account with the given role. The caller is
// responsible for the RBAC check and the audit record.
func (s *Service) Register(ctx context.Context, email, password string, role Role) (*Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	identity := &Identity{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// Unlock re-activates a disabled account and returns the state before and
// after the change for the caller's audit record.
func (s *Service) Unlock(ctx context.Context, id string) (before, after *Identity, err error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil, fmt.Errorf("%w: identity id is required", ErrInvalidInput)
	}
	identity, err := s.identities.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	prev := *identity
	if err := s.identities.SetActive(ctx, id, true); err != nil {
		return nil, nil, err
	}
	updated := *identity
	updated.Active = true
	return &prev, &updated, nil
}
