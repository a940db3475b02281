package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// PGStore implements IdentityStore over the users table.
type PGStore struct {
	db *sql.DB
}

var _ IdentityStore = (*PGStore)(nil)

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, identity *Identity) error {
	_, err := s.db.ExecContext(ctx,
		`insert into users(id, email, password_hash, role, is_active, created_at)
		 values($1,$2,$3,$4,$5,$6)`,
		identity.ID, identity.Email, identity.PasswordHash,
		string(identity.Role), identity.Active, identity.CreatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *PGStore) Find(ctx context.Context, id string) (*Identity, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, email, password_hash, role, is_active, created_at, deleted_at
		 from users where id=$1 and deleted_at is null`, id)
	return scanIdentity(row)
}

func (s *PGStore) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, email, password_hash, role, is_active, created_at, deleted_at
		 from users where email=$1 and deleted_at is null`, email)
	return scanIdentity(row)
}

func (s *PGStore) SetActive(ctx context.Context, id string, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`update users set is_active=$2 where id=$1 and deleted_at is null`, id, active)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanIdentity(row *sql.Row) (*Identity, error) {
	var (
		identity Identity
		role     string
	)
	err := row.Scan(&identity.ID, &identity.Email, &identity.PasswordHash,
		&role, &identity.Active, &identity.CreatedAt, &identity.DeletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	identity.Role = Role(role)
	return &identity, nil
}

func isUniqueViolation(err error) bool {
	// pgx surfaces SQLSTATE 23505 in the error text when used through
	// database/sql without driver-specific unwrapping.
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
