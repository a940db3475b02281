package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreCreate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(`insert into users`).
		WithArgs("id-1", "new@campus.edu", "$2a$12$hash", "faculty", true, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewPGStore(db)
	err = store.Create(context.Background(), &Identity{
		ID:           "id-1",
		Email:        "new@campus.edu",
		PasswordHash: "$2a$12$hash",
		Role:         RoleFaculty,
		Active:       true,
		CreatedAt:    created,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPGStoreCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`insert into users`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`))

	store := NewPGStore(db)
	err = store.Create(context.Background(), &Identity{ID: "id-2", Email: "dup@campus.edu"})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestPGStoreFindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "is_active", "created_at", "deleted_at"}).
		AddRow("id-3", "dean@campus.edu", "$2a$12$hash", "department_head", true, created, nil)
	mock.ExpectQuery(`select .+ from users where email=\$1 and deleted_at is null`).
		WithArgs("dean@campus.edu").
		WillReturnRows(rows)

	store := NewPGStore(db)
	identity, err := store.FindByEmail(context.Background(), "dean@campus.edu")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if identity.ID != "id-3" || identity.Role != RoleDepartmentHead || !identity.Active {
		t.Fatalf("identity = %+v", identity)
	}
	if identity.DeletedAt != nil {
		t.Fatal("expected nil DeletedAt")
	}
}

func TestPGStoreFindByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`select .+ from users`).
		WithArgs("ghost@campus.edu").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "is_active", "created_at", "deleted_at"}))

	store := NewPGStore(db)
	if _, err := store.FindByEmail(context.Background(), "ghost@campus.edu"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGStoreSetActive(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`update users set is_active=\$2`).
		WithArgs("id-4", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`update users set is_active=\$2`).
		WithArgs("missing", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewPGStore(db)
	if err := store.SetActive(context.Background(), "id-4", true); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if err := store.SetActive(context.Background(), "missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
