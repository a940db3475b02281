package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGLogAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("insert into audit_logs").
		WithArgs("rec-1", "u-1", "super_admin", "CREATE", "core", "user", "u-2",
			sqlmock.AnyArg(), sqlmock.AnyArg(), "10.0.0.1", "agent", "req-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	log := NewPGLog(db)
	rec := &Record{
		ID:           "rec-1",
		ActorID:      "u-1",
		ActorRole:    "super_admin",
		Action:       ActionCreate,
		Module:       "core",
		ResourceType: "user",
		ResourceID:   "u-2",
		Before:       nil,
		After:        Snapshot(map[string]string{"email": "x@faculty.edu"}),
		SourceIP:     "10.0.0.1",
		UserAgent:    "agent",
		RequestID:    "req-1",
		OccurredAt:   time.Now().UTC(),
	}
	if err := log.Append(context.Background(), rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPGLogAppendSurfacesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("insert into audit_logs").WillReturnError(errors.New("connection reset"))

	log := NewPGLog(db)
	if err := log.Append(context.Background(), &Record{ID: "rec-2", Action: ActionDelete}); err == nil {
		t.Fatal("expected error from store")
	}
}
