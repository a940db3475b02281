package audit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"campuscore.org/internal/alerts"
)

func TestTrailRecordCapturesProvenance(t *testing.T) {
	log := NewMemoryLog()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	trail := NewTrail(log, WithClock(func() time.Time { return fixed }))

	ctx := WithProvenance(context.Background(), Provenance{
		SourceIP:  "10.1.2.3",
		UserAgent: "desktop-client/1.0",
		RequestID: "req-1",
	})
	trail.Record(ctx, Entry{
		ActorID:      "u-1",
		ActorRole:    "super_admin",
		Action:       ActionCreate,
		Module:       "core",
		ResourceType: "user",
		ResourceID:   "u-2",
		After:        map[string]string{"email": "new@faculty.edu"},
	})

	recs := log.Records()
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.ID == "" {
		t.Fatal("expected generated record id")
	}
	if rec.SourceIP != "10.1.2.3" || rec.UserAgent != "desktop-client/1.0" || rec.RequestID != "req-1" {
		t.Fatalf("provenance not captured: %+v", rec)
	}
	if !rec.OccurredAt.Equal(fixed) {
		t.Fatalf("unexpected timestamp: %v", rec.OccurredAt)
	}
	if rec.Before != nil {
		t.Fatalf("expected nil before snapshot for create, got %s", rec.Before)
	}
}

func TestTrailRecordIDsAreDistinct(t *testing.T) {
	log := NewMemoryLog()
	trail := NewTrail(log)

	for i := 0; i < 3; i++ {
		trail.Record(context.Background(), Entry{
			Action:       ActionLoginFailed,
			Module:       "core",
			ResourceType: "identity",
			ResourceID:   "u-1",
		})
	}
	recs := log.Records()
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	seen := map[string]bool{}
	for _, rec := range recs {
		if seen[rec.ID] {
			t.Fatalf("duplicate record id %s", rec.ID)
		}
		seen[rec.ID] = true
		if rec.ActorID != "" || rec.ActorRole != "" {
			t.Fatalf("failed login must not resolve an actor: %+v", rec)
		}
	}
}

type failingStore struct{}

func (failingStore) Append(ctx context.Context, rec *Record) error {
	return errors.New("disk on fire")
}

func TestTrailWriteFailureEscalatesWithoutPropagating(t *testing.T) {
	stream := alerts.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := stream.Subscribe(ctx)

	trail := NewTrail(failingStore{}, WithAlerts(stream))
	// Must not panic or surface the error.
	trail.Record(context.Background(), Entry{
		Action:       ActionUpdate,
		Module:       "core",
		ResourceType: "user",
		ResourceID:   "u-9",
	})

	select {
	case evt := <-ch:
		if evt.Kind != "audit_write_failure" {
			t.Fatalf("unexpected alert kind: %s", evt.Kind)
		}
		if evt.Fields["resource_id"] != "u-9" {
			t.Fatalf("unexpected alert fields: %v", evt.Fields)
		}
	case <-time.After(time.Second):
		t.Fatal("expected audit failure alert")
	}
}

func TestSnapshotRedactsPasswordMaterial(t *testing.T) {
	payload := map[string]any{
		"email":         "stu-001@campus.edu",
		"plainPassword": "STU-001123!",
		"profile": map[string]any{
			"password_hash": "$2a$12$abcdefg",
			"full_name":     "Ram Sharma",
		},
	}
	raw := Snapshot(payload)
	if raw == nil {
		t.Fatal("expected snapshot")
	}
	if strings.Contains(string(raw), "STU-001123!") || strings.Contains(string(raw), "$2a$12$") {
		t.Fatalf("credential material leaked into snapshot: %s", raw)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if decoded["plainPassword"] != redactedPlaceholder {
		t.Fatalf("expected redaction placeholder, got %v", decoded["plainPassword"])
	}
	if decoded["email"] != "stu-001@campus.edu" {
		t.Fatalf("non-sensitive field altered: %v", decoded["email"])
	}
}

func TestSnapshotNilValue(t *testing.T) {
	if raw := Snapshot(nil); raw != nil {
		t.Fatalf("expected nil snapshot, got %s", raw)
	}
}

func TestValidAction(t *testing.T) {
	for _, a := range []string{"CREATE", "login_failed", "EXPORT"} {
		if !ValidAction(a) {
			t.Fatalf("expected %s to be valid", a)
		}
	}
	if ValidAction("TRUNCATE") {
		t.Fatal("unexpected action accepted")
	}
}
