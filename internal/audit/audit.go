// Package audit maintains the append-only trail of security-relevant
// actions. Records are immutable once written; the package exposes no update
// or delete operation.
package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"campuscore.org/internal/alerts"
	"campuscore.org/internal/ids"
	"campuscore.org/internal/obs"
)

// Action classifies a tracked event.
type Action string

const (
	ActionCreate      Action = "CREATE"
	ActionUpdate      Action = "UPDATE"
	ActionDelete      Action = "DELETE"
	ActionLogin       Action = "LOGIN"
	ActionLogout      Action = "LOGOUT"
	ActionLoginFailed Action = "LOGIN_FAILED"
	ActionUnlock      Action = "UNLOCK"
	ActionExport      Action = "EXPORT"
)

// Record is one immutable trail entry. ActorID and ActorRole are empty for
// system-initiated actions and for failed logins where no actor resolved.
type Record struct {
	ID           string          `json:"id"`
	ActorID      string          `json:"actor_id,omitempty"`
	ActorRole    string          `json:"actor_role,omitempty"`
	Action       Action          `json:"action"`
	Module       string          `json:"module"`
	ResourceType string          `json:"resource_type"`
	ResourceID   string          `json:"resource_id"`
	Before       json.RawMessage `json:"before,omitempty"`
	After        json.RawMessage `json:"after,omitempty"`
	SourceIP     string          `json:"source_ip,omitempty"`
	UserAgent    string          `json:"user_agent,omitempty"`
	RequestID    string          `json:"request_id,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// Store appends immutable records.
type Store interface {
	Append(ctx context.Context, rec *Record) error
}

// Entry is the caller-facing shape of one tracked action. Before and After
// are domain values; they are serialized with password material redacted.
type Entry struct {
	ActorID      string
	ActorRole    string
	Action       Action
	Module       string
	ResourceType string
	ResourceID   string
	Before       any
	After        any
}

// Trail writes audit records. A failed write never propagates to the caller:
// the action the record describes has already committed, so the trail
// escalates through metrics, the error log, and the alerts stream instead.
type Trail struct {
	store  Store
	now    func() time.Time
	alerts *alerts.Stream
}

// TrailOption configures Trail behavior.
type TrailOption func(*Trail)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) TrailOption {
	return func(t *Trail) {
		if fn != nil {
			t.now = fn
		}
	}
}

// WithAlerts publishes write failures to the given stream.
func WithAlerts(s *alerts.Stream) TrailOption {
	return func(t *Trail) {
		t.alerts = s
	}
}

// NewTrail constructs a Trail over the given store.
func NewTrail(store Store, opts ...TrailOption) *Trail {
	t := &Trail{store: store, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record appends one entry. Request provenance (source IP, user agent,
// request id) is taken from the context when the HTTP layer attached it.
func (t *Trail) Record(ctx context.Context, e Entry) {
	rec := &Record{
		ID:           ids.New(),
		ActorID:      e.ActorID,
		ActorRole:    e.ActorRole,
		Action:       e.Action,
		Module:       e.Module,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Before:       Snapshot(e.Before),
		After:        Snapshot(e.After),
		OccurredAt:   t.now().UTC(),
	}
	if prov, ok := provenanceFromContext(ctx); ok {
		rec.SourceIP = prov.SourceIP
		rec.UserAgent = prov.UserAgent
		rec.RequestID = prov.RequestID
	}

	if err := t.store.Append(ctx, rec); err != nil {
		obs.AuditWriteFailure()
		obs.LogError("audit_write_failed", map[string]any{
			"action":        string(rec.Action),
			"resource_type": rec.ResourceType,
			"resource_id":   rec.ResourceID,
			"request_id":    rec.RequestID,
			"error":         err.Error(),
		})
		if t.alerts != nil {
			t.alerts.Publish(alerts.Event{
				Kind:   "audit_write_failure",
				Detail: err.Error(),
				Fields: map[string]string{
					"action":      string(rec.Action),
					"resource_id": rec.ResourceID,
				},
			})
		}
	}
}

// Provenance identifies where a request came from.
type Provenance struct {
	SourceIP  string
	UserAgent string
	RequestID string
}

type provenanceContextKey struct{}

// WithProvenance attaches request provenance for subsequent audit writes.
func WithProvenance(ctx context.Context, p Provenance) context.Context {
	return context.WithValue(ctx, provenanceContextKey{}, p)
}

func provenanceFromContext(ctx context.Context) (Provenance, bool) {
	if ctx == nil {
		return Provenance{}, false
	}
	p, ok := ctx.Value(provenanceContextKey{}).(Provenance)
	return p, ok
}

// ValidAction reports whether s names one of the tracked action kinds.
func ValidAction(s string) bool {
	switch Action(strings.ToUpper(s)) {
	case ActionCreate, ActionUpdate, ActionDelete, ActionLogin,
		ActionLogout, ActionLoginFailed, ActionUnlock, ActionExport:
		return true
	}
	return false
}
