package audit

import (
	"context"
	"database/sql"
)

// PGLog appends records to the audit_logs table.
type PGLog struct {
	db *sql.DB
}

var _ Store = (*PGLog)(nil)

func NewPGLog(db *sql.DB) *PGLog {
	return &PGLog{db: db}
}

func (l *PGLog) Append(ctx context.Context, rec *Record) error {
	_, err := l.db.ExecContext(ctx,
		`insert into audit_logs(id, actor_id, actor_role, action, module,
		   resource_type, resource_id, before_state, after_state,
		   source_ip, user_agent, request_id, occurred_at)
		 values($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		rec.ID, nullable(rec.ActorID), nullable(rec.ActorRole), string(rec.Action),
		rec.Module, rec.ResourceType, rec.ResourceID,
		rawOrNil(rec.Before), rawOrNil(rec.After),
		nullable(rec.SourceIP), nullable(rec.UserAgent), nullable(rec.RequestID),
		rec.OccurredAt,
	)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func rawOrNil(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
