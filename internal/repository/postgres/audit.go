package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS console_audit_log (
	id          UUID PRIMARY KEY,
	user_id     TEXT NOT NULL,
	user_email  TEXT NOT NULL,
	action      TEXT NOT NULL,
	target      TEXT NOT NULL DEFAULT '',
	detail      TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_console_audit_log_created_at ON console_audit_log (created_at DESC)`

// AuditRepo stores the console's administrative audit trail.
type AuditRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewAuditRepo creates a Postgres-backed audit repository.
func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{db: db, now: time.Now} }

// EnsureSchema creates the audit table when missing.
func (r *AuditRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, auditSchema); err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}

// Record appends an entry. ID and CreatedAt are filled when empty.
func (r *AuditRepo) Record(ctx context.Context, e *domain.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO console_audit_log (id, user_id, user_email, action, target, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.UserID, e.UserEmail, string(e.Action), e.Target, e.Detail, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

// List returns the newest entries first.
func (r *AuditRepo) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, user_email, action, target, detail, created_at
		FROM console_audit_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var action string
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserEmail, &action, &e.Target, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = domain.AuditAction(action)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Prune deletes entries older than maxAge and returns how many went.
func (r *AuditRepo) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM console_audit_log WHERE created_at < $1`, r.now().UTC().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("prune audit entries: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports the entry count and the newest entry time, which is zero
// for an empty table.
func (r *AuditRepo) Stats(ctx context.Context) (count int64, newest time.Time, err error) {
	var last sql.NullTime
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*), MAX(created_at) FROM console_audit_log`).Scan(&count, &last)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("audit stats: %w", err)
	}
	return count, last.Time, nil
}
