package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

func newMock(t *testing.T) (*AuditRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := NewAuditRepo(db)
	repo.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return repo, mock
}

func TestAuditRecord(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO console_audit_log")).
		WithArgs(sqlmock.AnyArg(), "u1", "ops@acme.io", "domain_rules.saved", "", "whitelist=1 blacklist=2",
			time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	e := &domain.AuditEntry{UserID: "u1", UserEmail: "ops@acme.io", Action: domain.AuditDomainRulesSaved, Detail: "whitelist=1 blacklist=2"}
	require.NoError(t, repo.Record(context.Background(), e))
	assert.NotEmpty(t, e.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRecord_Error(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec("INSERT INTO console_audit_log").WillReturnError(errors.New("connection reset"))

	err := repo.Record(context.Background(), &domain.AuditEntry{Action: domain.AuditRoleDeleted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record audit entry")
}

func TestAuditList(t *testing.T) {
	repo, mock := newMock(t)
	at := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "user_email", "action", "target", "detail", "created_at"}).
		AddRow("a1", "u1", "ops@acme.io", "automation.run", "auto-1", "", at).
		AddRow("a2", "u1", "ops@acme.io", "sso.updated", "google", "enabled=true", at.Add(-time.Hour))
	mock.ExpectQuery("SELECT id, user_id, user_email, action, target, detail, created_at").
		WithArgs(100).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.AuditAutomationRun, list[0].Action)
	assert.Equal(t, "google", list[1].Target)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS console_audit_log").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditPrune(t *testing.T) {
	repo, mock := newMock(t)
	cutoff := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM console_audit_log WHERE created_at < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.Prune(context.Background(), 28*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditStats_Empty(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*), MAX(created_at) FROM console_audit_log")).
		WillReturnRows(sqlmock.NewRows([]string{"count", "max"}).AddRow(0, nil))

	count, newest, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.True(t, newest.IsZero())
}
