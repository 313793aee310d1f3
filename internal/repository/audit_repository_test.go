package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelqr/guest-services-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "postgres"), mock
}

func TestAuditCreate(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()
	repo := NewAuditRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	userID := "admin-1"
	log := &models.AuditLog{
		UserID:    &userID,
		Action:    models.AuditActionAnnouncementCreate,
		Resource:  "announcement",
		IPAddress: "10.0.0.1",
		UserAgent: "test",
	}
	err := repo.Create(context.Background(), log)
	require.NoError(t, err)

	// Missing id and timestamp are filled in before the insert.
	assert.NotEmpty(t, log.ID)
	assert.False(t, log.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditCreateFailure(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()
	repo := NewAuditRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WillReturnError(assert.AnError)

	err := repo.Create(context.Background(), &models.AuditLog{Action: models.AuditActionLogin, Resource: "auth"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditListRecent(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()
	repo := NewAuditRepository(db)

	now := time.Now().UTC()
	userID := "admin-1"
	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "resource", "resource_id", "detail", "ip_address", "user_agent", "created_at"}).
		AddRow("log-2", userID, models.AuditActionAnnouncementDelete, "announcement", "ann-1", nil, "10.0.0.1", "test", now).
		AddRow("log-1", userID, models.AuditActionLogin, "auth", userID, nil, "10.0.0.1", "test", now.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, action, resource, resource_id, detail, ip_address, user_agent, created_at")).
		WillReturnRows(rows)

	logs, err := repo.ListRecent(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "log-2", logs[0].ID)
	assert.Equal(t, models.AuditActionAnnouncementDelete, logs[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditListRecentClampsLimit(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()
	repo := NewAuditRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "resource", "resource_id", "detail", "ip_address", "user_agent", "created_at"})
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 50")).WillReturnRows(rows)

	_, err := repo.ListRecent(context.Background(), 100000)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
