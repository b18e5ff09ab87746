package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"checkout-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepository(mock)
	details := `{"method":"POST","path":"/api/v1/onchain/transfers","status":201}`
	log := &domain.AuditLog{
		ID:           uuid.New(),
		RequestID:    "req-1",
		Action:       domain.AuditActionTransferBuilt,
		ResourceType: "transfer",
		Details:      details,
		IPAddress:    "127.0.0.1",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(log.ID, "req-1", "TRANSFER_BUILT", "transfer", &details, "127.0.0.1", log.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), log))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Create_NullDetails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepository(mock)
	log := &domain.AuditLog{
		ID:           uuid.New(),
		RequestID:    "req-2",
		Action:       domain.AuditActionHostedSession,
		ResourceType: "hosted_session",
		IPAddress:    "10.0.0.1",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(log.ID, "req-2", "HOSTED_SESSION_CREATED", "hosted_session", (*string)(nil), "10.0.0.1", log.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), log))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Create_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepository(mock)

	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnError(errors.New("relation \"audit_logs\" does not exist"))

	err = repo.Create(context.Background(), &domain.AuditLog{ID: uuid.New(), Action: domain.AuditActionPaymentLink})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaAndHealth(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS audit_logs").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	require.NoError(t, EnsureSchema(context.Background(), mock))

	hc := NewHealthCheck(mock)
	mock.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))
	assert.NoError(t, hc.Ping(context.Background()))
	assert.Equal(t, "postgresql", hc.Name())

	mock.ExpectExec("SELECT 1").WillReturnError(errors.New("conn closed"))
	assert.Error(t, hc.Ping(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}
