package tx

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (TxRepository, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTxRepository(sqlx.NewDb(db, "sqlmock")), sqlMock
}

func TestCommitThenRollback(t *testing.T) {
	repo, sqlMock := newTestRepository(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.CommitTx(tx))

	// the deferred rollback after a successful commit is a no-op
	assert.NoError(t, repo.RollbackTx(tx))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRollback(t *testing.T) {
	repo, sqlMock := newTestRepository(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	tx, err := repo.BeginTx(context.Background())
	require.NoError(t, err)
	assert.NoError(t, repo.RollbackTx(tx))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestBeginError(t *testing.T) {
	repo, sqlMock := newTestRepository(t)
	sqlMock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	_, err := repo.BeginTx(context.Background())
	assert.EqualError(t, err, "pool exhausted")
}
