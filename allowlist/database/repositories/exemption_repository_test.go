package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExemptionRepository_IsExempt(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExemptionRepository(db)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT .* FROM "cooldown_exempt".* WHERE \(applicant_id = '1001'\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exempt, err := repo.IsExempt(context.Background(), "1001")
	require.NoError(t, err)
	assert.True(t, exempt)

	exempt, err = repo.IsExempt(context.Background(), "1002")
	require.NoError(t, err)
	assert.False(t, exempt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExemptionRepository_AddIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExemptionRepository(db)

	mock.ExpectExec(`INSERT INTO "cooldown_exempt" .* ON CONFLICT \(applicant_id\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "cooldown_exempt"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	added, err := repo.Add(context.Background(), "1001", "2002")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Add(context.Background(), "1001", "2002")
	require.NoError(t, err)
	assert.False(t, added)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExemptionRepository_RemoveIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExemptionRepository(db)

	mock.ExpectExec(`DELETE FROM "cooldown_exempt".* WHERE \(applicant_id = '1001'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "cooldown_exempt"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.Remove(context.Background(), "1001")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(context.Background(), "1001")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
