package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refill-spot/site/db"
)

func TestFavoriteStore(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectExec(`INSERT OR IGNORE INTO FavoriteStore \(user_id, store_id\) VALUES \(\?, \?\)`).
		WithArgs(1, 42).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, FavoriteStore(1, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnfavoriteStore(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectExec(`DELETE FROM FavoriteStore WHERE user_id = \? AND store_id = \?`).
		WithArgs(1, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, UnfavoriteStore(1, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsStoreFavoritedByUser(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectQuery(`SELECT 1 FROM FavoriteStore WHERE user_id = \? AND store_id = \?`).
		WithArgs(1, 42).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	favorited, err := IsStoreFavoritedByUser(1, 42)
	assert.NoError(t, err)
	assert.True(t, favorited)

	mock.ExpectQuery(`SELECT 1 FROM FavoriteStore WHERE user_id = \? AND store_id = \?`).
		WithArgs(1, 43).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	favorited, err = IsStoreFavoritedByUser(1, 43)
	assert.NoError(t, err)
	assert.False(t, favorited)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFavoriteStoreIDs(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectQuery(`SELECT store_id FROM FavoriteStore WHERE user_id = \? ORDER BY favorited_at DESC`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"store_id"}).AddRow(9).AddRow(4).AddRow(2))

	ids, err := GetFavoriteStoreIDs(1)
	assert.NoError(t, err)
	assert.Equal(t, []int{9, 4, 2}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
