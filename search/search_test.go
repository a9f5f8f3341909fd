package search

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refill-spot/site/db"
)

func TestSaveUserSearch(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	userID := sql.NullInt64{Int64: 1, Valid: true}

	mock.ExpectExec("INSERT INTO UserSearch \\(user_id, query_string\\) VALUES \\(\\?, \\?\\)").
		WithArgs(userID, "무한리필 고기").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = SaveUserSearch(userID, "무한리필 고기")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUserSearch_Anonymous(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	userID := sql.NullInt64{Valid: false}

	mock.ExpectExec("INSERT INTO UserSearch \\(user_id, query_string\\) VALUES \\(\\?, \\?\\)").
		WithArgs(userID, "초밥").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = SaveUserSearch(userID, "초밥")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentUserSearches(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	rows := sqlmock.NewRows([]string{"id", "user_id", "query_string", "created_at"}).
		AddRow(2, 1, "초밥", time.Now()).
		AddRow(1, 1, "무한리필 고기", time.Now())

	mock.ExpectQuery("SELECT id, user_id, query_string, created_at FROM UserSearch WHERE user_id = \\? ORDER BY created_at DESC LIMIT \\?").
		WithArgs(1, 5).
		WillReturnRows(rows)

	searches, err := GetRecentUserSearches(1, 5)

	assert.NoError(t, err)
	require.Len(t, searches, 2)
	assert.Equal(t, "초밥", searches[0].QueryString)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTopSearches(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	rows := sqlmock.NewRows([]string{"query_string", "count"}).
		AddRow("고기", 15).
		AddRow("뷔페", 12)

	mock.ExpectQuery("SELECT query_string, COUNT\\(\\*\\) as count FROM UserSearch GROUP BY query_string ORDER BY count DESC LIMIT \\?").
		WithArgs(10).
		WillReturnRows(rows)

	searches, err := GetTopSearches(10)

	assert.NoError(t, err)
	require.Len(t, searches, 2)
	assert.Equal(t, "고기", searches[0].QueryString)
	assert.Equal(t, 15, searches[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAllUserSearches(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectExec("DELETE FROM UserSearch WHERE user_id = \\?").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, DeleteAllUserSearches(1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
