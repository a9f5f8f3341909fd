package user

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refill-spot/site/db"
)

func TestCreateUser(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectExec(`INSERT INTO User \(name, email, password_hash, password_salt\) VALUES \(\?, \?, \?, \?\)`).
		WithArgs("민수", "minsu@example.com", "hash", "salt").
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := CreateUser("민수", "minsu@example.com", "hash", "salt")

	assert.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	created := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "password_salt", "created_at", "is_admin", "deleted_at"}).
		AddRow(1, "민수", "minsu@example.com", "hash", "salt", created, false, nil)

	mock.ExpectQuery(`SELECT .* FROM User WHERE email = \?`).
		WithArgs("minsu@example.com").
		WillReturnRows(rows)

	u, err := GetUserByEmail("minsu@example.com")

	assert.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, "민수", u.Name)
	assert.False(t, u.IsAdmin)
	assert.False(t, u.IsArchived())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser_NotFound(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectQuery(`SELECT .* FROM User WHERE id = \?`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "password_salt", "created_at", "is_admin", "deleted_at"}))

	_, err = GetUser(99)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveUser(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectExec(`UPDATE User SET deleted_at = CURRENT_TIMESTAMP WHERE id = \?`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, ArchiveUser(3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
