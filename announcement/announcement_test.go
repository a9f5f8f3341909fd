package announcement

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refill-spot/site/db"
)

func TestCreate(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectExec(`INSERT INTO Announcement \(title, body, pinned\) VALUES \(\?, \?, \?\)`).
		WithArgs("점검 안내", "토요일 새벽 점검이 있습니다", true).
		WillReturnResult(sqlmock.NewResult(3, 1))

	id, err := Create("점검 안내", "토요일 새벽 점검이 있습니다", true)

	assert.NoError(t, err)
	assert.Equal(t, 3, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_PinnedFirst(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "body", "pinned", "created_at", "updated_at"}).
		AddRow(2, "점검 안내", "내용", true, now, now).
		AddRow(1, "신규 오픈", "내용", false, now, now)

	mock.ExpectQuery(`SELECT id, title, body, pinned, created_at, updated_at FROM Announcement`).
		WillReturnRows(rows)

	announcements, err := List()

	assert.NoError(t, err)
	require.Len(t, announcements, 2)
	assert.True(t, announcements[0].Pinned)
	assert.Equal(t, "점검 안내", announcements[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectExec(`DELETE FROM Announcement WHERE id = \?`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, Delete(3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
