package review

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refill-spot/site/db"
)

func TestAddReview(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectExec(`INSERT INTO Review \(store_id, user_id, rating, comment, images, status\)`).
		WithArgs(5, 1, 4, "고기 질이 좋아요", "[]", StatusPending).
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := AddReview(5, 1, 4, "고기 질이 좋아요", "[]")

	assert.NoError(t, err)
	assert.Equal(t, 11, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddReview_RatingOutOfRange(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	_, err = AddReview(5, 1, 0, "", "[]")
	assert.Error(t, err)

	_, err = AddReview(5, 1, 6, "", "[]")
	assert.Error(t, err)
}

func TestGetApprovedByStore(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	rows := sqlmock.NewRows([]string{"id", "store_id", "user_id", "name", "rating", "comment", "images", "status", "created_at"}).
		AddRow(2, 5, 1, "민수", 5, "최고", "[]", StatusApproved, time.Now()).
		AddRow(1, 5, 2, "지영", 4, "좋아요", "[]", StatusApproved, time.Now())

	mock.ExpectQuery(`SELECT .* FROM Review r`).
		WithArgs(5, StatusApproved).
		WillReturnRows(rows)

	reviews, err := GetApprovedByStore(5)

	assert.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "민수", reviews[0].UserName)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModerate_ApprovedRefreshesAggregate(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectQuery(`SELECT store_id FROM Review WHERE id = \?`).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"store_id"}).AddRow(5))

	mock.ExpectExec(`UPDATE Review SET status = \? WHERE id = \?`).
		WithArgs(StatusApproved, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`SELECT AVG\(rating\), COUNT\(\*\) FROM Review WHERE store_id = \? AND status = \?`).
		WithArgs(5, StatusApproved).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(4.5, 2))

	mock.ExpectExec(`UPDATE Store SET rating = \?, review_count = \? WHERE id = \?`).
		WithArgs(4.5, 2, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, Moderate(11, StatusApproved))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModerate_InvalidStatus(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	assert.Error(t, Moderate(11, "maybe"))
}

func TestModerate_RejectionZeroesEmptyAggregate(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db.SetForTesting(mockDB)

	mock.ExpectQuery(`SELECT store_id FROM Review WHERE id = \?`).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"store_id"}).AddRow(5))

	mock.ExpectExec(`UPDATE Review SET status = \? WHERE id = \?`).
		WithArgs(StatusRejected, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// AVG over zero approved rows is NULL
	mock.ExpectQuery(`SELECT AVG\(rating\), COUNT\(\*\) FROM Review WHERE store_id = \? AND status = \?`).
		WithArgs(5, StatusApproved).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(nil, 0))

	mock.ExpectExec(`UPDATE Store SET rating = \?, review_count = \? WHERE id = \?`).
		WithArgs(0.0, 0, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, Moderate(11, StatusRejected))
	assert.NoError(t, mock.ExpectationsWereMet())
}
