package review

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/refill-spot/site/db"
	"github.com/refill-spot/site/store"
)

// Moderation status constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Review is one user's rating and comment for a store. Reviews enter the
// system as pending and only count toward the store's aggregate rating once
// an admin approves them.
type Review struct {
	ID        int       `json:"id"`
	StoreID   int       `json:"store_id"`
	UserID    int       `json:"user_id"`
	UserName  string    `json:"user_name"` // joined for display
	Rating    int       `json:"rating"`    // 1..5
	Comment   string    `json:"comment"`
	Images    string    `json:"images"` // JSON array of image keys
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AddReview inserts a pending review for a store
func AddReview(storeID, userID, rating int, comment, images string) (int, error) {
	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("rating %d out of range", rating)
	}
	res, err := db.Exec(`INSERT INTO Review (store_id, user_id, rating, comment, images, status)
		VALUES (?, ?, ?, ?, ?, ?)`, storeID, userID, rating, comment, images, StatusPending)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

const reviewColumns = `r.id, r.store_id, r.user_id, u.name, r.rating, r.comment, r.images, r.status, r.created_at`

func scanReviews(rows *sql.Rows) ([]Review, error) {
	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.StoreID, &r.UserID, &r.UserName, &r.Rating,
			&r.Comment, &r.Images, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// GetApprovedByStore returns a store's approved reviews, newest first
func GetApprovedByStore(storeID int) ([]Review, error) {
	rows, err := db.Query(`SELECT `+reviewColumns+` FROM Review r
		JOIN User u ON u.id = r.user_id
		WHERE r.store_id = ? AND r.status = ?
		ORDER BY r.created_at DESC`, storeID, StatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

// GetByUser returns every review a user has written, newest first
func GetByUser(userID int) ([]Review, error) {
	rows, err := db.Query(`SELECT `+reviewColumns+` FROM Review r
		JOIN User u ON u.id = r.user_id
		WHERE r.user_id = ?
		ORDER BY r.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

// GetPending returns all reviews awaiting moderation, oldest first so the
// queue is worked in arrival order
func GetPending() ([]Review, error) {
	rows, err := db.Query(`SELECT `+reviewColumns+` FROM Review r
		JOIN User u ON u.id = r.user_id
		WHERE r.status = ?
		ORDER BY r.created_at ASC`, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

// Moderate sets a review's status and refreshes the store's aggregate rating
func Moderate(reviewID int, status string) error {
	if status != StatusApproved && status != StatusRejected {
		return fmt.Errorf("invalid moderation status %q", status)
	}

	var storeID int
	if err := db.QueryRow(`SELECT store_id FROM Review WHERE id = ?`, reviewID).Scan(&storeID); err != nil {
		return err
	}

	if _, err := db.Exec(`UPDATE Review SET status = ? WHERE id = ?`, status, reviewID); err != nil {
		return err
	}

	return refreshAggregate(storeID)
}

// Delete removes a review owned by the given user and refreshes aggregates
func Delete(reviewID, userID int) error {
	var storeID int
	if err := db.QueryRow(`SELECT store_id FROM Review WHERE id = ? AND user_id = ?`,
		reviewID, userID).Scan(&storeID); err != nil {
		return err
	}

	if _, err := db.Exec(`DELETE FROM Review WHERE id = ? AND user_id = ?`, reviewID, userID); err != nil {
		return err
	}

	return refreshAggregate(storeID)
}

// refreshAggregate recomputes a store's average rating and review count from
// its approved reviews and writes them onto the store row.
func refreshAggregate(storeID int) error {
	var avg sql.NullFloat64
	var count int
	err := db.QueryRow(`SELECT AVG(rating), COUNT(*) FROM Review WHERE store_id = ? AND status = ?`,
		storeID, StatusApproved).Scan(&avg, &count)
	if err != nil {
		return err
	}

	rating := 0.0
	if avg.Valid {
		rating = avg.Float64
	}
	if err := store.SetAggregateRating(storeID, rating, count); err != nil {
		log.Printf("[review] failed to update aggregate for store %d: %v", storeID, err)
		return err
	}
	return nil
}
