package search

import (
	"database/sql"
	"log"
	"time"

	"github.com/refill-spot/site/db"
)

// UserSearch represents one saved search query
type UserSearch struct {
	ID          int           `db:"id"`
	UserID      sql.NullInt64 `db:"user_id"` // invalid for anonymous searches
	QueryString string        `db:"query_string"`
	CreatedAt   time.Time     `db:"created_at"`
}

// TopSearch represents a popular search query with its count
type TopSearch struct {
	QueryString string `db:"query_string"`
	Count       int    `db:"count"`
}

// SaveUserSearch records a search query, anonymously when userID is invalid
func SaveUserSearch(userID sql.NullInt64, queryString string) error {
	_, err := db.Exec("INSERT INTO UserSearch (user_id, query_string) VALUES (?, ?)", userID, queryString)
	if err != nil {
		log.Printf("Error saving user search: %v", err)
		return err
	}
	return nil
}

// GetRecentUserSearches returns a list of recent search queries for a user
func GetRecentUserSearches(userID int, limit int) ([]UserSearch, error) {
	rows, err := db.Query("SELECT id, user_id, query_string, created_at FROM UserSearch WHERE user_id = ? ORDER BY created_at DESC LIMIT ?", userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []UserSearch
	for rows.Next() {
		var s UserSearch
		if err := rows.Scan(&s.ID, &s.UserID, &s.QueryString, &s.CreatedAt); err != nil {
			return nil, err
		}
		searches = append(searches, s)
	}
	return searches, rows.Err()
}

// DeleteUserSearch deletes a specific user search entry
func DeleteUserSearch(searchID int, userID int) error {
	_, err := db.Exec("DELETE FROM UserSearch WHERE id = ? AND user_id = ?", searchID, userID)
	if err != nil {
		log.Printf("Error deleting user search: %v", err)
		return err
	}
	return nil
}

// DeleteAllUserSearches deletes all search entries for a user
func DeleteAllUserSearches(userID int) error {
	_, err := db.Exec("DELETE FROM UserSearch WHERE user_id = ?", userID)
	if err != nil {
		log.Printf("Error deleting all user searches: %v", err)
		return err
	}
	return nil
}

// GetTopSearches returns the most frequent search queries across all users
func GetTopSearches(limit int) ([]TopSearch, error) {
	rows, err := db.Query("SELECT query_string, COUNT(*) as count FROM UserSearch GROUP BY query_string ORDER BY count DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topSearches []TopSearch
	for rows.Next() {
		var s TopSearch
		if err := rows.Scan(&s.QueryString, &s.Count); err != nil {
			return nil, err
		}
		topSearches = append(topSearches, s)
	}
	return topSearches, rows.Err()
}
