package store

import (
	"database/sql"

	"github.com/refill-spot/site/db"
)

// FavoriteStore marks a store as a favorite for a user
func FavoriteStore(userID, storeID int) error {
	_, err := db.Exec(`INSERT OR IGNORE INTO FavoriteStore (user_id, store_id) VALUES (?, ?)`, userID, storeID)
	return err
}

// UnfavoriteStore removes a favorite for a store by a user
func UnfavoriteStore(userID, storeID int) error {
	_, err := db.Exec(`DELETE FROM FavoriteStore WHERE user_id = ? AND store_id = ?`, userID, storeID)
	return err
}

// IsStoreFavoritedByUser checks if a user has favorited a store
func IsStoreFavoritedByUser(userID, storeID int) (bool, error) {
	row := db.QueryRow(`SELECT 1 FROM FavoriteStore WHERE user_id = ? AND store_id = ?`, userID, storeID)
	var exists int
	err := row.Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// GetFavoriteStoreIDs returns the IDs of stores favorited by the user,
// most recently favorited first
func GetFavoriteStoreIDs(userID int) ([]int, error) {
	rows, err := db.Query(`SELECT store_id FROM FavoriteStore WHERE user_id = ? ORDER BY favorited_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var storeIDs []int
	for rows.Next() {
		var storeID int
		if err := rows.Scan(&storeID); err != nil {
			continue
		}
		storeIDs = append(storeIDs, storeID)
	}
	return storeIDs, nil
}

// GetStoresByIDs fetches stores preserving the order of the given IDs
func GetStoresByIDs(ids []int) ([]Store, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	byID := make(map[int]Store, len(ids))
	for _, id := range ids {
		s, err := GetStore(id)
		if err == sql.ErrNoRows {
			continue // archived or gone; skip rather than fail the page
		}
		if err != nil {
			return nil, err
		}
		byID[id] = s
	}

	stores := make([]Store, 0, len(byID))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			stores = append(stores, s)
		}
	}
	return stores, nil
}
