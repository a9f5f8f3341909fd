package announcement

import (
	"database/sql"
	"time"

	"github.com/refill-spot/site/db"
)

// Announcement is an admin-authored notice shown to all users. Pinned
// announcements sort before the rest.
type Announcement struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Create inserts a new announcement
func Create(title, body string, pinned bool) (int, error) {
	res, err := db.Exec(`INSERT INTO Announcement (title, body, pinned) VALUES (?, ?, ?)`,
		title, body, pinned)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

// Update rewrites an announcement's title, body and pinned flag
func Update(id int, title, body string, pinned bool) error {
	_, err := db.Exec(`UPDATE Announcement SET title = ?, body = ?, pinned = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		title, body, pinned, id)
	return err
}

// Delete removes an announcement
func Delete(id int) error {
	_, err := db.Exec(`DELETE FROM Announcement WHERE id = ?`, id)
	return err
}

// Get fetches one announcement by ID
func Get(id int) (Announcement, error) {
	var a Announcement
	err := db.QueryRow(`SELECT id, title, body, pinned, created_at, updated_at FROM Announcement WHERE id = ?`, id).
		Scan(&a.ID, &a.Title, &a.Body, &a.Pinned, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// List returns all announcements, pinned first, newest first within each group
func List() ([]Announcement, error) {
	rows, err := db.Query(`SELECT id, title, body, pinned, created_at, updated_at FROM Announcement
		ORDER BY pinned DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnnouncements(rows)
}

func scanAnnouncements(rows *sql.Rows) ([]Announcement, error) {
	var announcements []Announcement
	for rows.Next() {
		var a Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Pinned, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}
