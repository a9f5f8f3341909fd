package user

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/refill-spot/site/db"
)

type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	PasswordSalt string
	CreatedAt    time.Time
	IsAdmin      bool
	DeletedAt    *time.Time
}

// IsArchived returns true if the user has been archived
func (u User) IsArchived() bool {
	return u.DeletedAt != nil
}

// CreateUser inserts a new user into the database
func CreateUser(name, email, passwordHash, passwordSalt string) (int, error) {
	res, err := db.Exec(
		`INSERT INTO User (name, email, password_hash, password_salt) VALUES (?, ?, ?, ?)`,
		name, email, passwordHash, passwordSalt)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	var deletedAt sql.NullTime
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.PasswordSalt,
		&u.CreatedAt, &u.IsAdmin, &deletedAt)
	if err != nil {
		return User{}, err
	}
	if deletedAt.Valid {
		u.DeletedAt = &deletedAt.Time
	}
	return u, nil
}

const userColumns = "id, name, email, password_hash, password_salt, created_at, is_admin, deleted_at"

// GetUser fetches a user by ID
func GetUser(id int) (User, error) {
	row := db.QueryRow("SELECT "+userColumns+" FROM User WHERE id = ?", id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return User{}, fmt.Errorf("user %d not found", id)
	}
	return u, err
}

// GetUserByEmail fetches a user by email address (login identifier)
func GetUserByEmail(email string) (User, error) {
	row := db.QueryRow("SELECT "+userColumns+" FROM User WHERE email = ?", email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return User{}, fmt.Errorf("user %s not found", email)
	}
	return u, err
}

// UpdatePassword replaces the stored password hash and salt for a user
func UpdatePassword(userID int, passwordHash, passwordSalt string) error {
	_, err := db.Exec(`UPDATE User SET password_hash = ?, password_salt = ? WHERE id = ?`,
		passwordHash, passwordSalt, userID)
	return err
}

// ArchiveUser soft-deletes a user account
func ArchiveUser(userID int) error {
	_, err := db.Exec(`UPDATE User SET deleted_at = CURRENT_TIMESTAMP WHERE id = ?`, userID)
	return err
}

// GetAllUsers returns all non-archived users for the admin dashboard
func GetAllUsers() ([]User, error) {
	rows, err := db.Query("SELECT " + userColumns + " FROM User WHERE deleted_at IS NULL ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var deletedAt sql.NullTime
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.PasswordSalt,
			&u.CreatedAt, &u.IsAdmin, &deletedAt); err != nil {
			return nil, err
		}
		if deletedAt.Valid {
			u.DeletedAt = &deletedAt.Time
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
