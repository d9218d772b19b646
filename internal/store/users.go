package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eivindmo/vinlager/internal/model"
)

// CreateUser creates a new user for a phone number.
func CreateUser(ctx context.Context, db *sql.DB, phone, fullName, email string) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (phone, full_name, email) VALUES (?, ?, ?)`,
		phone, fullName, email,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	var fullName, email sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, phone, full_name, email, created_at, deleted_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Phone, &fullName, &email, &u.CreatedAt, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	u.FullName = fullName.String
	u.Email = email.String
	return u, nil
}

// GetUserByPhone returns the active user registered for a phone number.
func GetUserByPhone(ctx context.Context, db *sql.DB, phone string) (*model.User, error) {
	u := &model.User{}
	var fullName, email sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, phone, full_name, email, created_at, deleted_at
		 FROM users WHERE phone = ? AND deleted_at IS NULL`, phone,
	).Scan(&u.ID, &u.Phone, &fullName, &email, &u.CreatedAt, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by phone: %w", err)
	}
	u.FullName = fullName.String
	u.Email = email.String
	return u, nil
}

// EnsureUser returns the user for a phone number, creating one if none
// exists. OTP verification both registers and signs in.
func EnsureUser(ctx context.Context, db *sql.DB, phone string) (*model.User, error) {
	user, err := GetUserByPhone(ctx, db, phone)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	return CreateUser(ctx, db, phone, "", "")
}
