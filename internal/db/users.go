package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"linkshare/internal/models"
)

// CreateUser inserts a user with a fresh id. The password must already be hashed.
func (d *DB) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	query := d.x.Rebind(`INSERT INTO users (id, email, password) VALUES (?, ?, ?)`)

	id, err := d.allocate("users", func(id string) error {
		_, err := d.x.ExecContext(ctx, query, id, email, passwordHash)
		return err
	})
	if err != nil {
		if uniqueViolation(err) == keyUserEmail {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{ID: id, Email: email, PasswordHash: passwordHash}, nil
}

// GetUserByEmail returns the user with the given email, including the password hash.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := d.x.GetContext(ctx, &user, d.x.Rebind(`SELECT id, email, password FROM users WHERE email = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID returns the user with the given id.
func (d *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := d.x.GetContext(ctx, &user, d.x.Rebind(`SELECT id, email, password FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListOtherUsers returns every user except excludeID, ordered by email.
// Password hashes are not selected.
func (d *DB) ListOtherUsers(ctx context.Context, excludeID string) ([]models.User, error) {
	users := []models.User{}
	err := d.x.SelectContext(ctx, &users,
		d.x.Rebind(`SELECT id, email FROM users WHERE id <> ? ORDER BY email`), excludeID)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user together with their links and every share
// granted to or on them.
func (d *DB) DeleteUser(ctx context.Context, id string) error {
	result, err := d.x.ExecContext(ctx, d.x.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
