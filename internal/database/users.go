package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-applybot-automation/internal/models"

	"github.com/doug-martin/goqu/v9"
)

// CreateUser inserts a new user row. The email must be unique; violations
// surface as a wrapped constraint error.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	record := goqu.Record{
		"id":            user.ID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
	}
	if user.Settings != nil {
		record["settings"] = string(user.Settings)
	}

	query, args, err := builder.Insert("users").Prepared(true).Rows(record).ToSQL()
	if err != nil {
		return fmt.Errorf("build user insert: %w", err)
	}

	if err := s.execute(ctx, query, args...); err != nil {
		return fmt.Errorf("create user %s: %w", user.ID, err)
	}
	return nil
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUserWhere(ctx, goqu.C("id").Eq(id), id)
}

// GetUserByEmail retrieves a user by their unique email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUserWhere(ctx, goqu.C("email").Eq(email), email)
}

func (s *Store) getUserWhere(ctx context.Context, cond goqu.Expression, key string) (*models.User, error) {
	query, args, err := builder.From("users").Prepared(true).
		Select("id", "email", "password_hash", "created_at", "last_login", "settings").
		Where(cond).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build user select: %w", err)
	}

	var user models.User
	err = s.withConn(ctx, func(conn *sql.Conn) error {
		var lastLogin sql.NullTime
		var settings sql.NullString

		row := conn.QueryRowContext(ctx, query, args...)
		if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &lastLogin, &settings); err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("user %s: %w", key, ErrNotFound)
			}
			return fmt.Errorf("scan user: %w", err)
		}

		if lastLogin.Valid {
			user.LastLogin = &lastLogin.Time
		}
		if settings.Valid {
			user.Settings = []byte(settings.String)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLastLogin stamps the user's last_login with the current time.
func (s *Store) UpdateLastLogin(ctx context.Context, id string) error {
	query, args, err := builder.Update("users").Prepared(true).
		Set(goqu.Record{"last_login": time.Now().UTC()}).
		Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build last_login update: %w", err)
	}

	if err := s.execute(ctx, query, args...); err != nil {
		return fmt.Errorf("update last login for %s: %w", id, err)
	}
	return nil
}
