package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dzvenyslavavovk/contacts-auth/internal/models"
	"github.com/dzvenyslavavovk/contacts-auth/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SaveUser создает нового пользователя в БД.
func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage.postgres.SaveUser"

	query := `
		INSERT INTO users(id, username, email, password_hash, refresh_token, avatar, confirmed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.RefreshToken,
		user.Avatar,
		user.Confirmed,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserByEmail находит пользователя по email.
func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.UserByEmail"

	query := `
		SELECT id, username, email, password_hash, refresh_token, avatar, confirmed, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	return s.scanUser(ctx, op, query, email)
}

// UserByID находит пользователя по ID.
func (s *Storage) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.postgres.UserByID"

	query := `
		SELECT id, username, email, password_hash, refresh_token, avatar, confirmed, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return s.scanUser(ctx, op, query, id)
}

// UpdateRefreshToken запоминает последний выданный refresh-токен пользователя.
// token == nil сбрасывает сохранённое значение.
func (s *Storage) UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error {
	const op = "storage.postgres.UpdateRefreshToken"

	query := `
		UPDATE users
		SET refresh_token = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query, userID, token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ConfirmEmail помечает e-mail пользователя подтверждённым.
func (s *Storage) ConfirmEmail(ctx context.Context, email string) error {
	const op = "storage.postgres.ConfirmEmail"

	query := `
		UPDATE users
		SET confirmed = TRUE, updated_at = now()
		WHERE email = $1
	`

	tag, err := s.db.Exec(ctx, query, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// scanUser — общий разбор строки users в модель.
func (s *Storage) scanUser(ctx context.Context, op, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.RefreshToken,
		&user.Avatar,
		&user.Confirmed,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}
