package storage

import (
	"context"
	"errors"

	"github.com/dzvenyslavavovk/contacts-auth/internal/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=storage.go -destination=../../mocks/mock_storage.go -package=mocks

var (
	// ErrNotFound — пользователь не найден.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создает нового пользователя в БД.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// UpdateRefreshToken запоминает последний выданный refresh-токен
	// (nil сбрасывает сохранённый токен).
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error
	// ConfirmEmail помечает e-mail пользователя подтверждённым.
	ConfirmEmail(ctx context.Context, email string) error
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	Close()
}
