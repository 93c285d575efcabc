package models

import (
	"time"

	"github.com/google/uuid"
)

// User — учётная запись пользователя contacts-API (principal).
//
// Описание:
//   - PasswordHash — bcrypt-хэш пароля; открытый пароль нигде не хранится и не логируется;
//   - RefreshToken — последний выданный refresh-токен (nil, если токен не выдавался
//     или был сброшен); хранится как справочное состояние для обмена refresh-токена;
//   - Confirmed — подтверждён ли e-mail пользователя.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	RefreshToken *string
	Avatar       string
	Confirmed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
