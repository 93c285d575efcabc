package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/dzvenyslavavovk/contacts-auth/internal/models"
	"github.com/dzvenyslavavovk/contacts-auth/internal/password"
	"github.com/dzvenyslavavovk/contacts-auth/internal/pkg/log"
	"github.com/dzvenyslavavovk/contacts-auth/internal/pkg/redact"
	"github.com/dzvenyslavavovk/contacts-auth/internal/storage"
	"github.com/dzvenyslavavovk/contacts-auth/internal/token"

	"github.com/google/uuid"
)

// RegisterUser регистрирует нового пользователя с неподтверждённым e-mail.
// Токен подтверждения выпускается отдельно (IssueEmailToken).
func (s *Service) RegisterUser(ctx context.Context, username, email, pw string) (*models.User, error) {
	const op = "service.auth.RegisterUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if err := validatePassword(pw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.storage.UserByEmail(ctx, normEmail)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.Hash(pw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(username),
		Email:        normEmail,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_registered",
		slog.String("op", op),
		slog.String("email", redact.Email(user.Email)),
	)

	return user, nil
}

// LoginUser выполняет вход по email+пароль и выдаёт пару токенов.
// Неизвестный e-mail и неверный пароль неотличимы (ErrInvalidCredentials);
// вход до подтверждения e-mail отклоняется отдельной ошибкой.
func (s *Service) LoginUser(ctx context.Context, email, pw string) (*models.TokenPair, error) {
	const op = "service.auth.LoginUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(pw) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !user.Confirmed {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailNotConfirmed)
	}

	ok, err := password.Verify(pw, user.PasswordHash)
	if err != nil {
		// Битый хэш в хранилище — внутренняя проблема, не 401.
		log.From(ctx).Error("password_hash_malformed",
			slog.String("op", op),
			slog.String("email", redact.Email(user.Email)),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// RefreshTokens обменивает refresh-токен на новую пару токенов того же субъекта.
//
// Маппинг отказов:
//   - scope != refresh_token -> ErrUnexpectedTokenScope;
//   - подпись/структура/срок -> ErrCouldNotValidate;
//   - несовпадение с последним выданным токеном -> сброс сохранённого
//     значения и ErrInvalidRefreshToken.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "service.auth.RefreshTokens"

	lg := log.From(ctx)

	claims, err := s.codec.Decode(refreshToken, token.ScopeRefresh)
	if err != nil {
		if errors.Is(err, token.ErrUnexpectedScope) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnexpectedTokenScope)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrCouldNotValidate)
	}

	user, err := s.storage.UserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrCouldNotValidate)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		lg.Warn("refresh_token_mismatch",
			slog.String("op", op),
			slog.String("email", redact.Email(user.Email)),
		)

		if err := s.storage.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidRefreshToken)
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// issueTokenPair выпускает пару access+refresh и запоминает refresh-токен
// в записи пользователя (справочное состояние для последующего обмена).
func (s *Service) issueTokenPair(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	const op = "service.auth.issueTokenPair"

	lg := log.From(ctx)

	now := time.Now().UTC()

	access, err := s.codec.Issue(user.Email, token.ScopeAccess, s.cfg.AccessTokenTTL)
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refresh, err := s.codec.Issue(user.Email, token.ScopeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		lg.Error("refresh_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateRefreshToken(ctx, user.ID, &refresh); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:     access,
		RefreshToken:    refresh,
		TokenType:       "bearer",
		AccessExpiresAt: now.Add(s.cfg.AccessTokenTTL),
	}, nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return strings.ToLower(email), nil
}

// validatePassword проверяет минимальные требования к паролю (длина >= 6).
func validatePassword(pw string) error {
	const op = "service.auth.validatePassword"

	if len(pw) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	if len([]rune(pw)) < 6 {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	return nil
}
