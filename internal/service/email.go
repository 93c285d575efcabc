package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dzvenyslavavovk/contacts-auth/internal/pkg/log"
	"github.com/dzvenyslavavovk/contacts-auth/internal/pkg/redact"
	"github.com/dzvenyslavavovk/contacts-auth/internal/storage"
	"github.com/dzvenyslavavovk/contacts-auth/internal/token"
)

// IssueEmailToken выпускает токен подтверждения e-mail.
// Доставку письма сервис не выполняет: токен возвращается вызывающему.
func (s *Service) IssueEmailToken(ctx context.Context, email string) (string, error) {
	const op = "service.email.IssueEmailToken"

	normEmail, err := validateEmail(email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	t, err := s.codec.Issue(normEmail, token.ScopeEmail, s.cfg.EmailTokenTTL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}

// EmailFromToken возвращает e-mail из токена подтверждения.
//
// Маппинг отказов:
//   - scope != email_token -> ErrUnexpectedTokenScope (401);
//   - подпись/структура/срок -> ErrEmailTokenInvalid (422): ссылка из письма —
//     не bearer-канал, поэтому класс ошибки отличается от access-пути.
func (s *Service) EmailFromToken(ctx context.Context, emailToken string) (string, error) {
	const op = "service.email.EmailFromToken"

	claims, err := s.codec.Decode(emailToken, token.ScopeEmail)
	if err != nil {
		if errors.Is(err, token.ErrUnexpectedScope) {
			return "", fmt.Errorf("%s: %w", op, ErrUnexpectedTokenScope)
		}

		return "", fmt.Errorf("%s: %w", op, ErrEmailTokenInvalid)
	}

	return claims.Subject, nil
}

// ConfirmEmail подтверждает e-mail по токену подтверждения.
func (s *Service) ConfirmEmail(ctx context.Context, emailToken string) error {
	const op = "service.email.ConfirmEmail"

	lg := log.From(ctx)

	email, err := s.EmailFromToken(ctx, emailToken)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.storage.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrVerification)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if user.Confirmed {
		return fmt.Errorf("%s: %w", op, ErrEmailAlreadyConfirmed)
	}

	if err := s.storage.ConfirmEmail(ctx, email); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrVerification)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if s.pcache != nil {
		if cerr := s.pcache.Delete(ctx, email); cerr != nil {
			lg.Warn("principal_cache_delete_failed",
				slog.String("op", op),
				slog.String("err", cerr.Error()),
			)
		}
	}

	lg.Info("email_confirmed",
		slog.String("op", op),
		slog.String("email", redact.Email(email)),
	)

	return nil
}

// RequestEmailToken выпускает токен подтверждения для существующего
// неподтверждённого пользователя.
//
// Анти-перебор: для неизвестного e-mail возвращается пустой токен без ошибки —
// ответ транспорта одинаков для существующих и несуществующих адресов.
func (s *Service) RequestEmailToken(ctx context.Context, email string) (string, error) {
	const op = "service.email.RequestEmailToken"

	normEmail, err := validateEmail(email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if user.Confirmed {
		return "", fmt.Errorf("%s: %w", op, ErrEmailAlreadyConfirmed)
	}

	t, err := s.codec.Issue(user.Email, token.ScopeEmail, s.cfg.EmailTokenTTL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}
