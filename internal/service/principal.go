package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dzvenyslavavovk/contacts-auth/internal/models"
	"github.com/dzvenyslavavovk/contacts-auth/internal/pkg/log"
	"github.com/dzvenyslavavovk/contacts-auth/internal/storage"
	"github.com/dzvenyslavavovk/contacts-auth/internal/token"
)

// CurrentUser разрешает principal по bearer access-токену.
//
// Любой отказ — битая подпись, структура, истечение, чужой scope, неизвестный
// пользователь — схлопывается в ErrCouldNotValidate: по ответу нельзя понять,
// существует ли e-mail и что именно не так с токеном.
//
// При сконфигурированном кэше выполняется read-through: попадание избавляет
// от похода в хранилище, промах заполняет кэш на срок жизни access-токена.
// Ошибки кэша не фатальны и только логируются.
func (s *Service) CurrentUser(ctx context.Context, bearerToken string) (*models.User, error) {
	const op = "service.principal.CurrentUser"

	lg := log.From(ctx)

	claims, err := s.codec.Decode(bearerToken, token.ScopeAccess)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrCouldNotValidate)
	}

	email := claims.Subject
	if email == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrCouldNotValidate)
	}

	if s.pcache != nil {
		cached, ok, cerr := s.pcache.Get(ctx, email)
		if cerr != nil {
			lg.Warn("principal_cache_get_failed",
				slog.String("op", op),
				slog.String("err", cerr.Error()),
			)
		}
		if ok {
			return cached, nil
		}
	}

	user, err := s.storage.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrCouldNotValidate)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.pcache != nil {
		if cerr := s.pcache.Set(ctx, user, s.cfg.AccessTokenTTL); cerr != nil {
			lg.Warn("principal_cache_set_failed",
				slog.String("op", op),
				slog.String("err", cerr.Error()),
			)
		}
	}

	return user, nil
}
