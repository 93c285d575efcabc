// service содержит бизнес-логику auth-сервиса contacts-API:
// регистрацию/аутентификацию пользователей, выпуск/проверку токенов трёх видов
// (access/refresh/email) и подтверждение e-mail.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Конфигурация (секрет подписи, алгоритм, сроки жизни) неизменяема после
//     конструирования; глобального состояния нет.
//   - Ошибки возвращаются сентинелами и далее маппятся транспортом
//     на HTTP-статусы (см. комментарии к переменным ошибок ниже).
//   - Для access-токенов причина отказа намеренно не раскрывается: битая
//     подпись, истечение, чужой scope и неизвестный пользователь неотличимы
//     (единый ErrCouldNotValidate) — защита от перебора. Для refresh- и
//     email-токенов несовпадение scope отличимо от прочих отказов.
package service

import (
	"errors"
	"fmt"

	"github.com/dzvenyslavavovk/contacts-auth/internal/cache"
	"github.com/dzvenyslavavovk/contacts-auth/internal/config"
	"github.com/dzvenyslavavovk/contacts-auth/internal/storage"
	"github.com/dzvenyslavavovk/contacts-auth/internal/token"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Транспорт: 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailNotConfirmed — вход до подтверждения e-mail.
	// Транспорт: 401.
	ErrEmailNotConfirmed = errors.New("email not confirmed")

	// ErrEmailTaken — e-mail уже занят другим пользователем.
	// Транспорт: 409.
	ErrEmailTaken = errors.New("email already taken")

	// ErrCouldNotValidate — bearer-токен не прошёл проверку (подпись/структура/
	// срок/scope) либо субъект не найден; причины намеренно неотличимы.
	// Транспорт: 401 с фиксированным сообщением.
	ErrCouldNotValidate = errors.New("could not validate credentials")

	// ErrUnexpectedTokenScope — refresh- или email-токен предъявлен с чужим scope.
	// В отличие от access-пути это сообщение конкретное.
	// Транспорт: 401.
	ErrUnexpectedTokenScope = errors.New("invalid scope for token")

	// ErrInvalidRefreshToken — предъявленный refresh-токен не совпал
	// с последним выданным; сохранённый токен при этом сбрасывается.
	// Транспорт: 401.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrEmailTokenInvalid — токен подтверждения e-mail битый/просроченный.
	// Канал верификации — не bearer-аутентификация, поэтому класс ошибки иной.
	// Транспорт: 422.
	ErrEmailTokenInvalid = errors.New("invalid token for email verification")

	// ErrEmailAlreadyConfirmed — повторное подтверждение уже подтверждённого e-mail.
	// Транспорт: 200 с пояснением (не ошибка для клиента).
	ErrEmailAlreadyConfirmed = errors.New("email already confirmed")

	// ErrVerification — токен подтверждения валиден, но пользователя нет.
	// Транспорт: 400.
	ErrVerification = errors.New("verification error")

	// ErrInvalidEmail — e-mail имеет некорректный формат.
	// Транспорт: 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль короче минимальной длины.
	// Транспорт: 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой.
	// Транспорт: 400.
	ErrEmptyPassword = errors.New("password is empty")
)

// Service описывает бизнес-логику auth-сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
	codec   *token.Codec
	pcache  cache.PrincipalCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service; ошибка возможна только
// при неподдерживаемом алгоритме подписи в конфигурации.
func New(storage storage.Storage, cfg config.AuthConfig) (*Service, error) {
	const op = "service.New"

	codec, err := token.NewCodec(cfg.JWTSecret, cfg.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Service{
		storage: storage,
		cfg:     cfg,
		codec:   codec,
	}, nil
}

// SetPrincipalCache устанавливает кэш principal'ов (опционально).
func (s *Service) SetPrincipalCache(c cache.PrincipalCache) {
	s.pcache = c
}
