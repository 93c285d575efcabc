// token реализует кодек подписанных токенов сервиса: выпуск и разбор
// компактных JWT трёх видов (access/refresh/email) с обязательным клеймом scope.
//
// Основные аспекты:
//   - Кодек не хранит изменяемого состояния: секрет и алгоритм задаются один раз
//     при создании, экземпляр безопасен для конкурентного использования;
//   - Вид токена кодируется клеймом scope и проверяется при разборе: Decode
//     никогда не выводит вид сам — вызывающий всегда указывает ожидаемый scope;
//   - Срок действия проверяется по настенным часам без допуска на рассинхронизацию;
//   - Сырые ошибки jwt-библиотеки наружу не выходят — Decode возвращает
//     только ошибки-сентинелы этого пакета.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSignature — подпись токена не сходится с секретом сервиса.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrMalformedToken — строка не разбирается как компактный JWT
	// (битая структура/кодировка сегментов/клеймов).
	ErrMalformedToken = errors.New("malformed token")

	// ErrExpiredToken — срок действия токена истёк (exp в прошлом).
	ErrExpiredToken = errors.New("token expired")

	// ErrUnexpectedScope — клейм scope не совпал с ожидаемым видом токена.
	ErrUnexpectedScope = errors.New("unexpected token scope")

	// ErrUnknownAlgorithm — в конфигурации указан неподдерживаемый алгоритм подписи.
	ErrUnknownAlgorithm = errors.New("unknown signing algorithm")
)

// Scope — вид токена; кодируется одноимённым клеймом
// и проверяется при каждом разборе.
type Scope string

const (
	// ScopeAccess — bearer-токен доступа к API.
	ScopeAccess Scope = "access_token"
	// ScopeRefresh — токен обмена на новую пару.
	ScopeRefresh Scope = "refresh_token"
	// ScopeEmail — токен подтверждения e-mail.
	ScopeEmail Scope = "email_token"
)

// Lifetime возвращает срок жизни по умолчанию для данного вида токена.
// Используется кодеком, когда вызывающий не задал срок явно.
func (s Scope) Lifetime() time.Duration {
	if s == ScopeAccess {
		return 15 * time.Minute
	}

	return 7 * 24 * time.Hour
}

// Claims — полезная нагрузка токена после успешного разбора.
type Claims struct {
	// Subject — стабильный идентификатор пользователя (e-mail).
	Subject string
	// Scope — вид токена.
	Scope Scope
	// IssuedAt — момент выпуска (UTC).
	IssuedAt time.Time
	// ExpiresAt — момент истечения (UTC).
	ExpiresAt time.Time
}

// scopedClaims — wire-представление клеймов: sub/iat/exp из RegisteredClaims
// плюс обязательный scope.
type scopedClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Codec выпускает и разбирает подписанные токены.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
}

// NewCodec создаёт кодек с HMAC-алгоритмом из конфигурации (HS256/HS384/HS512).
func NewCodec(secret, algorithm string) (*Codec, error) {
	const op = "token.NewCodec"

	if secret == "" {
		return nil, fmt.Errorf("%s: empty signing secret", op)
	}

	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("%s: %q: %w", op, algorithm, ErrUnknownAlgorithm)
	}

	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%s: %q: %w", op, algorithm, ErrUnknownAlgorithm)
	}

	return &Codec{
		secret: []byte(secret),
		method: method,
	}, nil
}

// Issue выпускает токен вида scope для субъекта sub.
// Клейм iat всегда ставится по текущему времени; exp = iat + ttl.
// При ttl == 0 действует срок по умолчанию для данного вида (Scope.Lifetime).
func (c *Codec) Issue(sub string, scope Scope, ttl time.Duration) (string, error) {
	const op = "token.Issue"

	if ttl == 0 {
		ttl = scope.Lifetime()
	}

	now := time.Now().UTC()
	claims := scopedClaims{
		Scope: string(scope),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// Decode проверяет подпись, структуру и срок действия токена и сверяет scope
// с ожидаемым видом want.
//
// Ошибки:
//   - ErrMalformedToken — строка не является корректным JWT;
//   - ErrInvalidSignature — подпись неверна (в т.ч. подмена алгоритма);
//   - ErrExpiredToken — exp в прошлом (без допуска);
//   - ErrUnexpectedScope — токен выпущен для другого вида операций.
func (c *Codec) Decode(raw string, want Scope) (Claims, error) {
	const op = "token.Decode"

	parsed, err := jwt.ParseWithClaims(raw, &scopedClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != c.method.Alg() {
				return nil, ErrInvalidSignature
			}

			return c.secret, nil
		},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, fmt.Errorf("%s: %w", op, ErrMalformedToken)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrInvalidSignature):
			return Claims{}, fmt.Errorf("%s: %w", op, ErrInvalidSignature)
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, fmt.Errorf("%s: %w", op, ErrExpiredToken)
		default:
			return Claims{}, fmt.Errorf("%s: %w", op, ErrMalformedToken)
		}
	}

	sc, ok := parsed.Claims.(*scopedClaims)
	if !ok || !parsed.Valid {
		return Claims{}, fmt.Errorf("%s: %w", op, ErrMalformedToken)
	}

	if Scope(sc.Scope) != want {
		return Claims{}, fmt.Errorf("%s: %w", op, ErrUnexpectedScope)
	}

	out := Claims{
		Subject: sc.Subject,
		Scope:   Scope(sc.Scope),
	}
	if sc.IssuedAt != nil {
		out.IssuedAt = sc.IssuedAt.Time.UTC()
	}
	if sc.ExpiresAt != nil {
		out.ExpiresAt = sc.ExpiresAt.Time.UTC()
	}

	return out, nil
}
