// cache реализует необязательный side-channel кэш для разрешённых principal'ов
// поверх Redis (get/set/expire). Корректность сервиса от кэша не зависит:
// при его отсутствии каждый запрос идёт в основное хранилище.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/dzvenyslavavovk/contacts-auth/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=cache.go -destination=../../mocks/mock_cache.go -package=mocks

// PrincipalCache — минимальный контракт кэша разрешённых пользователей.
// В кэш намеренно не попадают хэш пароля и refresh-токен.
type PrincipalCache interface {
	// Get возвращает запись и признак её наличия в кэше.
	Get(ctx context.Context, email string) (*models.User, bool, error)
	// Set сохраняет запись с TTL (обычно срок жизни access-токена).
	Set(ctx context.Context, user *models.User, ttl time.Duration) error
	// Delete удаляет запись (инвалидация после изменения пользователя).
	Delete(ctx context.Context, email string) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "auth:principal:".
func NewRedisCache(redisURL, prefix string) (PrincipalCache, error) {
	if prefix == "" {
		prefix = "auth:principal:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(email string) string { return c.prefix + email }

// Храним как Redis Hash с полями: id, username, email, avatar, conf (0/1),
// created/updated (unix).
func (c *redisCache) Get(ctx context.Context, email string) (*models.User, bool, error) {
	m, err := c.rdb.HGetAll(ctx, c.key(email)).Result()
	if err != nil {
		return nil, false, err
	}

	if len(m) == 0 {
		return nil, false, nil
	}

	id, err := uuid.Parse(m["id"])
	if err != nil {
		return nil, false, err
	}

	created, err := strconv.ParseInt(m["created"], 10, 64)
	if err != nil {
		return nil, false, err
	}

	updated, err := strconv.ParseInt(m["updated"], 10, 64)
	if err != nil {
		return nil, false, err
	}

	return &models.User{
		ID:        id,
		Username:  m["username"],
		Email:     m["email"],
		Avatar:    m["avatar"],
		Confirmed: m["conf"] == "1",
		CreatedAt: time.Unix(created, 0).UTC(),
		UpdatedAt: time.Unix(updated, 0).UTC(),
	}, true, nil
}

func (c *redisCache) Set(ctx context.Context, user *models.User, ttl time.Duration) error {
	kv := map[string]string{
		"id":       user.ID.String(),
		"username": user.Username,
		"email":    user.Email,
		"avatar":   user.Avatar,
		"conf":     boolTo01(user.Confirmed),
		"created":  strconv.FormatInt(user.CreatedAt.Unix(), 10),
		"updated":  strconv.FormatInt(user.UpdatedAt.Unix(), 10),
	}

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, c.key(user.Email), kv)
	pipe.Expire(ctx, c.key(user.Email), ttl)

	_, err := pipe.Exec(ctx)
	return err
}

func (c *redisCache) Delete(ctx context.Context, email string) error {
	return c.rdb.Del(ctx, c.key(email)).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }

func boolTo01(b bool) string {
	if b {
		return "1"
	}

	return "0"
}
