package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/dzvenyslavavovk/contacts-auth/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты кэша principal'ов:
// - поднимают реальный Redis через testcontainers-go (образ redis:7-alpine);
// - проверяют round-trip Get/Set/Delete, TTL и отсутствие чувствительных полей.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/cache -v -race -count=1

// startRedis — поднимает временный Redis и возвращает кэш и функцию очистки.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startRedis(t *testing.T) (PrincipalCache, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")

	pc, err := NewRedisCache(fmt.Sprintf("redis://%s:%s/0", host, port.Port()), "")
	require.NoError(t, err)

	cleanup := func() {
		_ = pc.Close()
		_ = c.Terminate(context.Background())
	}
	return pc, cleanup
}

func cachedUser() *models.User {
	now := time.Now().Truncate(time.Second).UTC()
	return &models.User{
		ID:           uuid.New(),
		Username:     "tester",
		Email:        "user@example.com",
		PasswordHash: "hash",
		Avatar:       "https://example.com/avatar.png",
		Confirmed:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// TestIntegration_Cache_RoundTrip — Set/Get с полным набором кэшируемых полей.
// Хэш пароля и refresh-токен в кэш не попадают.
func TestIntegration_Cache_RoundTrip(t *testing.T) {
	pc, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	u := cachedUser()

	require.NoError(t, pc.Set(ctx, u, time.Minute))

	got, ok, err := pc.Get(ctx, u.Email)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, u.ID, got.ID)
	require.Equal(t, u.Username, got.Username)
	require.Equal(t, u.Email, got.Email)
	require.Equal(t, u.Avatar, got.Avatar)
	require.Equal(t, u.Confirmed, got.Confirmed)
	require.Equal(t, u.CreatedAt, got.CreatedAt)
	require.Equal(t, u.UpdatedAt, got.UpdatedAt)

	// Чувствительные поля в кэше отсутствуют.
	require.Empty(t, got.PasswordHash)
	require.Nil(t, got.RefreshToken)
}

// TestIntegration_Cache_Miss — отсутствие записи не является ошибкой.
func TestIntegration_Cache_Miss(t *testing.T) {
	pc, cleanup := startRedis(t)
	defer cleanup()

	got, ok, err := pc.Get(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, got)
}

// TestIntegration_Cache_Delete — инвалидация записи.
func TestIntegration_Cache_Delete(t *testing.T) {
	pc, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	u := cachedUser()

	require.NoError(t, pc.Set(ctx, u, time.Minute))
	require.NoError(t, pc.Delete(ctx, u.Email))

	_, ok, err := pc.Get(ctx, u.Email)
	require.NoError(t, err)
	require.False(t, ok)
}

// TestIntegration_Cache_TTLExpires — запись исчезает после TTL.
func TestIntegration_Cache_TTLExpires(t *testing.T) {
	pc, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	u := cachedUser()

	require.NoError(t, pc.Set(ctx, u, time.Second))

	time.Sleep(1500 * time.Millisecond)

	_, ok, err := pc.Get(ctx, u.Email)
	require.NoError(t, err)
	require.False(t, ok)
}

// TestNewRedisCache_BadURL — некорректный URL отклоняется на старте.
func TestNewRedisCache_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisCache("not-a-redis-url", "")
	require.Error(t, err)
}
