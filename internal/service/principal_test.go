package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dzvenyslavavovk/contacts-auth/internal/storage"
	"github.com/dzvenyslavavovk/contacts-auth/internal/token"
	"github.com/dzvenyslavavovk/contacts-auth/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestCurrentUser_OK(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(t)
	user := confirmedUser(t, "a@b.com", "p@ss1234")

	access, err := svc.codec.Issue("a@b.com", token.ScopeAccess, 0)
	require.NoError(t, err)

	st.EXPECT().UserByEmail(gomock.Any(), "a@b.com").Return(user, nil)

	got, err := svc.CurrentUser(context.Background(), access)
	require.NoError(t, err)
	require.Equal(t, user, got)
}

// Любая причина отказа на access-пути схлопывается в один и тот же ответ.
func TestCurrentUser_OpaqueRejection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token func(t *testing.T, svc *Service) string
	}{
		{
			name: "refresh token instead of access",
			token: func(t *testing.T, svc *Service) string {
				raw, err := svc.codec.Issue("a@b.com", token.ScopeRefresh, 0)
				require.NoError(t, err)
				return raw
			},
		},
		{
			name: "email token instead of access",
			token: func(t *testing.T, svc *Service) string {
				raw, err := svc.codec.Issue("a@b.com", token.ScopeEmail, 0)
				require.NoError(t, err)
				return raw
			},
		},
		{
			name: "expired",
			token: func(t *testing.T, svc *Service) string {
				raw, err := svc.codec.Issue("a@b.com", token.ScopeAccess, -time.Second)
				require.NoError(t, err)
				return raw
			},
		},
		{
			name: "tampered signature",
			token: func(t *testing.T, svc *Service) string {
				raw, err := svc.codec.Issue("a@b.com", token.ScopeAccess, 0)
				require.NoError(t, err)

				// Портим первый символ подписи, оставаясь в base64url-алфавите.
				i := strings.LastIndexByte(raw, '.') + 1
				b := []byte(raw)
				if b[i] != 'A' {
					b[i] = 'A'
				} else {
					b[i] = 'B'
				}
				return string(b)
			},
		},
		{
			name: "empty subject",
			token: func(t *testing.T, svc *Service) string {
				raw, err := svc.codec.Issue("", token.ScopeAccess, 0)
				require.NoError(t, err)
				return raw
			},
		},
		{
			name:  "garbage",
			token: func(*testing.T, *Service) string { return "garbage" },
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newTestService(t)

			_, err := svc.CurrentUser(context.Background(), tc.token(t, svc))
			require.Error(t, err)
			require.ErrorIs(t, err, ErrCouldNotValidate)
			// Scope-ошибка наружу не просачивается даже в обёртке.
			require.NotErrorIs(t, err, ErrUnexpectedTokenScope)
			require.False(t, strings.Contains(err.Error(), "scope"))
		})
	}
}

func TestCurrentUser_UnknownSubject(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(t)

	access, err := svc.codec.Issue("ghost@b.com", token.ScopeAccess, 0)
	require.NoError(t, err)

	st.EXPECT().UserByEmail(gomock.Any(), "ghost@b.com").Return(nil, storage.ErrNotFound)

	_, err = svc.CurrentUser(context.Background(), access)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrCouldNotValidate)
}

func TestCurrentUser_StorageError_Propagates(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(t)
	dbErr := errors.New("connection reset")

	access, err := svc.codec.Issue("a@b.com", token.ScopeAccess, 0)
	require.NoError(t, err)

	st.EXPECT().UserByEmail(gomock.Any(), "a@b.com").Return(nil, dbErr)

	_, err = svc.CurrentUser(context.Background(), access)
	require.Error(t, err)
	// Инфраструктурная ошибка не маскируется под отказ аутентификации.
	require.ErrorIs(t, err, dbErr)
	require.NotErrorIs(t, err, ErrCouldNotValidate)
}

func TestCurrentUser_CacheHit_SkipsStorage(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	user := confirmedUser(t, "a@b.com", "p@ss1234")

	ctrl := gomock.NewController(t)
	pc := mocks.NewMockPrincipalCache(ctrl)
	svc.SetPrincipalCache(pc)

	access, err := svc.codec.Issue("a@b.com", token.ScopeAccess, 0)
	require.NoError(t, err)

	// Попадание в кэш: хранилище не трогаем (на MockStorage нет ожиданий).
	pc.EXPECT().Get(gomock.Any(), "a@b.com").Return(user, true, nil)

	got, err := svc.CurrentUser(context.Background(), access)
	require.NoError(t, err)
	require.Equal(t, user, got)
}

func TestCurrentUser_CacheMiss_FillsCache(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(t)
	user := confirmedUser(t, "a@b.com", "p@ss1234")

	ctrl := gomock.NewController(t)
	pc := mocks.NewMockPrincipalCache(ctrl)
	svc.SetPrincipalCache(pc)

	access, err := svc.codec.Issue("a@b.com", token.ScopeAccess, 0)
	require.NoError(t, err)

	pc.EXPECT().Get(gomock.Any(), "a@b.com").Return(nil, false, nil)
	st.EXPECT().UserByEmail(gomock.Any(), "a@b.com").Return(user, nil)
	// Промах заполняет кэш на срок жизни access-токена.
	pc.EXPECT().Set(gomock.Any(), user, 15*time.Minute).Return(nil)

	got, err := svc.CurrentUser(context.Background(), access)
	require.NoError(t, err)
	require.Equal(t, user, got)
}

func TestCurrentUser_CacheErrors_NotFatal(t *testing.T) {
	t.Parallel()

	svc, st := newTestService(t)
	user := confirmedUser(t, "a@b.com", "p@ss1234")

	ctrl := gomock.NewController(t)
	pc := mocks.NewMockPrincipalCache(ctrl)
	svc.SetPrincipalCache(pc)

	access, err := svc.codec.Issue("a@b.com", token.ScopeAccess, 0)
	require.NoError(t, err)

	// Кэш лежит целиком — запрос всё равно обслуживается из хранилища.
	pc.EXPECT().Get(gomock.Any(), "a@b.com").Return(nil, false, errors.New("redis down"))
	st.EXPECT().UserByEmail(gomock.Any(), "a@b.com").Return(user, nil)
	pc.EXPECT().Set(gomock.Any(), user, gomock.Any()).Return(errors.New("redis down"))

	got, err := svc.CurrentUser(context.Background(), access)
	require.NoError(t, err)
	require.Equal(t, user, got)
}
