package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := Hash("p@ss1234")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2"))

	ok, err := Verify("p@ss1234", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Verify("wrong-password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHash_Salted(t *testing.T) {
	t.Parallel()

	// Соль встроена в хэш: два хэша одного секрета не совпадают,
	// но оба проверяются успешно.
	first, err := HashWithCost("p@ss1234", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashWithCost("p@ss1234", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	for _, h := range []string{first, second} {
		ok, err := Verify("p@ss1234", h)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestHash_SecretTooLong(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 73)

	_, err := Hash(long)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEncoding)
}

func TestVerify_SecretTooLong(t *testing.T) {
	t.Parallel()

	hash, err := HashWithCost("p@ss1234", bcrypt.MinCost)
	require.NoError(t, err)

	// Слишком длинный секрет не совпадает ни с одним хэшем — это не ошибка.
	ok, err := Verify(strings.Repeat("a", 73), hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	for _, hash := range []string{"", "not-a-hash", "$2b$zz$broken"} {
		ok, err := Verify("p@ss1234", hash)
		require.False(t, ok, hash)
		require.Error(t, err, hash)
		require.ErrorIs(t, err, ErrMalformedHash, hash)
	}
}
