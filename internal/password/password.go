// password реализует одностороннее хэширование паролей и их проверку
// с постоянным временем сравнения (bcrypt, golang.org/x/crypto).
//
// Открытый пароль живёт только в аргументах функций: он не сохраняется,
// не логируется и не попадает в ошибки.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEncoding — bcrypt отверг входной секрет (длиннее 72 байт).
	ErrEncoding = errors.New("invalid secret encoding")

	// ErrMalformedHash — сохранённый хэш структурно некорректен
	// (битый префикс/версия/cost); при обычном несовпадении пароля не возвращается.
	ErrMalformedHash = errors.New("malformed password hash")
)

// Hash хэширует секрет с cost-фактором по умолчанию.
// Формат результата детерминирован, значение — нет: соль встроена в хэш.
func Hash(secret string) (string, error) {
	return HashWithCost(secret, bcrypt.DefaultCost)
}

// HashWithCost хэширует секрет с явным cost-фактором.
func HashWithCost(secret string, cost int) (string, error) {
	const op = "password.HashWithCost"

	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%s: %w", op, ErrEncoding)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// Verify сравнивает секрет с сохранённым хэшем за постоянное время.
// Обычное несовпадение — (false, nil); ошибка возвращается только если
// сам хэш структурно некорректен.
func Verify(secret, hash string) (bool, error) {
	const op = "password.Verify"

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		// Секрет длиннее 72 байт заведомо не совпадает ни с одним хэшем.
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", op, ErrMalformedHash)
	}
}
