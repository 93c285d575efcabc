// apierr стандартизирует ответы об ошибках HTTP-слоя auth-сервиса.
// На вход он принимает ошибку сервисного слоя (сентинелы пакета service),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Маппинг намеренно сохраняет асимметрию раскрытия причин: для access-токенов
// все отказы дают одно и то же сообщение, для refresh-/email-токенов
// несовпадение scope отличимо от прочих отказов.
package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dzvenyslavavovk/contacts-auth/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат ошибки для клиента.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание (фиксированные строки).
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Writer маппит ошибки сервисного слоя в HTTP-ответы.
// TokenURL попадает в WWW-Authenticate ответов 401 (bearer-конвенция).
type Writer struct {
	TokenURL string
}

// WriteError пишет корректный статус/тело по ошибке сервисного слоя.
//
// Маппинг:
//   - ErrInvalidCredentials / ErrEmailNotConfirmed / ErrCouldNotValidate /
//     ErrUnexpectedTokenScope / ErrInvalidRefreshToken -> 401;
//   - ErrEmailTokenInvalid -> 422 (канал подтверждения e-mail, не bearer);
//   - ErrEmailTaken -> 409;
//   - ErrInvalidEmail / ErrWeakPassword / ErrEmptyPassword / ErrVerification -> 400;
//   - context.DeadlineExceeded -> 504, context.Canceled -> 499;
//   - прочее -> 500/internal (без раскрытия деталей).
func (wr *Writer) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := wr.mapError(err)

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", wwwAuthenticate(wr.TokenURL))
	}

	write(w, r, status, code, message)
}

// WriteInternal — ответ 500/internal (для перехвата паник и программных ошибок).
func WriteInternal(w http.ResponseWriter, r *http.Request) {
	write(w, r, http.StatusInternalServerError, "internal", "internal error")
}

func (wr *Writer) mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrCouldNotValidate),
		errors.Is(err, service.ErrUnexpectedTokenScope),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailNotConfirmed):
		return http.StatusUnauthorized, "unauthenticated", sentinelMessage(err)
	case errors.Is(err, service.ErrEmailTokenInvalid):
		return http.StatusUnprocessableEntity, "unprocessable", sentinelMessage(err)
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "already_exists", sentinelMessage(err)
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrVerification):
		return http.StatusBadRequest, "invalid_argument", sentinelMessage(err)
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}

// sentinelMessage возвращает фиксированный текст сентинела без цепочки op-обёрток.
func sentinelMessage(err error) string {
	for _, s := range []error{
		service.ErrCouldNotValidate,
		service.ErrUnexpectedTokenScope,
		service.ErrInvalidRefreshToken,
		service.ErrInvalidCredentials,
		service.ErrEmailNotConfirmed,
		service.ErrEmailTokenInvalid,
		service.ErrEmailTaken,
		service.ErrInvalidEmail,
		service.ErrWeakPassword,
		service.ErrEmptyPassword,
		service.ErrVerification,
	} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}

	return "internal error"
}

func wwwAuthenticate(tokenURL string) string {
	if tokenURL == "" {
		return "Bearer"
	}

	return fmt.Sprintf("Bearer realm=%q", tokenURL)
}

func write(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := ErrorResponse{Error: APIError{Code: code, Message: message}}

	// Прокидываем request_id, чтобы клиент мог репортить проблемы с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
