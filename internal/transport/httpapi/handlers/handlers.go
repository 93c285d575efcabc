// handlers содержит HTTP-обработчики auth-сервиса.
// Здесь выполняется только разбор запросов и маппинг данных/ошибок
// сервисного слоя; вся бизнес-логика находится в пакете service.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dzvenyslavavovk/contacts-auth/internal/service"
	"github.com/dzvenyslavavovk/contacts-auth/internal/transport/httpapi/apierr"
)

// Handlers агрегирует зависимости HTTP-обработчиков.
type Handlers struct {
	svc  *service.Service
	errw *apierr.Writer
}

// New создаёт Handlers поверх сервисного слоя.
// tokenURL — метаданные discovery: путь эндпоинта выдачи токенов.
func New(svc *service.Service, tokenURL string) *Handlers {
	return &Handlers{
		svc:  svc,
		errw: &apierr.Writer{TokenURL: tokenURL},
	}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля
// и мусор после основного объекта.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		return err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected trailing data")
	}

	return nil
}
