// httpapi собирает HTTP-роутер auth-сервиса: chi + мидлвары + REST-маршруты.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dzvenyslavavovk/contacts-auth/internal/service"
	"github.com/dzvenyslavavovk/contacts-auth/internal/transport/httpapi/handlers"
	"github.com/dzvenyslavavovk/contacts-auth/internal/transport/httpapi/middleware"

	"github.com/go-chi/chi/v5"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
	TokenURL string // метаданные discovery для WWW-Authenticate.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(routePattern),
		middleware.AuthBearer(), // вынимаем Bearer токен в контекст для хендлеров
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc, opts.TokenURL)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// auth
	r.Post("/auth/signup", h.Signup)
	r.Post("/auth/login", h.Login)
	r.Get("/auth/refresh_token", h.RefreshToken)
	r.Get("/auth/confirmed_email/{token}", h.ConfirmedEmail)
	r.Post("/auth/request_email", h.RequestEmail)

	// users
	r.Get("/users/me", h.Me)
}

// routePattern возвращает шаблон маршрута chi для меток метрик
// (низкая кардинальность вместо сырых URL).
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}

	return r.URL.Path
}
