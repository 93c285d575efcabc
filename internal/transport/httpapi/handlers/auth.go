package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/dzvenyslavavovk/contacts-auth/internal/models"
	"github.com/dzvenyslavavovk/contacts-auth/internal/service"
	"github.com/dzvenyslavavovk/contacts-auth/internal/transport/httpapi/middleware"

	"github.com/go-chi/chi/v5"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type requestEmailRequest struct {
	Email string `json:"email"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

type signupResponse struct {
	User       userResponse `json:"user"`
	EmailToken string       `json:"email_token"`
	Detail     string       `json:"detail"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresAt    int64  `json:"expires_at"`
}

type detailResponse struct {
	Detail string `json:"detail"`
	// EmailToken — токен подтверждения для доставки вызывающей стороной
	// (сам сервис писем не шлёт).
	EmailToken string `json:"email_token,omitempty"`
}

func userToResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Confirmed: u.Confirmed,
		CreatedAt: u.CreatedAt,
	}
}

func tokenPairToResponse(tp *models.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:  tp.AccessToken,
		RefreshToken: tp.RefreshToken,
		TokenType:    tp.TokenType,
		ExpiresAt:    tp.AccessExpiresAt.Unix(),
	}
}

// Signup регистрирует пользователя и возвращает токен подтверждения e-mail
// для доставки вызывающей стороной.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var in signupRequest
	if err := decodeStrict(r, &in); err != nil {
		h.errw.WriteError(w, r, service.ErrInvalidEmail)
		return
	}

	user, err := h.svc.RegisterUser(r.Context(), in.Username, in.Email, in.Password)
	if err != nil {
		h.errw.WriteError(w, r, err)
		return
	}

	emailToken, err := h.svc.IssueEmailToken(r.Context(), user.Email)
	if err != nil {
		h.errw.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{
		User:       userToResponse(user),
		EmailToken: emailToken,
		Detail:     "User successfully created. Check your email for confirmation.",
	})
}

// Login аутентифицирует пользователя и выдаёт пару токенов.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		h.errw.WriteError(w, r, service.ErrInvalidCredentials)
		return
	}

	pair, err := h.svc.LoginUser(r.Context(), in.Email, in.Password)
	if err != nil {
		h.errw.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairToResponse(pair))
}

// RefreshToken обменивает refresh-токен (Authorization: Bearer) на новую пару.
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	raw, ok := middleware.BearerFromContext(r.Context())
	if !ok {
		h.errw.WriteError(w, r, service.ErrCouldNotValidate)
		return
	}

	pair, err := h.svc.RefreshTokens(r.Context(), raw)
	if err != nil {
		h.errw.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairToResponse(pair))
}

// ConfirmedEmail подтверждает e-mail по токену из ссылки письма.
// Повторное подтверждение — не ошибка для клиента (200 с пояснением).
func (h *Handlers) ConfirmedEmail(w http.ResponseWriter, r *http.Request) {
	tokenStr := chi.URLParam(r, "token")

	err := h.svc.ConfirmEmail(r.Context(), tokenStr)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, detailResponse{Detail: "Email confirmed"})
	case errors.Is(err, service.ErrEmailAlreadyConfirmed):
		writeJSON(w, http.StatusOK, detailResponse{Detail: "Your email is already confirmed"})
	default:
		h.errw.WriteError(w, r, err)
	}
}

// RequestEmail повторно выпускает токен подтверждения.
// Ответ для неизвестного адреса неотличим от успешного (анти-перебор).
func (h *Handlers) RequestEmail(w http.ResponseWriter, r *http.Request) {
	var in requestEmailRequest
	if err := decodeStrict(r, &in); err != nil {
		h.errw.WriteError(w, r, service.ErrInvalidEmail)
		return
	}

	emailToken, err := h.svc.RequestEmailToken(r.Context(), in.Email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, detailResponse{
			Detail:     "Check your email for confirmation.",
			EmailToken: emailToken,
		})
	case errors.Is(err, service.ErrEmailAlreadyConfirmed):
		writeJSON(w, http.StatusOK, detailResponse{Detail: "Your email is already confirmed"})
	default:
		h.errw.WriteError(w, r, err)
	}
}
