// auth.go — регистрация, вход (OAuth2 password form), текущий пользователь и JWKS.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/Andert51/P-Music-td/internal/api/errors"
	"github.com/Andert51/P-Music-td/internal/api/generated"
	"github.com/Andert51/P-Music-td/internal/api/middleware"
	"github.com/Andert51/P-Music-td/internal/domain/model"
	"github.com/Andert51/P-Music-td/internal/service"
)

// AuthService — операции учётных записей (реализуется *service.AuthService).
type AuthService interface {
	Register(ctx context.Context, p service.RegisterParams) (*model.User, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// JWKSProvider отдаёт публичные ключи подписи (реализуется *auth.Issuer).
type JWKSProvider interface {
	JWKS(ctx context.Context) (json.RawMessage, error)
}

// AuthHandler — обработчик /auth/*.
type AuthHandler struct {
	auth   AuthService
	jwks   JWKSProvider
	logger *slog.Logger
}

// NewAuthHandler создаёт обработчик аутентификации.
func NewAuthHandler(auth AuthService, jwks JWKSProvider, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		jwks:   jwks,
		logger: logger.With(slog.String("component", "auth_handler")),
	}
}

// Register обрабатывает POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req generated.RegisterJSONRequestBody
	if !decodeJSON(w, r, &req, false) {
		return
	}

	params := service.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}
	if req.Role != nil {
		params.Role = string(*req.Role)
	}

	user, err := h.auth.Register(r.Context(), params)
	if err != nil {
		writeServiceError(w, h.logger, err, "register")
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login обрабатывает POST /auth/login (application/x-www-form-urlencoded).
// Поле email; устаревшее поле username принимается как email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := r.ParseForm(); err != nil {
		apierrors.ValidationError(w, "Некорректная форма входа")
		return
	}

	email := strings.TrimSpace(r.PostForm.Get("email"))
	if email == "" {
		email = strings.TrimSpace(r.PostForm.Get("username"))
	}
	password := r.PostForm.Get("password")
	if email == "" || password == "" {
		apierrors.ValidationError(w, "Поля email и password обязательны")
		return
	}

	res, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		writeServiceError(w, h.logger, err, "login")
		return
	}
	writeJSON(w, http.StatusOK, generated.Token{
		AccessToken: res.AccessToken,
		TokenType:   res.TokenType,
		ExpiresAt:   res.ExpiresAt,
	})
}

// GetCurrentUser обрабатывает GET /auth/me.
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Logout обрабатывает POST /auth/logout. Токены не отзываются на сервере.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, generated.MessageResponse{
		Message: "Выход выполнен, удалите токен на клиенте",
	})
}

// GetJWKS обрабатывает GET /auth/jwks.json.
func (h *AuthHandler) GetJWKS(w http.ResponseWriter, r *http.Request) {
	raw, err := h.jwks.JWKS(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "jwks")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
