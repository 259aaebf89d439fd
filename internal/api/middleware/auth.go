// auth.go — разрешение Bearer token в пользователя P-Music.
// Токен необязателен: публичные endpoints работают анонимно, защищённые
// вызывают RequireUser. Подпись и срок проверяет service.AuthService.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/Andert51/P-Music-td/internal/api/errors"
	"github.com/Andert51/P-Music-td/internal/domain/model"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

const (
	// ContextKeyUser — пользователь, разрешённый из токена.
	ContextKeyUser contextKey = "pm_user"
	// contextKeyAuthError — причина, по которой присланный токен отклонён.
	contextKeyAuthError contextKey = "pm_auth_error"
)

// Ответы 401 для присланного, но непринятого токена.
const (
	msgMalformedHeader = "Неверный формат Authorization: ожидается Bearer <token>"
	msgInvalidToken    = "Невалидный или просроченный токен"
)

var errMalformedHeader = errors.New("неверный формат заголовка Authorization")

// Authenticator разрешает access token в активного пользователя.
// Реализуется service.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// TokenAuth — middleware аутентификации по Bearer token.
type TokenAuth struct {
	auth   Authenticator
	logger *slog.Logger
}

// NewTokenAuth создаёт middleware аутентификации.
func NewTokenAuth(auth Authenticator, logger *slog.Logger) *TokenAuth {
	return &TokenAuth{
		auth:   auth,
		logger: logger.With(slog.String("component", "token_auth")),
	}
}

// Optional возвращает middleware, который при наличии заголовка Authorization
// разрешает токен в пользователя и кладёт его в контекст.
// Невалидный токен не прерывает запрос: публичный endpoint обслуживается
// анонимно, а RequireUser вернёт 401 с причиной.
func (t *TokenAuth) Optional() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			token, err := bearerToken(authHeader)
			if err != nil {
				ctx = context.WithValue(ctx, contextKeyAuthError, msgMalformedHeader)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			user, err := t.auth.Authenticate(ctx, token)
			if err != nil {
				t.logger.Debug("Токен отклонён",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				ctx = context.WithValue(ctx, contextKeyAuthError, msgInvalidToken)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			rememberUser(ctx, user.ID)
			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
		})
	}
}

// bearerToken извлекает токен из значения заголовка Authorization.
func bearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errMalformedHeader
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errMalformedHeader
	}
	return token, nil
}

// --- Context helpers ---

// UserFromContext возвращает пользователя запроса или nil для анонимного.
func UserFromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(ContextKeyUser).(*model.User)
	return user
}

// WithUser кладёт пользователя в контекст (для тестов обработчиков).
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// RequireUser возвращает пользователя запроса или записывает 401.
// Второе значение false означает, что ответ уже отправлен.
func RequireUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	if user := UserFromContext(r.Context()); user != nil {
		return user, true
	}
	if msg, ok := r.Context().Value(contextKeyAuthError).(string); ok {
		apierrors.Unauthorized(w, msg)
		return nil, false
	}
	apierrors.Unauthorized(w, "Требуется аутентификация")
	return nil, false
}
