// auth.go — регистрация, вход и аутентификация пользователей.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/crypto/bcrypt"

	"github.com/Andert51/P-Music-td/internal/auth"
	"github.com/Andert51/P-Music-td/internal/domain/model"
	"github.com/Andert51/P-Music-td/internal/domain/rbac"
	"github.com/Andert51/P-Music-td/internal/repository"
)

// Ограничения учётных данных.
const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	// bcrypt учитывает только первые 72 байта пароля
	maxPasswordLen = 72
)

// Prometheus-метрики аутентификации.
var authAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pm_auth_attempts_total",
	Help: "Количество попыток регистрации и входа.",
}, []string{"operation", "result"})

// TokenIssuer — выпуск и проверка access token (реализуется *auth.Issuer).
type TokenIssuer interface {
	Issue(userID int64, username string, role rbac.Role) (string, time.Time, error)
	Parse(ctx context.Context, token string) (*auth.Claims, error)
}

// RegisterParams — данные регистрации.
type RegisterParams struct {
	Username string
	Email    string
	Password string
	FullName *string
	// Role — строка роли; пусто — user
	Role string
}

// LoginResult — результат успешного входа.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        *model.User
}

// AuthService — регистрация, вход и разрешение токена в пользователя.
type AuthService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	// dummyHash — хэш для сравнения при неизвестном email (выравнивание времени ответа)
	dummyHash []byte
	logger    *slog.Logger
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(
	users repository.UserRepository,
	tokens TokenIssuer,
	bcryptCost int,
	logger *slog.Logger,
) (*AuthService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("p-music-dummy-password"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("инициализация bcrypt: %w", err)
	}
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
		logger:     logger.With(slog.String("component", "auth_service")),
	}, nil
}

// Register создаёт пользователя. Пароль хранится только в виде bcrypt-хэша.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*model.User, error) {
	user, err := s.register(ctx, p)
	if err != nil {
		authAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, err
	}
	authAttemptsTotal.WithLabelValues("register", "success").Inc()
	return user, nil
}

func (s *AuthService) register(ctx context.Context, p RegisterParams) (*model.User, error) {
	role, err := rbac.ParseRole(p.Role)
	if err != nil {
		return nil, classify(ErrValidation, err)
	}

	username := strings.TrimSpace(p.Username)
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return nil, validationError("имя пользователя должно содержать от %d до %d символов", minUsernameLen, maxUsernameLen)
	}

	email := strings.TrimSpace(p.Email)
	if !validEmail(email) {
		return nil, validationError("некорректный email %q", email)
	}

	if len(p.Password) < minPasswordLen {
		return nil, validationError("пароль должен содержать не менее %d символов", minPasswordLen)
	}
	if len(p.Password) > maxPasswordLen {
		return nil, validationError("пароль не должен превышать %d байт", maxPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("хэширование пароля: %w", err)
	}

	user := &model.User{
		Email:          email,
		Username:       username,
		HashedPassword: string(hash),
		FullName:       p.FullName,
		Role:           role,
		IsActive:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapRepoError(err, "создание пользователя")
	}

	s.logger.Info("Пользователь зарегистрирован",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// Login проверяет email и пароль и выпускает access token.
// Неизвестный email, неверный пароль и неактивный пользователь неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("поиск пользователя: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		authAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return nil, fmt.Errorf("%w: неверный email или пароль", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		authAttemptsTotal.WithLabelValues("login", "failure").Inc()
		s.logger.Debug("Неверный пароль", slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("%w: неверный email или пароль", ErrUnauthorized)
	}
	if !user.IsActive {
		authAttemptsTotal.WithLabelValues("login", "failure").Inc()
		s.logger.Info("Попытка входа неактивного пользователя", slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("%w: неверный email или пароль", ErrUnauthorized)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("выпуск токена: %w", err)
	}
	authAttemptsTotal.WithLabelValues("login", "success").Inc()

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// Authenticate разрешает bearer token в активного пользователя.
// Роль берётся из БД, а не из claims токена.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.Parse(ctx, token)
	if err != nil {
		return nil, classify(ErrUnauthorized, err)
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, classify(ErrUnauthorized, err)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: пользователь не найден", ErrUnauthorized)
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: пользователь деактивирован", ErrUnauthorized)
	}
	return user, nil
}

// validEmail — минимальная проверка: непустые части до и после @, без пробелов.
func validEmail(email string) bool {
	at := strings.LastIndexByte(email, '@')
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t<>")
}
