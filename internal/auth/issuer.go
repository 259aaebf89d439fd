// Пакет auth — выпуск и проверка JWT (RS256) P-Music.
// Публичный ключ сервиса хранится в JWK Set (jwkset) и используется
// keyfunc для проверки подписи так же, как ключи внешнего IdP.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Andert51/P-Music-td/internal/domain/rbac"
)

// ErrInvalidToken — токен не прошёл проверку (подпись, срок, issuer, claims).
var ErrInvalidToken = errors.New("невалидный или просроченный токен")

// Claims — claims access token P-Music.
// sub — ID пользователя, role и username — для отображения на клиенте;
// права всегда проверяются по роли из БД.
type Claims struct {
	jwt.RegisteredClaims
	Role     string `json:"role"`
	Username string `json:"username"`
}

// UserID возвращает ID пользователя из sub.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: некорректный sub %q", ErrInvalidToken, c.Subject)
	}
	return id, nil
}

// Options — параметры Issuer.
type Options struct {
	// PrivateKeyPath — PEM-файл приватного RSA-ключа; пусто — временный ключ
	PrivateKeyPath string
	Issuer         string
	TTL            time.Duration
	Leeway         time.Duration
}

// Issuer выпускает и проверяет access token.
type Issuer struct {
	key     *rsa.PrivateKey
	kid     string
	issuer  string
	ttl     time.Duration
	leeway  time.Duration
	storage jwkset.Storage
	jwks    keyfunc.Keyfunc
	now     func() time.Time
}

// NewIssuer загружает (или генерирует) RSA-ключ и публикует его
// публичную часть в JWK Set.
func NewIssuer(ctx context.Context, opts Options, logger *slog.Logger) (*Issuer, error) {
	var (
		key *rsa.PrivateKey
		err error
	)
	if opts.PrivateKeyPath != "" {
		key, err = loadPrivateKey(opts.PrivateKeyPath)
		if err != nil {
			return nil, err
		}
		logger.Info("Ключ подписи JWT загружен", slog.String("path", opts.PrivateKeyPath))
	} else {
		key, err = rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return nil, fmt.Errorf("генерация RSA-ключа: %w", err)
		}
		logger.Warn("PM_JWT_PRIVATE_KEY_PATH не задан: используется временный ключ, " +
			"токены станут недействительны после перезапуска")
	}
	return newIssuer(ctx, key, opts)
}

func newIssuer(ctx context.Context, key *rsa.PrivateKey, opts Options) (*Issuer, error) {
	kid, err := keyID(&key.PublicKey)
	if err != nil {
		return nil, err
	}

	jwk, err := jwkset.NewJWKFromKey(&key.PublicKey, jwkset.JWKOptions{
		Metadata: jwkset.JWKMetadataOptions{
			ALG: jwkset.AlgRS256,
			KID: kid,
			USE: jwkset.UseSig,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("создание JWK: %w", err)
	}

	storage := jwkset.NewMemoryStorage()
	if err := storage.KeyWrite(ctx, jwk); err != nil {
		return nil, fmt.Errorf("запись JWK: %w", err)
	}

	k, err := keyfunc.New(keyfunc.Options{
		Ctx:     ctx,
		Storage: storage,
	})
	if err != nil {
		return nil, fmt.Errorf("создание keyfunc: %w", err)
	}

	return &Issuer{
		key:     key,
		kid:     kid,
		issuer:  opts.Issuer,
		ttl:     opts.TTL,
		leeway:  opts.Leeway,
		storage: storage,
		jwks:    k,
		now:     time.Now,
	}, nil
}

// Issue подписывает access token для пользователя.
func (i *Issuer) Issue(userID int64, username string, role rbac.Role) (token string, expiresAt time.Time, err error) {
	now := i.now()
	expiresAt = now.Add(i.ttl)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role:     string(role),
		Username: username,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	t.Header["kid"] = i.kid

	token, err = t.SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("подпись токена: %w", err)
	}
	return token, expiresAt, nil
}

// Parse проверяет подпись (RS256 через JWKS), срок действия и issuer.
func (i *Issuer) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(i.leeway),
	}
	if i.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(i.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, i.jwks.KeyfuncCtx(ctx), parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}

// JWKS возвращает публичный JWK Set (GET /auth/jwks.json).
func (i *Issuer) JWKS(ctx context.Context) (json.RawMessage, error) {
	return i.storage.JSONPublic(ctx)
}

// KeyID возвращает kid текущего ключа.
func (i *Issuer) KeyID() string {
	return i.kid
}

// loadPrivateKey читает RSA-ключ из PEM (PKCS#1 или PKCS#8).
func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение ключа %s: %w", path, err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("разбор ключа %s: %w", path, err)
	}
	return key, nil
}

// keyID — первые 16 символов SHA-256 от DER публичного ключа.
func keyID(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("сериализация публичного ключа: %w", err)
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:8]), nil
}
