// Пакет config — загрузка и валидация конфигурации P-Music
// из переменных окружения (и необязательного файла .env).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации сервиса.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Дополнительные префиксы, под которыми монтируется API (например, /mvp/sprint3)
	RoutePrefixes []string
	// Разрешённые источники CORS для /uploads и API
	CORSOrigins []string

	// --- HTTP Server Timeouts ---

	// Таймаут чтения (по умолчанию 60s, загрузки альбомов бывают большими)
	HTTPReadTimeout time.Duration
	// Таймаут записи (по умолчанию 120s)
	HTTPWriteTimeout time.Duration
	// Таймаут простоя (по умолчанию 120s)
	HTTPIdleTimeout time.Duration

	// --- PostgreSQL ---

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string
	// Максимальный размер пула подключений
	DBMaxConns int
	// Сколько ждать PostgreSQL при старте (контейнер БД поднимается дольше API)
	DBConnectWait time.Duration

	// --- Хранилище файлов ---

	// Корневая директория загрузок (бакеты создаются внутри)
	UploadDir string
	// Веб-префикс путей к файлам
	UploadPublicPrefix string
	// Объём multipart-формы, удерживаемый в памяти
	MaxMultipartMemory int64
	// Максимальное число треков в одном альбоме
	MaxAlbumTracks int

	// --- JWT ---

	// Путь к PEM-файлу приватного RSA-ключа (пусто — временный ключ)
	JWTPrivateKeyPath string
	// Issuer выпускаемых токенов
	JWTIssuer string
	// Время жизни access token
	JWTTTL time.Duration
	// Допустимое отклонение часов при проверке токена
	JWTLeeway time.Duration
	// Стоимость bcrypt
	BcryptCost int

	// --- Функциональные флаги ---

	// Поиск по каталогу (?search=)
	SearchEnabled bool
	// Загрузка файлов (/upload/*)
	UploadEnabled bool

	// --- Кэш ---

	// Максимальное количество альбомов в LRU-кэше
	CacheSize int
	// TTL записи кэша
	CacheTTL time.Duration

	// --- topologymetrics ---

	DephealthGroup         string
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	ShutdownTimeout time.Duration
}

// LoadDotEnv подгружает переменные из файла .env (если он есть).
// Уже заданные переменные окружения не перезаписываются.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("ошибка чтения %s: %w", p, err)
		}
	}
	return nil
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// PM_PORT — порт HTTP-сервера (по умолчанию 8000)
	cfg.Port, err = getEnvInt("PM_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("PM_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PM_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	cfg.LogLevel, err = parseLogLevel(getEnvDefault("PM_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("PM_LOG_LEVEL: %w", err)
	}

	cfg.LogFormat = getEnvDefault("PM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("PM_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// PM_ROUTE_PREFIXES — например "/mvp/sprint1,/mvp/sprint2"
	for _, p := range parseCSV(getEnvDefault("PM_ROUTE_PREFIXES", "")) {
		if !strings.HasPrefix(p, "/") || p == "/" {
			return nil, fmt.Errorf("PM_ROUTE_PREFIXES: префикс %q должен начинаться с / и не быть корнем", p)
		}
		cfg.RoutePrefixes = append(cfg.RoutePrefixes, strings.TrimRight(p, "/"))
	}

	cfg.CORSOrigins = parseCSV(getEnvDefault("PM_CORS_ORIGINS", "*"))

	// --- PostgreSQL ---

	cfg.DBHost, err = getEnvRequired("PM_DB_HOST")
	if err != nil {
		return nil, err
	}

	cfg.DBPort, err = getEnvInt("PM_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("PM_DB_PORT: %w", err)
	}

	cfg.DBName, err = getEnvRequired("PM_DB_NAME")
	if err != nil {
		return nil, err
	}

	cfg.DBUser, err = getEnvRequired("PM_DB_USER")
	if err != nil {
		return nil, err
	}

	cfg.DBPassword, err = getEnvRequired("PM_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	cfg.DBSSLMode = getEnvDefault("PM_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("PM_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	cfg.DBMaxConns, err = getEnvInt("PM_DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("PM_DB_MAX_CONNS: %w", err)
	}
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 1000 {
		return nil, fmt.Errorf("PM_DB_MAX_CONNS: значение %d вне диапазона 1-1000", cfg.DBMaxConns)
	}

	cfg.DBConnectWait, err = getEnvDuration("PM_DB_CONNECT_WAIT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_DB_CONNECT_WAIT: %w", err)
	}
	if cfg.DBConnectWait < 0 {
		return nil, fmt.Errorf("PM_DB_CONNECT_WAIT: отрицательное значение %v", cfg.DBConnectWait)
	}

	// --- Хранилище файлов ---

	cfg.UploadDir = getEnvDefault("PM_UPLOAD_DIR", "./uploads")

	cfg.UploadPublicPrefix = "/" + strings.Trim(getEnvDefault("PM_UPLOAD_PUBLIC_PREFIX", "/uploads"), "/")
	if cfg.UploadPublicPrefix == "/" {
		return nil, fmt.Errorf("PM_UPLOAD_PUBLIC_PREFIX: префикс не может быть корнем")
	}

	cfg.MaxMultipartMemory, err = getEnvInt64("PM_MAX_MULTIPART_MEMORY", 32<<20)
	if err != nil {
		return nil, fmt.Errorf("PM_MAX_MULTIPART_MEMORY: %w", err)
	}
	if cfg.MaxMultipartMemory < 1<<20 {
		return nil, fmt.Errorf("PM_MAX_MULTIPART_MEMORY: значение %d меньше 1 MiB", cfg.MaxMultipartMemory)
	}

	cfg.MaxAlbumTracks, err = getEnvInt("PM_MAX_ALBUM_TRACKS", 50)
	if err != nil {
		return nil, fmt.Errorf("PM_MAX_ALBUM_TRACKS: %w", err)
	}
	if cfg.MaxAlbumTracks < 1 || cfg.MaxAlbumTracks > 500 {
		return nil, fmt.Errorf("PM_MAX_ALBUM_TRACKS: значение %d вне допустимого диапазона 1-500", cfg.MaxAlbumTracks)
	}

	// --- JWT ---

	cfg.JWTPrivateKeyPath = getEnvDefault("PM_JWT_PRIVATE_KEY_PATH", "")
	cfg.JWTIssuer = getEnvDefault("PM_JWT_ISSUER", "p-music")

	cfg.JWTTTL, err = getEnvDuration("PM_JWT_TTL", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("PM_JWT_TTL: %w", err)
	}
	if cfg.JWTTTL < time.Minute {
		return nil, fmt.Errorf("PM_JWT_TTL: значение %s меньше минуты", cfg.JWTTTL)
	}

	cfg.JWTLeeway, err = getEnvDuration("PM_JWT_LEEWAY", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_JWT_LEEWAY: %w", err)
	}

	// PM_BCRYPT_COST — 4..31, как требует bcrypt
	cfg.BcryptCost, err = getEnvInt("PM_BCRYPT_COST", 10)
	if err != nil {
		return nil, fmt.Errorf("PM_BCRYPT_COST: %w", err)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, fmt.Errorf("PM_BCRYPT_COST: значение %d вне допустимого диапазона 4-31", cfg.BcryptCost)
	}

	// --- Функциональные флаги ---

	cfg.SearchEnabled, err = getEnvBool("PM_FEATURE_SEARCH", true)
	if err != nil {
		return nil, fmt.Errorf("PM_FEATURE_SEARCH: %w", err)
	}

	cfg.UploadEnabled, err = getEnvBool("PM_FEATURE_UPLOAD", true)
	if err != nil {
		return nil, fmt.Errorf("PM_FEATURE_UPLOAD: %w", err)
	}

	// --- Кэш ---

	cfg.CacheSize, err = getEnvInt("PM_CACHE_SIZE", 1000)
	if err != nil {
		return nil, fmt.Errorf("PM_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("PM_CACHE_SIZE: значение %d должно быть положительным", cfg.CacheSize)
	}

	cfg.CacheTTL, err = getEnvDuration("PM_CACHE_TTL", time.Minute)
	if err != nil {
		return nil, fmt.Errorf("PM_CACHE_TTL: %w", err)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("PM_HTTP_READ_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_HTTP_READ_TIMEOUT: %w", err)
	}

	cfg.HTTPWriteTimeout, err = getEnvDuration("PM_HTTP_WRITE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_HTTP_WRITE_TIMEOUT: %w", err)
	}

	cfg.HTTPIdleTimeout, err = getEnvDuration("PM_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- topologymetrics ---

	cfg.DephealthGroup = getEnvDefault("PM_DEPHEALTH_GROUP", "p-music")

	cfg.DephealthCheckInterval, err = getEnvDuration("PM_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	cfg.ShutdownTimeout, err = getEnvDuration("PM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL PostgreSQL (для лейблов topologymetrics).
// Пароль в URL не включается.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgresql",
		User:   url.User(c.DBUser),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	return u.String()
}

// MigrateURL возвращает URL для golang-migrate (драйвер pgx5).
func (c *Config) MigrateURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

func getEnvInt64(key string, defaultVal int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvBool принимает true/false/1/0 (strconv.ParseBool).
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное логическое значение: %q", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}

// parseCSV разбирает строку, разделённую запятыми, на срез строк.
// Пробелы вокруг элементов убираются, пустые элементы игнорируются.
func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
