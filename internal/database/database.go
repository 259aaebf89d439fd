// Пакет database — пул подключений к PostgreSQL, миграции схемы каталога
// и проверка готовности для /health/ready.
package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Andert51/P-Music-td/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrDirtySchema — предыдущая миграция прервана, схема требует ручного исправления.
var ErrDirtySchema = errors.New("схема БД в состоянии dirty")

const pingTimeout = 3 * time.Second

// Интервалы повторов при ожидании PostgreSQL на старте.
var (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 5 * time.Second
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Connect создаёт пул подключений и ждёт доступности PostgreSQL
// не дольше cfg.DBConnectWait.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга DSN: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.DBMaxConns)
	poolCfg.MinConns = min(2, poolCfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания пула подключений: %w", err)
	}

	if err := waitReady(ctx, pool, cfg.DBConnectWait, logger); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("Подключение к PostgreSQL установлено",
		slog.String("host", cfg.DBHost),
		slog.Int("port", cfg.DBPort),
		slog.String("database", cfg.DBName),
		slog.Int("max_conns", cfg.DBMaxConns),
	)
	return pool, nil
}

// waitReady повторяет ping с экспоненциальной задержкой, пока не истечёт wait.
// wait = 0 — одна попытка.
func waitReady(ctx context.Context, p pinger, wait time.Duration, logger *slog.Logger) error {
	deadline := time.Now().Add(wait)
	delay := retryBaseDelay

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := p.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		if time.Now().Add(delay).After(deadline) {
			return fmt.Errorf("PostgreSQL недоступен (попыток: %d): %w", attempt, err)
		}

		logger.Warn("PostgreSQL недоступен, повтор",
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, retryMaxDelay)
	}
}

// Migrate применяет встроенные миграции и возвращает текущую версию схемы.
// Схема в состоянии dirty не трогается.
func Migrate(cfg *config.Config, logger *slog.Logger) (uint, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("ошибка создания источника миграций: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.MigrateURL())
	if err != nil {
		return 0, fmt.Errorf("ошибка инициализации миграций: %w", err)
	}
	defer m.Close()

	before, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		before = 0
	case err != nil:
		return 0, fmt.Errorf("ошибка чтения версии схемы: %w", err)
	case dirty:
		return before, fmt.Errorf("%w: версия %d, требуется migrate force", ErrDirtySchema, before)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("ошибка применения миграций: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения версии схемы: %w", err)
	}

	if version != before {
		logger.Info("Миграции применены",
			slog.Uint64("from", uint64(before)),
			slog.Uint64("to", uint64(version)),
		)
	} else {
		logger.Debug("Схема БД актуальна", slog.Uint64("version", uint64(version)))
	}
	return version, nil
}

// ReadinessChecker проверяет PostgreSQL и состояние схемы для /health/ready.
type ReadinessChecker struct {
	db interface {
		pinger
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	}
}

// NewReadinessChecker создаёт проверку готовности поверх пула.
func NewReadinessChecker(pool *pgxpool.Pool) *ReadinessChecker {
	return &ReadinessChecker{db: pool}
}

// CheckReady: fail при недоступной БД, неприменённых или прерванных миграциях.
func (c *ReadinessChecker) CheckReady() (status string, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := c.db.Ping(ctx); err != nil {
		return "fail", fmt.Sprintf("PostgreSQL недоступен: %v", err)
	}

	var (
		version int64
		dirty   bool
	)
	err := c.db.QueryRow(ctx, `SELECT version, dirty FROM schema_migrations LIMIT 1`).Scan(&version, &dirty)
	if err != nil {
		return "fail", "схема БД не инициализирована"
	}
	if dirty {
		return "fail", fmt.Sprintf("миграция %d не завершена", version)
	}
	return "ok", fmt.Sprintf("подключение активно, схема v%d", version)
}
