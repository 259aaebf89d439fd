// Точка входа P-Music API — сервиса потокового воспроизведения музыки.
// Загружает конфигурацию, применяет миграции, подключается к PostgreSQL,
// создаёт файловое хранилище, сервисный слой и API handlers,
// запускает topologymetrics и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/Andert51/P-Music-td/internal/api/handlers"
	"github.com/Andert51/P-Music-td/internal/api/middleware"
	"github.com/Andert51/P-Music-td/internal/auth"
	"github.com/Andert51/P-Music-td/internal/config"
	"github.com/Andert51/P-Music-td/internal/database"
	"github.com/Andert51/P-Music-td/internal/repository"
	"github.com/Andert51/P-Music-td/internal/server"
	"github.com/Andert51/P-Music-td/internal/service"
	"github.com/Andert51/P-Music-td/internal/storage/assetstore"
)

func main() {
	// 1. Файл .env (необязательный)
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("Ошибка чтения .env", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Конфигурация из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 3. Логирование
	logger := config.SetupLogger(cfg)
	logger.Info("P-Music API запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.Bool("upload_enabled", cfg.UploadEnabled),
		slog.Bool("search_enabled", cfg.SearchEnabled),
	)

	if os.Getenv("PM_DEPHEALTH_GROUP") == "" {
		logger.Warn("PM_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 4. Миграции БД
	logger.Info("Применение миграций БД...")
	if _, err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 5.1 Адаптер pgxpool → *sql.DB для topologymetrics
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 6. Выпуск и проверка JWT
	issuer, err := auth.NewIssuer(ctx, auth.Options{
		PrivateKeyPath: cfg.JWTPrivateKeyPath,
		Issuer:         cfg.JWTIssuer,
		TTL:            cfg.JWTTTL,
		Leeway:         cfg.JWTLeeway,
	}, logger)
	if err != nil {
		logger.Error("Ошибка инициализации JWT", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 7. Файловое хранилище
	store, err := assetstore.New(cfg.UploadDir, cfg.UploadPublicPrefix)
	if err != nil {
		logger.Error("Ошибка инициализации хранилища", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Хранилище файлов готово",
		slog.String("root", store.Root()),
		slog.String("public_prefix", store.PublicPrefix()),
	)

	// 8. Repositories
	repos := repository.NewRepositories(pool)
	txRunner := repository.NewTxRunner(pool)

	// 9. Services
	albumCache := service.NewAlbumCache(cfg.CacheSize, cfg.CacheTTL)
	authSvc, err := service.NewAuthService(repos.Users, issuer, cfg.BcryptCost, logger)
	if err != nil {
		logger.Error("Ошибка создания сервиса аутентификации", slog.String("error", err.Error()))
		os.Exit(1)
	}
	catalogSvc := service.NewCatalogService(repos, txRunner, store, albumCache, cfg.SearchEnabled, logger)
	librarySvc := service.NewLibraryService(repos, logger)
	uploadSvc := service.NewUploadService(repos, txRunner, store, cfg.UploadEnabled, cfg.MaxAlbumTracks, logger)

	// 10. API handlers
	openapiHandler, err := handlers.NewOpenAPIHandler()
	if err != nil {
		logger.Error("Ошибка загрузки OpenAPI контракта", slog.String("error", err.Error()))
		os.Exit(1)
	}
	staticHandler, err := handlers.NewStaticHandler(store.Root(), logger)
	if err != nil {
		logger.Error("Ошибка открытия каталога загрузок", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer staticHandler.Close()

	apiHandler := handlers.NewAPIHandler(
		handlers.NewHealthHandler(database.NewReadinessChecker(pool), store),
		openapiHandler,
		handlers.NewAuthHandler(authSvc, issuer, logger),
		handlers.NewSongsHandler(catalogSvc, librarySvc, logger),
		handlers.NewAlbumsHandler(catalogSvc, logger),
		handlers.NewUploadHandler(uploadSvc, cfg.MaxMultipartMemory, cfg.MaxAlbumTracks, logger),
		handlers.NewPlaylistsHandler(librarySvc, logger),
	)

	// 11. topologymetrics — мониторинг PostgreSQL
	dephealthSvc, dephealthErr := service.NewDephealthService(service.DephealthOptions{
		ServiceID:     dephealthName(),
		Group:         cfg.DephealthGroup,
		DB:            pgDB,
		PostgresURL:   cfg.DatabaseURL(),
		CheckInterval: cfg.DephealthCheckInterval,
	}, logger)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
		logger.Warn("Ошибка запуска topologymetrics",
			slog.String("error", startErr.Error()),
		)
	} else {
		logger.Info("topologymetrics запущен",
			slog.String("group", cfg.DephealthGroup),
			slog.String("check_interval", cfg.DephealthCheckInterval.String()),
		)
	}

	// 12. HTTP-сервер. Журнал запросов стоит до аутентификации:
	// user_id передаётся ему через контекст после разбора токена.
	tokenAuth := middleware.NewTokenAuth(authSvc, logger)
	srv := server.New(cfg, logger, apiHandler, staticHandler,
		middleware.RequestID(),
		middleware.MetricsMiddleware(cfg.UploadPublicPrefix),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.CORSOrigins),
		tokenAuth.Optional(),
	)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 13. Остановка фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}
	logger.Info("P-Music API остановлен")
}
