// dephealth.go — мониторинг PostgreSQL через topologymetrics SDK.
// Проверка идёт через *sql.DB поверх рабочего pgxpool, поэтому исчерпание
// пула видно в метриках app_dependency_* на /metrics.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	"github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/pgcheck"
	"github.com/prometheus/client_golang/prometheus"
)

// DephealthOptions — параметры мониторинга.
type DephealthOptions struct {
	// Имя вершины графа (см. cmd/pmusic-api/dephealth_name.go)
	ServiceID string
	// PM_DEPHEALTH_GROUP
	Group string
	// Адаптер pgxpool (stdlib.OpenDBFromPool)
	DB *sql.DB
	// URL PostgreSQL — только для лейблов host/port
	PostgresURL string
	// PM_DEPHEALTH_CHECK_INTERVAL
	CheckInterval time.Duration
	// nil — глобальный Prometheus registry
	Registerer prometheus.Registerer
}

// DephealthService — периодическая проверка PostgreSQL.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService проверяет параметры и регистрирует метрики.
func NewDephealthService(opts DephealthOptions, logger *slog.Logger) (*DephealthService, error) {
	switch {
	case opts.ServiceID == "":
		return nil, errors.New("dephealth: пустое имя сервиса")
	case opts.DB == nil:
		return nil, errors.New("dephealth: не задан *sql.DB")
	case opts.CheckInterval <= 0:
		return nil, fmt.Errorf("dephealth: некорректный интервал проверки %v", opts.CheckInterval)
	}

	dhOpts := []dephealth.Option{
		dephealth.WithLogger(logger),
		dephealth.AddDependency("postgresql", dephealth.TypePostgres,
			pgcheck.New(pgcheck.WithDB(opts.DB)),
			dephealth.FromURL(opts.PostgresURL),
			dephealth.CheckInterval(opts.CheckInterval),
			dephealth.Critical(true),
		),
	}
	if opts.Registerer != nil {
		dhOpts = append(dhOpts, dephealth.WithRegisterer(opts.Registerer))
	}

	dh, err := dephealth.New(opts.ServiceID, opts.Group, dhOpts...)
	if err != nil {
		return nil, fmt.Errorf("dephealth: %w", err)
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

func (ds *DephealthService) Start(ctx context.Context) error {
	return ds.dh.Start(ctx)
}

// Stop останавливает проверки и пишет в журнал последнее известное состояние.
func (ds *DephealthService) Stop() {
	healthy, total := ds.summary()
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен",
		slog.Int("healthy", healthy),
		slog.Int("total", total),
	)
}

// Health — состояние по ключу "имя:хост:порт".
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}

func (ds *DephealthService) summary() (healthy, total int) {
	for _, ok := range ds.dh.Health() {
		total++
		if ok {
			healthy++
		}
	}
	return healthy, total
}
