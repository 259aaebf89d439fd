// Точка входа pmusicctl — служебная утилита P-Music:
// миграции, начальные данные, очистка каталога и проверка файлов.
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Andert51/P-Music-td/internal/config"
)

func main() {
	logger := newLogger(os.Stderr)

	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:    "pmusicctl",
		Usage:   "Служебные операции P-Music (конфигурация из PM_* и .env)",
		Version: config.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "Путь к файлу .env",
				Value:   ".env",
				Sources: cli.EnvVars("PM_ENV_FILE"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Подробный вывод (уровень debug)",
			},
		},
		Before:   runner.Before,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("Ошибка выполнения команды", "error", err)
	}
}
