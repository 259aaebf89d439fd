package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v3"

	"github.com/Andert51/P-Music-td/internal/config"
	"github.com/Andert51/P-Music-td/internal/database"
	"github.com/Andert51/P-Music-td/internal/repository"
)

// newLogger создаёт логгер CLI с временными метками.
func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pmusicctl",
	})
}

// Runner хранит зависимости команд и реализует их действия.
type Runner struct {
	logger *log.Logger
	input  io.Reader
	output io.Writer
	cfg    *config.Config
}

// RunnerOpts — параметры создания Runner.
type RunnerOpts struct {
	Logger *log.Logger
	Input  io.Reader
	Output io.Writer
}

// NewRunner создаёт Runner; незаданные поля получают значения по умолчанию.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = newLogger(os.Stderr)
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{
		logger: opts.Logger,
		input:  opts.Input,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range []func(*Runner) *cli.Command{
		migrateCommand, seedCommand, cleanCommand, fixPathsCommand, checkFilesCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// Before загружает .env и конфигурацию до выполнения любой команды.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		r.logger.SetLevel(log.DebugLevel)
	}
	if err := config.LoadDotEnv(cmd.String("env-file")); err != nil {
		return ctx, err
	}
	cfg, err := config.Load()
	if err != nil {
		return ctx, fmt.Errorf("конфигурация: %w", err)
	}
	r.cfg = cfg
	r.logger.Debug("Конфигурация загружена", "db_host", cfg.DBHost, "db_name", cfg.DBName, "upload_dir", cfg.UploadDir)
	return ctx, nil
}

// slog возвращает *slog.Logger поверх логгера CLI для внутренних пакетов.
func (r *Runner) slogger() *slog.Logger {
	return slog.New(r.logger)
}

// connect открывает пул соединений с PostgreSQL.
func (r *Runner) connect(ctx context.Context) (*pgxpool.Pool, *repository.Repositories, error) {
	pool, err := database.Connect(ctx, r.cfg, r.slogger())
	if err != nil {
		return nil, nil, err
	}
	return pool, repository.NewRepositories(pool), nil
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.output, format, args...)
}
