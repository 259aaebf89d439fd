package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v3"

	"github.com/Andert51/P-Music-td/internal/service"
)

//go:embed seed.toml
var defaultSeed string

// SeedFile — содержимое TOML-файла начальных данных.
type SeedFile struct {
	Users []SeedUser `toml:"users"`
}

// SeedUser — учётная запись для создания.
type SeedUser struct {
	Username string `toml:"username"`
	Email    string `toml:"email"`
	Password string `toml:"password"`
	FullName string `toml:"full_name"`
	Role     string `toml:"role"`
}

// loadSeed читает файл начальных данных; пустой path — встроенный набор.
func loadSeed(path string) (*SeedFile, error) {
	var seed SeedFile
	var md toml.MetaData
	var err error
	if path == "" {
		md, err = toml.Decode(defaultSeed, &seed)
	} else {
		md, err = toml.DecodeFile(path, &seed)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения seed-файла: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("неизвестные ключи в seed-файле: %v", undecoded)
	}
	if len(seed.Users) == 0 {
		return nil, errors.New("seed-файл не содержит пользователей")
	}
	return &seed, nil
}

// Seed создаёт учётные записи. Существующие username/email пропускаются.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	seed, err := loadSeed(cmd.String("file"))
	if err != nil {
		return err
	}

	pool, repos, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Токены при заполнении не выпускаются
	auth, err := service.NewAuthService(repos.Users, nil, r.cfg.BcryptCost, r.slogger())
	if err != nil {
		return err
	}

	created, skipped := 0, 0
	for _, u := range seed.Users {
		p := service.RegisterParams{
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
			Role:     u.Role,
		}
		if u.FullName != "" {
			name := u.FullName
			p.FullName = &name
		}

		user, err := auth.Register(ctx, p)
		switch {
		case errors.Is(err, service.ErrConflict):
			r.logger.Info("Пользователь уже существует, пропуск", "username", u.Username)
			skipped++
		case err != nil:
			return fmt.Errorf("пользователь %s: %w", u.Username, err)
		default:
			r.logger.Info("Пользователь создан", "id", user.ID, "username", user.Username, "role", user.Role)
			created++
		}
	}

	r.printf("Создано: %d, пропущено: %d\n", created, skipped)
	return nil
}
