package main

import "github.com/urfave/cli/v3"

func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Применить миграции БД",
		Action: r.Migrate,
	}
}

func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Создать учётные записи по умолчанию или из TOML-файла",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "TOML-файл с пользователями (по умолчанию встроенный набор)",
			},
		},
		Action: r.Seed,
	}
}

func cleanCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "clean",
		Usage: "Удалить каталог (и пользователей) и очистить хранилище файлов",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Не запрашивать подтверждение",
			},
			&cli.BoolFlag{
				Name:  "keep-users",
				Usage: "Сохранить учётные записи",
			},
		},
		Action: r.Clean,
	}
}

func fixPathsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "fix-paths",
		Usage:  "Заменить обратные слэши в сохранённых путях к файлам",
		Action: r.FixPaths,
	}
}

func checkFilesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "check-files",
		Usage:  "Найти песни, аудиофайл которых отсутствует в хранилище",
		Action: r.CheckFiles,
	}
}
