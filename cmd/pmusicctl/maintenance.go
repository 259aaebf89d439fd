package main

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Andert51/P-Music-td/internal/database"
	"github.com/Andert51/P-Music-td/internal/repository"
	"github.com/Andert51/P-Music-td/internal/storage/assetstore"
)

// Migrate применяет миграции БД.
func (r *Runner) Migrate(_ context.Context, _ *cli.Command) error {
	version, err := database.Migrate(r.cfg, r.slogger())
	if err != nil {
		return err
	}
	r.printf("Схема БД: версия %d\n", version)
	return nil
}

// Clean удаляет данные каталога в порядке внешних ключей и очищает
// бакеты хранилища. Без --keep-users удаляются и пользователи.
func (r *Runner) Clean(ctx context.Context, cmd *cli.Command) error {
	keepUsers := cmd.Bool("keep-users")

	if !cmd.Bool("yes") {
		what := "каталог и пользователи"
		if keepUsers {
			what = "каталог"
		}
		if !r.confirm(fmt.Sprintf("Будут удалены %s, а также все загруженные файлы. Продолжить? [y/N]: ", what)) {
			r.printf("Отменено\n")
			return nil
		}
	}

	pool, _, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	counts := map[string]int64{}
	err = repository.NewTxRunner(pool).InTx(ctx, func(repos *repository.Repositories) error {
		catalog, err := repos.Maintenance.ClearCatalog(ctx)
		if err != nil {
			return err
		}
		for k, v := range catalog {
			counts[k] = v
		}
		if keepUsers {
			return nil
		}
		n, err := repos.Users.DeleteAll(ctx)
		if err != nil {
			return err
		}
		counts["users"] = n
		return nil
	})
	if err != nil {
		return err
	}
	r.printCounts("Удалено строк", counts)

	store, err := assetstore.New(r.cfg.UploadDir, r.cfg.UploadPublicPrefix)
	if err != nil {
		return err
	}
	removed, err := store.Reset()
	if err != nil {
		return err
	}
	r.logger.Info("Хранилище очищено", "root", store.Root(), "files", removed)
	return nil
}

// FixPaths нормализует разделители в путях к файлам.
func (r *Runner) FixPaths(ctx context.Context, _ *cli.Command) error {
	pool, repos, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	counts, err := repos.Maintenance.NormalizePaths(ctx)
	if err != nil {
		return err
	}
	r.printCounts("Исправлено записей", counts)
	return nil
}

// CheckFiles сообщает о песнях без аудиофайла в хранилище.
// Возвращает ошибку, если найден хотя бы один отсутствующий файл.
func (r *Runner) CheckFiles(ctx context.Context, _ *cli.Command) error {
	pool, repos, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	store, err := assetstore.New(r.cfg.UploadDir, r.cfg.UploadPublicPrefix)
	if err != nil {
		return err
	}

	files, err := repos.Maintenance.SongFiles(ctx)
	if err != nil {
		return err
	}

	missing := missingFiles(files, store.Exists)
	for _, f := range missing {
		r.logger.Warn("Аудиофайл не найден", "song_id", f.ID, "title", f.Title, "path", f.FilePath)
	}
	r.printf("Проверено песен: %d, отсутствует файлов: %d\n", len(files), len(missing))
	if len(missing) > 0 {
		return fmt.Errorf("отсутствует %d аудиофайлов", len(missing))
	}
	return nil
}

// missingFiles отбирает записи, для которых exists возвращает false.
func missingFiles(files []repository.SongFile, exists func(webPath string) bool) []repository.SongFile {
	var missing []repository.SongFile
	for _, f := range files {
		if !exists(f.FilePath) {
			missing = append(missing, f)
		}
	}
	return missing
}

// confirm запрашивает подтверждение у пользователя.
func (r *Runner) confirm(prompt string) bool {
	r.printf("%s", prompt)
	line, _ := bufio.NewReader(r.input).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes" || answer == "д" || answer == "да"
}

func (r *Runner) printCounts(title string, counts map[string]int64) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r.printf("%s:\n", title)
	for _, k := range keys {
		r.printf("  %-16s %d\n", k, counts[k])
	}
}
