package repository

import (
	"context"
	"fmt"
)

// SongFile — путь к аудиофайлу песни (для проверки целостности хранилища).
type SongFile struct {
	ID       int64
	Title    string
	FilePath string
}

// MaintenanceRepository — служебные операции для CLI pmusicctl.
type MaintenanceRepository interface {
	// ClearCatalog удаляет лайки, плейлисты, песни и альбомы в порядке
	// внешних ключей. Возвращает число удалённых строк по таблицам.
	ClearCatalog(ctx context.Context) (map[string]int64, error)
	// NormalizePaths заменяет обратные слэши на прямые во всех путях к файлам.
	NormalizePaths(ctx context.Context) (map[string]int64, error)
	// SongFiles возвращает пути аудиофайлов всех песен.
	SongFiles(ctx context.Context) ([]SongFile, error)
}

// maintenanceRepo — реализация MaintenanceRepository.
type maintenanceRepo struct {
	db DBTX
}

// NewMaintenanceRepository создаёт репозиторий служебных операций.
func NewMaintenanceRepository(db DBTX) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

// catalogTables — таблицы каталога в порядке удаления.
var catalogTables = []string{"liked_songs", "playlist_songs", "playlists", "songs", "albums"}

func (r *maintenanceRepo) ClearCatalog(ctx context.Context) (map[string]int64, error) {
	result := make(map[string]int64, len(catalogTables))
	for _, table := range catalogTables {
		tag, err := r.db.Exec(ctx, "DELETE FROM "+table)
		if err != nil {
			return nil, fmt.Errorf("ошибка очистки таблицы %s: %w", table, err)
		}
		result[table] = tag.RowsAffected()
	}
	return result, nil
}

// pathColumns — столбцы с веб-путями файлов.
var pathColumns = []struct {
	table  string
	column string
}{
	{"songs", "file_path"},
	{"songs", "cover_url"},
	{"albums", "cover_url"},
	{"users", "avatar_url"},
}

func (r *maintenanceRepo) NormalizePaths(ctx context.Context) (map[string]int64, error) {
	result := make(map[string]int64, len(pathColumns))
	for _, pc := range pathColumns {
		query := fmt.Sprintf(
			`UPDATE %[1]s SET %[2]s = REPLACE(%[2]s, '\', '/') WHERE POSITION('\' IN %[2]s) > 0`,
			pc.table, pc.column)

		tag, err := r.db.Exec(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("ошибка нормализации %s.%s: %w", pc.table, pc.column, err)
		}
		result[pc.table+"."+pc.column] = tag.RowsAffected()
	}
	return result, nil
}

func (r *maintenanceRepo) SongFiles(ctx context.Context) ([]SongFile, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, file_path FROM songs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения путей песен: %w", err)
	}
	defer rows.Close()

	var result []SongFile
	for rows.Next() {
		var f SongFile
		if err := rows.Scan(&f.ID, &f.Title, &f.FilePath); err != nil {
			return nil, fmt.Errorf("ошибка сканирования пути песни: %w", err)
		}
		result = append(result, f)
	}
	return result, rows.Err()
}
