package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Andert51/P-Music-td/internal/domain/model"
)

// songColumns — список столбцов таблицы songs (алиас s) для SELECT-запросов.
const songColumns = `s.id, s.title, s.artist, s.duration, s.file_path, s.cover_url,
	s.genre, s.album_id, s.track_number, s.creator_id, s.is_approved,
	s.play_count, s.created_at, s.updated_at`

// Допустимые ключи сортировки песен.
const (
	SongOrderPlayCount = "play_count"
	SongOrderCreatedAt = "created_at"
	SongOrderTitle     = "title"
)

// SongFilters — параметры выборки песен. nil = фильтр не применяется.
type SongFilters struct {
	// ApprovedOnly — только одобренные песни
	ApprovedOnly bool
	// VisibleTo — при ApprovedOnly=false ограничивает выборку одобренными
	// песнями и песнями указанного создателя
	VisibleTo *int64
	// AlbumID — только песни альбома
	AlbumID *int64
	// Search — подстрока в названии или исполнителе (без учёта регистра)
	Search *string
	// OrderBy — play_count (по умолчанию), created_at, title
	OrderBy string
}

// SongRepository — интерфейс доступа к таблице songs.
type SongRepository interface {
	// List возвращает песни по фильтрам с пагинацией.
	List(ctx context.Context, filters SongFilters, limit, offset int) ([]*model.Song, error)
	GetByID(ctx context.Context, id int64) (*model.Song, error)
	// Create вставляет песню и заполняет ID, PlayCount и временные метки.
	Create(ctx context.Context, s *model.Song) error
	// IncrementPlayCount атомарно увеличивает счётчик прослушиваний на 1
	// и возвращает новое значение.
	IncrementPlayCount(ctx context.Context, id int64) (int64, error)
	SetApproved(ctx context.Context, id int64, approved bool) (*model.Song, error)
	// SetApprovedByAlbum меняет статус всех песен альбома, возвращает число изменённых.
	SetApprovedByAlbum(ctx context.Context, albumID int64, approved bool) (int64, error)
	Delete(ctx context.Context, id int64) error
	// ListByCreator — все песни пользователя, новые первыми.
	ListByCreator(ctx context.Context, creatorID int64) ([]*model.Song, error)
	// ListByAlbum — песни альбома в порядке номеров треков.
	ListByAlbum(ctx context.Context, albumID int64, approvedOnly bool) ([]*model.Song, error)
	// ListLikedBy — понравившиеся пользователю песни, последние лайки первыми.
	ListLikedBy(ctx context.Context, userID int64) ([]*model.Song, error)
	// ListByPlaylist — песни плейлиста в порядке добавления.
	ListByPlaylist(ctx context.Context, playlistID int64) ([]*model.Song, error)
	// FileReferenced — ссылается ли на веб-путь хоть одна запись:
	// аудио или обложка песни, обложка альбома, аватар.
	FileReferenced(ctx context.Context, webPath string) (bool, error)
}

// songRepo — реализация SongRepository.
type songRepo struct {
	db DBTX
}

// NewSongRepository создаёт репозиторий песен.
func NewSongRepository(db DBTX) SongRepository {
	return &songRepo{db: db}
}

func scanSong(row pgx.Row) (*model.Song, error) {
	s := &model.Song{}
	err := row.Scan(
		&s.ID, &s.Title, &s.Artist, &s.Duration, &s.FilePath, &s.CoverURL,
		&s.Genre, &s.AlbumID, &s.TrackNumber, &s.CreatorID, &s.IsApproved,
		&s.PlayCount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *songRepo) List(ctx context.Context, filters SongFilters, limit, offset int) ([]*model.Song, error) {
	where, args := buildSongWhere(filters, 1)
	argNum := len(args) + 1

	query := fmt.Sprintf(
		`SELECT %s FROM songs s %s %s LIMIT $%d OFFSET $%d`,
		songColumns, where, buildSongOrderBy(filters.OrderBy), argNum, argNum+1,
	)
	args = append(args, limit, offset)

	return r.query(ctx, query, args...)
}

func (r *songRepo) GetByID(ctx context.Context, id int64) (*model.Song, error) {
	query := fmt.Sprintf(`SELECT %s FROM songs s WHERE s.id = $1`, songColumns)

	s, err := scanSong(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения песни: %w", err)
	}
	return s, nil
}

func (r *songRepo) Create(ctx context.Context, s *model.Song) error {
	query := `
		INSERT INTO songs (title, artist, duration, file_path, cover_url, genre,
			album_id, track_number, creator_id, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, play_count, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		s.Title, s.Artist, s.Duration, s.FilePath, s.CoverURL, s.Genre,
		s.AlbumID, s.TrackNumber, s.CreatorID, s.IsApproved,
	).Scan(&s.ID, &s.PlayCount, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: альбом или создатель не существует", ErrReference)
		}
		return fmt.Errorf("ошибка создания песни: %w", err)
	}
	return nil
}

func (r *songRepo) IncrementPlayCount(ctx context.Context, id int64) (int64, error) {
	// Одна команда UPDATE: блокировка строки сериализует параллельные инкременты
	query := `UPDATE songs SET play_count = play_count + 1 WHERE id = $1 RETURNING play_count`

	var count int64
	if err := r.db.QueryRow(ctx, query, id).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("ошибка увеличения счётчика прослушиваний: %w", err)
	}
	return count, nil
}

func (r *songRepo) SetApproved(ctx context.Context, id int64, approved bool) (*model.Song, error) {
	query := fmt.Sprintf(`
		UPDATE songs s SET is_approved = $2
		WHERE s.id = $1
		RETURNING %s`, songColumns)

	s, err := scanSong(r.db.QueryRow(ctx, query, id, approved))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка изменения статуса песни: %w", err)
	}
	return s, nil
}

func (r *songRepo) SetApprovedByAlbum(ctx context.Context, albumID int64, approved bool) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE songs SET is_approved = $2 WHERE album_id = $1 AND is_approved <> $2`, albumID, approved)
	if err != nil {
		return 0, fmt.Errorf("ошибка изменения статуса песен альбома: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *songRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления песни: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *songRepo) FileReferenced(ctx context.Context, webPath string) (bool, error) {
	var referenced bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM songs WHERE file_path = $1 OR cover_url = $1)
		    OR EXISTS (SELECT 1 FROM albums WHERE cover_url = $1)
		    OR EXISTS (SELECT 1 FROM users WHERE avatar_url = $1)`, webPath,
	).Scan(&referenced)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки ссылок на файл: %w", err)
	}
	return referenced, nil
}

func (r *songRepo) ListByCreator(ctx context.Context, creatorID int64) ([]*model.Song, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM songs s
		WHERE s.creator_id = $1
		ORDER BY s.created_at DESC, s.id DESC`, songColumns)
	return r.query(ctx, query, creatorID)
}

func (r *songRepo) ListByAlbum(ctx context.Context, albumID int64, approvedOnly bool) ([]*model.Song, error) {
	filters := SongFilters{ApprovedOnly: approvedOnly, AlbumID: &albumID}
	where, args := buildSongWhere(filters, 1)

	query := fmt.Sprintf(`
		SELECT %s FROM songs s %s
		ORDER BY s.track_number ASC NULLS LAST, s.id ASC`, songColumns, where)
	return r.query(ctx, query, args...)
}

func (r *songRepo) ListLikedBy(ctx context.Context, userID int64) ([]*model.Song, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM songs s
		JOIN liked_songs l ON l.song_id = s.id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC, s.id DESC`, songColumns)
	return r.query(ctx, query, userID)
}

func (r *songRepo) ListByPlaylist(ctx context.Context, playlistID int64) ([]*model.Song, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM songs s
		JOIN playlist_songs ps ON ps.song_id = s.id
		WHERE ps.playlist_id = $1
		ORDER BY ps.position ASC`, songColumns)
	return r.query(ctx, query, playlistID)
}

func (r *songRepo) query(ctx context.Context, query string, args ...any) ([]*model.Song, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка песен: %w", err)
	}
	defer rows.Close()

	result := make([]*model.Song, 0)
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования песни: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации песен: %w", err)
	}
	return result, nil
}

// buildSongWhere строит WHERE-условие и аргументы для выборки песен.
// startArg — номер первого $-параметра.
func buildSongWhere(filters SongFilters, startArg int) (whereClause string, args []any) {
	var conditions []string
	argNum := startArg

	switch {
	case filters.ApprovedOnly:
		conditions = append(conditions, "s.is_approved = true")
	case filters.VisibleTo != nil:
		// Создатель видит одобренные песни и свои собственные
		conditions = append(conditions, fmt.Sprintf("(s.is_approved = true OR s.creator_id = $%d)", argNum))
		args = append(args, *filters.VisibleTo)
		argNum++
	}

	if filters.AlbumID != nil {
		conditions = append(conditions, fmt.Sprintf("s.album_id = $%d", argNum))
		args = append(args, *filters.AlbumID)
		argNum++
	}

	if filters.Search != nil && strings.TrimSpace(*filters.Search) != "" {
		conditions = append(conditions, fmt.Sprintf(
			`(LOWER(s.title) LIKE $%d ESCAPE '\' OR LOWER(s.artist) LIKE $%d ESCAPE '\')`, argNum, argNum))
		args = append(args, likePattern(strings.TrimSpace(*filters.Search)))
	}

	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args
}

// ValidSongOrder проверяет ключ сортировки (пустой — сортировка по умолчанию).
func ValidSongOrder(orderBy string) bool {
	switch orderBy {
	case "", SongOrderPlayCount, SongOrderCreatedAt, SongOrderTitle:
		return true
	}
	return false
}

// buildSongOrderBy возвращает ORDER BY по whitelist; неизвестный ключ —
// сортировка по популярности.
func buildSongOrderBy(orderBy string) string {
	switch orderBy {
	case SongOrderCreatedAt:
		return "ORDER BY s.created_at DESC, s.id DESC"
	case SongOrderTitle:
		return `ORDER BY s.title COLLATE "C" ASC, s.id ASC`
	default:
		return "ORDER BY s.play_count DESC, s.id ASC"
	}
}
