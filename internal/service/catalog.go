// catalog.go — каталог песен и альбомов: выборка с фильтрами, видимость
// неодобренного контента, модерация, счётчик прослушиваний.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Andert51/P-Music-td/internal/domain/model"
	"github.com/Andert51/P-Music-td/internal/domain/rbac"
	"github.com/Andert51/P-Music-td/internal/repository"
	"github.com/Andert51/P-Music-td/internal/storage/assetstore"
)

// Параметры пагинации каталога.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Prometheus-метрики каталога.
var (
	songPlaysTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pm_song_plays_total",
		Help: "Общее количество зарегистрированных прослушиваний.",
	})
	moderationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pm_moderation_actions_total",
		Help: "Количество действий модерации.",
	}, []string{"entity", "approved"})
)

// TxRunner — выполнение единицы работы в транзакции (реализуется *repository.TxRunner).
type TxRunner interface {
	InTx(ctx context.Context, fn func(repos *repository.Repositories) error) error
}

// FileStore — файловое хранилище (реализуется *assetstore.Store).
type FileStore interface {
	Store(f *assetstore.File, bucket assetstore.Bucket) (*assetstore.StoredFile, error)
	Delete(bucket assetstore.Bucket, filename string) error
	DeleteByPath(webPath string) error
	Exists(webPath string) bool
	ParseWebPath(webPath string) (assetstore.Bucket, string, error)
}

// SongQuery — параметры выборки песен из запроса.
type SongQuery struct {
	Skip  *int
	Limit *int
	// ApprovedOnly — nil означает true
	ApprovedOnly *bool
	Search       *string
	AlbumID      *int64
	OrderBy      string
}

// CreateSongParams — запись песни через каталог (файл уже загружен).
type CreateSongParams struct {
	Title       string
	Artist      string
	Duration    int
	FilePath    string
	CoverURL    *string
	Genre       *string
	AlbumID     *int64
	TrackNumber *int
}

// CreateAlbumParams — запись альбома через каталог.
type CreateAlbumParams struct {
	Title       string
	Description *string
	CoverURL    *string
	ReleaseDate *time.Time
}

// CatalogService — чтение и изменение каталога.
type CatalogService struct {
	repos         *repository.Repositories
	tx            TxRunner
	files         FileStore
	albums        *AlbumCache
	searchEnabled bool
	logger        *slog.Logger
}

// NewCatalogService создаёт сервис каталога.
func NewCatalogService(
	repos *repository.Repositories,
	tx TxRunner,
	files FileStore,
	albums *AlbumCache,
	searchEnabled bool,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		repos:         repos,
		tx:            tx,
		files:         files,
		albums:        albums,
		searchEnabled: searchEnabled,
		logger:        logger.With(slog.String("component", "catalog_service")),
	}
}

// Page нормализует параметры пагинации: limit в [1,100] (по умолчанию 20), skip ≥ 0.
func Page(skip, limit *int) (offset, l int) {
	l = DefaultPageLimit
	if limit != nil {
		l = min(max(*limit, 1), MaxPageLimit)
	}
	if skip != nil && *skip > 0 {
		offset = *skip
	}
	return offset, l
}

// canManage — владелец ресурса или модератор.
func canManage(actor *model.User, ownerID int64) bool {
	return actor != nil && rbac.CanManage(actor.Role, actor.ID, ownerID)
}

// requireCapability возвращает ErrUnauthorized для анонима и ErrForbidden
// при недостаточной роли.
func requireCapability(actor *model.User, c rbac.Capability) error {
	if actor == nil {
		return fmt.Errorf("%w: требуется вход в систему", ErrUnauthorized)
	}
	if !rbac.Can(actor.Role, c) {
		return fmt.Errorf("%w: роль %s не позволяет действие %s", ErrForbidden, actor.Role, c)
	}
	return nil
}

// --- Песни ---

// ListSongs возвращает песни по фильтрам.
// approved_only=false доступен администратору (все песни) и создателю
// (одобренные и собственные); остальным — ErrForbidden.
func (s *CatalogService) ListSongs(ctx context.Context, actor *model.User, q SongQuery) ([]*model.Song, error) {
	if !repository.ValidSongOrder(q.OrderBy) {
		return nil, validationError("order_by должен быть одним из: play_count, created_at, title")
	}

	filters := repository.SongFilters{
		ApprovedOnly: true,
		AlbumID:      q.AlbumID,
		OrderBy:      q.OrderBy,
	}

	if q.ApprovedOnly != nil && !*q.ApprovedOnly {
		switch {
		case actor == nil:
			return nil, fmt.Errorf("%w: неодобренные песни доступны только после входа", ErrUnauthorized)
		case rbac.Can(actor.Role, rbac.CapModerate):
			filters.ApprovedOnly = false
		case rbac.Can(actor.Role, rbac.CapUpload):
			filters.ApprovedOnly = false
			filters.VisibleTo = &actor.ID
		default:
			return nil, fmt.Errorf("%w: неодобренные песни доступны только создателям и администраторам", ErrForbidden)
		}
	}

	if q.Search != nil && strings.TrimSpace(*q.Search) != "" {
		if s.searchEnabled {
			filters.Search = q.Search
		} else {
			s.logger.Debug("Поиск отключён, параметр search проигнорирован")
		}
	}

	offset, limit := Page(q.Skip, q.Limit)
	songs, err := s.repos.Songs.List(ctx, filters, limit, offset)
	if err != nil {
		return nil, mapRepoError(err, "получение списка песен")
	}
	return songs, nil
}

// GetSong возвращает песню. Неодобренная песня видна только владельцу
// и администратору, для остальных — ErrNotFound.
func (s *CatalogService) GetSong(ctx context.Context, actor *model.User, id int64) (*model.Song, error) {
	song, err := s.repos.Songs.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("песня %d", id))
	}
	if !song.IsApproved && !canManage(actor, song.CreatorID) {
		return nil, fmt.Errorf("%w: песня %d", ErrNotFound, id)
	}
	return song, nil
}

// CreateSong создаёт запись песни для уже загруженного аудиофайла.
// Песня создателя или администратора публикуется сразу.
func (s *CatalogService) CreateSong(ctx context.Context, actor *model.User, p CreateSongParams) (*model.Song, error) {
	if err := requireCapability(actor, rbac.CapUpload); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(p.Title)
	artist := strings.TrimSpace(p.Artist)
	if title == "" || artist == "" {
		return nil, validationError("title и artist обязательны")
	}
	if err := checkDuration(p.Duration); err != nil {
		return nil, err
	}
	if p.TrackNumber != nil {
		if err := checkTrackNumber(*p.TrackNumber); err != nil {
			return nil, err
		}
	}

	filePath, err := s.checkFilePath(p.FilePath, assetstore.BucketSongs)
	if err != nil {
		return nil, err
	}
	if !s.files.Exists(filePath) {
		return nil, validationError("аудиофайл %s не найден в хранилище", filePath)
	}
	// Аудиофайл принадлежит ровно одной песне
	taken, err := s.repos.Songs.FileReferenced(ctx, filePath)
	if err != nil {
		return nil, mapRepoError(err, "проверка аудиофайла")
	}
	if taken {
		return nil, fmt.Errorf("%w: аудиофайл %s уже используется", ErrConflict, filePath)
	}

	var coverURL *string
	if p.CoverURL != nil && *p.CoverURL != "" {
		cover, err := s.checkFilePath(*p.CoverURL, assetstore.BucketSongCovers, assetstore.BucketAlbumCovers)
		if err != nil {
			return nil, err
		}
		coverURL = &cover
	}

	if p.AlbumID != nil {
		album, err := s.repos.Albums.GetByID(ctx, *p.AlbumID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, validationError("альбом %d не существует", *p.AlbumID)
			}
			return nil, mapRepoError(err, "получение альбома")
		}
		if !canManage(actor, album.CreatorID) {
			return nil, fmt.Errorf("%w: альбом %d принадлежит другому пользователю", ErrForbidden, album.ID)
		}
	}

	song := &model.Song{
		Title:       title,
		Artist:      artist,
		Duration:    p.Duration,
		FilePath:    filePath,
		CoverURL:    coverURL,
		Genre:       trimOptional(p.Genre),
		AlbumID:     p.AlbumID,
		TrackNumber: p.TrackNumber,
		CreatorID:   actor.ID,
		IsApproved:  rbac.AutoApproves(actor.Role),
	}
	if err := s.repos.Songs.Create(ctx, song); err != nil {
		return nil, mapRepoError(err, "создание песни")
	}

	s.logger.Info("Песня создана",
		slog.Int64("song_id", song.ID),
		slog.Int64("creator_id", actor.ID),
		slog.Bool("approved", song.IsApproved),
	)
	return song, nil
}

// ApproveSong меняет статус одобрения песни (только администратор).
func (s *CatalogService) ApproveSong(ctx context.Context, actor *model.User, id int64, approved bool) (*model.Song, error) {
	if err := requireCapability(actor, rbac.CapModerate); err != nil {
		return nil, err
	}

	song, err := s.repos.Songs.SetApproved(ctx, id, approved)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("песня %d", id))
	}
	moderationTotal.WithLabelValues("song", fmt.Sprint(approved)).Inc()

	s.logger.Info("Статус песни изменён",
		slog.Int64("song_id", id),
		slog.Bool("approved", approved),
		slog.Int64("moderator_id", actor.ID),
	)
	return song, nil
}

// DeleteSong удаляет песню (владелец или администратор) и её файлы.
// Обложка удаляется, только если она принадлежит песне, а не альбому.
func (s *CatalogService) DeleteSong(ctx context.Context, actor *model.User, id int64) error {
	if actor == nil {
		return fmt.Errorf("%w: требуется вход в систему", ErrUnauthorized)
	}

	song, err := s.repos.Songs.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err, fmt.Sprintf("песня %d", id))
	}
	if !canManage(actor, song.CreatorID) {
		return fmt.Errorf("%w: удалить песню может только владелец или администратор", ErrForbidden)
	}

	if err := s.repos.Songs.Delete(ctx, id); err != nil {
		return mapRepoError(err, fmt.Sprintf("песня %d", id))
	}

	paths := []string{song.FilePath}
	if song.CoverURL != nil {
		if bucket, _, err := s.files.ParseWebPath(*song.CoverURL); err == nil && bucket == assetstore.BucketSongCovers {
			paths = append(paths, *song.CoverURL)
		}
	}
	s.removeUnreferenced(ctx, paths...)

	s.logger.Info("Песня удалена",
		slog.Int64("song_id", id),
		slog.Int64("actor_id", actor.ID),
	)
	return nil
}

// PlaySong регистрирует прослушивание и возвращает новое значение счётчика.
func (s *CatalogService) PlaySong(ctx context.Context, actor *model.User, id int64) (int64, error) {
	if _, err := s.GetSong(ctx, actor, id); err != nil {
		return 0, err
	}

	count, err := s.repos.Songs.IncrementPlayCount(ctx, id)
	if err != nil {
		return 0, mapRepoError(err, fmt.Sprintf("песня %d", id))
	}
	songPlaysTotal.Inc()
	return count, nil
}

// --- Альбомы ---

// ListAlbums возвращает одобренные альбомы, новые первыми.
func (s *CatalogService) ListAlbums(ctx context.Context, skip, limit *int) ([]*model.Album, error) {
	offset, l := Page(skip, limit)
	albums, err := s.repos.Albums.List(ctx, repository.AlbumFilters{ApprovedOnly: true}, l, offset)
	if err != nil {
		return nil, mapRepoError(err, "получение списка альбомов")
	}
	return albums, nil
}

// GetAlbum возвращает альбом (с кэшированием).
// Неодобренный альбом виден только владельцу и администратору.
func (s *CatalogService) GetAlbum(ctx context.Context, actor *model.User, id int64) (*model.Album, error) {
	album, ok := s.albums.Get(id)
	if !ok {
		var err error
		album, err = s.repos.Albums.GetByID(ctx, id)
		if err != nil {
			return nil, mapRepoError(err, fmt.Sprintf("альбом %d", id))
		}
		s.albums.Set(album)
	}

	if !album.IsApproved && !canManage(actor, album.CreatorID) {
		return nil, fmt.Errorf("%w: альбом %d", ErrNotFound, id)
	}
	return album, nil
}

// AlbumSongs возвращает одобренные песни альбома по номерам треков.
func (s *CatalogService) AlbumSongs(ctx context.Context, actor *model.User, id int64) ([]*model.Song, error) {
	if _, err := s.GetAlbum(ctx, actor, id); err != nil {
		return nil, err
	}
	songs, err := s.repos.Songs.ListByAlbum(ctx, id, true)
	if err != nil {
		return nil, mapRepoError(err, "получение песен альбома")
	}
	return songs, nil
}

// CreateAlbum создаёт альбом через каталог (создатель или администратор, публикуется сразу).
func (s *CatalogService) CreateAlbum(ctx context.Context, actor *model.User, p CreateAlbumParams) (*model.Album, error) {
	if err := requireCapability(actor, rbac.CapUpload); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, validationError("title обязателен")
	}

	var coverURL *string
	if p.CoverURL != nil && *p.CoverURL != "" {
		cover, err := s.checkFilePath(*p.CoverURL, assetstore.BucketAlbumCovers)
		if err != nil {
			return nil, err
		}
		coverURL = &cover
	}

	album := &model.Album{
		Title:       title,
		Description: trimOptional(p.Description),
		CoverURL:    coverURL,
		ReleaseDate: p.ReleaseDate,
		CreatorID:   actor.ID,
		IsApproved:  rbac.AutoApproves(actor.Role),
	}
	if err := s.repos.Albums.Create(ctx, album); err != nil {
		return nil, mapRepoError(err, "создание альбома")
	}

	s.logger.Info("Альбом создан",
		slog.Int64("album_id", album.ID),
		slog.Int64("creator_id", actor.ID),
	)
	return album, nil
}

// ApproveAlbum меняет статус альбома вместе со статусом его песен
// в одной транзакции (только администратор).
func (s *CatalogService) ApproveAlbum(ctx context.Context, actor *model.User, id int64, approved bool) (*model.Album, error) {
	if err := requireCapability(actor, rbac.CapModerate); err != nil {
		return nil, err
	}

	var (
		album   *model.Album
		changed int64
	)
	err := s.tx.InTx(ctx, func(r *repository.Repositories) error {
		var err error
		album, err = r.Albums.SetApproved(ctx, id, approved)
		if err != nil {
			return err
		}
		changed, err = r.Songs.SetApprovedByAlbum(ctx, id, approved)
		return err
	})
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("альбом %d", id))
	}

	s.albums.Delete(id)
	moderationTotal.WithLabelValues("album", fmt.Sprint(approved)).Inc()

	s.logger.Info("Статус альбома изменён",
		slog.Int64("album_id", id),
		slog.Bool("approved", approved),
		slog.Int64("songs_changed", changed),
		slog.Int64("moderator_id", actor.ID),
	)
	return album, nil
}

// checkFilePath нормализует веб-путь (обратные слэши → прямые) и проверяет,
// что он указывает на файл одного из допустимых бакетов.
func (s *CatalogService) checkFilePath(webPath string, allowed ...assetstore.Bucket) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(webPath), `\`, "/")
	bucket, _, err := s.files.ParseWebPath(normalized)
	if err != nil {
		return "", classify(ErrValidation, err)
	}
	for _, b := range allowed {
		if bucket == b {
			return normalized, nil
		}
	}
	return "", validationError("путь %s не относится к бакету %s", normalized, allowed[0])
}

// removeUnreferenced удаляет файлы, на которые больше не ссылается ни одна запись.
func (s *CatalogService) removeUnreferenced(ctx context.Context, paths ...string) {
	orphans := make([]string, 0, len(paths))
	for _, p := range paths {
		referenced, err := s.repos.Songs.FileReferenced(ctx, p)
		if err != nil {
			s.logger.Warn("Не удалось проверить ссылки на файл, файл оставлен",
				slog.String("path", p),
				slog.String("error", err.Error()),
			)
			continue
		}
		if referenced {
			s.logger.Debug("Файл используется другой записью", slog.String("path", p))
			continue
		}
		orphans = append(orphans, p)
	}
	s.removeFiles(orphans...)
}

// removeFiles удаляет файлы по веб-путям; ошибки только логируются.
func (s *CatalogService) removeFiles(paths ...string) {
	for _, p := range paths {
		if err := s.files.DeleteByPath(p); err != nil {
			s.logger.Warn("Не удалось удалить файл",
				slog.String("path", p),
				slog.String("error", err.Error()),
			)
		}
	}
}

// trimOptional обрезает пробелы; пустая строка превращается в nil.
func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
