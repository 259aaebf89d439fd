// upload.go — оркестратор загрузок: проверка прав и файлов, запись
// в хранилище, создание записей каталога, очистка файлов при ошибке.
package service

import (
	"context"
	"encoding/json"
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

// Prometheus-метрики загрузок.
var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pm_uploads_total",
		Help: "Количество загрузок по типу и результату.",
	}, []string{"kind", "result"})
	uploadBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pm_upload_bytes_total",
		Help: "Объём сохранённых файлов по бакетам.",
	}, []string{"bucket"})
)

// AssetKind — тип одиночного файла для /upload/{kind}.
type AssetKind string

// Типы одиночных загрузок.
const (
	AssetSong       AssetKind = "song"
	AssetCover      AssetKind = "cover"
	AssetAlbumCover AssetKind = "album-cover"
	AssetAvatar     AssetKind = "avatar"
)

// assetTarget — бакет, правило и требуемая возможность для типа загрузки.
type assetTarget struct {
	bucket assetstore.Bucket
	rule   assetstore.Rule
	// capability — 0 означает «любой вошедший пользователь»
	capability rbac.Capability
}

var assetTargets = map[AssetKind]assetTarget{
	AssetSong:       {assetstore.BucketSongs, assetstore.AudioRule, rbac.CapUpload},
	AssetCover:      {assetstore.BucketSongCovers, assetstore.ImageRule, rbac.CapUpload},
	AssetAlbumCover: {assetstore.BucketAlbumCovers, assetstore.ImageRule, rbac.CapUpload},
	AssetAvatar:     {assetstore.BucketAvatars, assetstore.ImageRule, 0},
}

// deleteTypes — тип файла в DELETE /upload/file/{type}/{filename} → бакет.
var deleteTypes = map[string]assetstore.Bucket{
	"song":        assetstore.BucketSongs,
	"cover_song":  assetstore.BucketSongCovers,
	"cover_album": assetstore.BucketAlbumCovers,
	// cover — псевдоним cover_song
	"cover":  assetstore.BucketSongCovers,
	"avatar": assetstore.BucketAvatars,
}

// SingleUploadParams — загрузка одной песни.
type SingleUploadParams struct {
	Title    string
	Artist   string
	Duration int
	Genre    *string
	Audio    *assetstore.File
	// Cover — опционально
	Cover *assetstore.File
}

// TrackMetadata — запись songs_data для одного трека альбома.
// Отсутствующие поля заполняются значениями по умолчанию.
type TrackMetadata struct {
	Title  *string `json:"title"`
	Artist *string `json:"artist"`
	Genre  *string `json:"genre"`
	// Duration — секунды; дробная часть отбрасывается
	Duration    *float64 `json:"duration"`
	TrackNumber *int     `json:"track_number"`
}

// AlbumUploadParams — загрузка альбома.
type AlbumUploadParams struct {
	Title       string
	Description *string
	// ReleaseDate — 2006-01-02 или RFC 3339; нераспознанная дата игнорируется
	ReleaseDate string
	// SongsData — JSON-массив TrackMetadata, по одному на аудиофайл
	SongsData  string
	Cover      *assetstore.File
	AudioFiles []*assetstore.File
}

// AlbumUploadResult — созданный альбом и его песни в порядке треков.
type AlbumUploadResult struct {
	Album *model.Album
	Songs []*model.Song
}

// MyUploadsResult — контент пользователя без фильтра одобрения.
type MyUploadsResult struct {
	Songs  []*model.Song
	Albums []*model.Album
}

// UploadService — загрузка файлов и создание записей каталога.
type UploadService struct {
	repos     *repository.Repositories
	tx        TxRunner
	files     FileStore
	enabled   bool
	maxTracks int
	logger    *slog.Logger
}

// NewUploadService создаёт сервис загрузок.
// enabled=false отключает все операции загрузки (ErrFeatureDisabled).
func NewUploadService(
	repos *repository.Repositories,
	tx TxRunner,
	files FileStore,
	enabled bool,
	maxTracks int,
	logger *slog.Logger,
) *UploadService {
	return &UploadService{
		repos:     repos,
		tx:        tx,
		files:     files,
		enabled:   enabled,
		maxTracks: maxTracks,
		logger:    logger.With(slog.String("component", "upload_service")),
	}
}

// Enabled сообщает, включена ли загрузка.
func (s *UploadService) Enabled() bool {
	return s.enabled
}

// UploadSingle загружает одну песню.
//
// Поток:
//  1. Проверка роли (creator/admin)
//  2. Валидация аудио и обложки до любой записи
//  3. Сохранение аудио (songs), затем обложки (covers/songs)
//  4. Создание песни с is_approved=false
//
// При ошибке после сохранения все записанные файлы удаляются.
func (s *UploadService) UploadSingle(ctx context.Context, actor *model.User, p SingleUploadParams) (*model.Song, error) {
	song, err := s.uploadSingle(ctx, actor, p)
	s.observe("single", err)
	return song, err
}

func (s *UploadService) uploadSingle(ctx context.Context, actor *model.User, p SingleUploadParams) (*model.Song, error) {
	if err := s.checkEnabled(); err != nil {
		return nil, err
	}
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

	if err := assetstore.Validate(p.Audio, assetstore.AudioRule); err != nil {
		return nil, mapStoreError(err)
	}
	if p.Cover != nil {
		if err := assetstore.Validate(p.Cover, assetstore.ImageRule); err != nil {
			return nil, mapStoreError(err)
		}
	}

	var stored []string
	rollback := func() { s.cleanup(stored) }

	audio, err := s.store(p.Audio, assetstore.BucketSongs)
	if err != nil {
		return nil, err
	}
	stored = append(stored, audio.Path)

	var coverURL *string
	if p.Cover != nil {
		cover, err := s.store(p.Cover, assetstore.BucketSongCovers)
		if err != nil {
			rollback()
			return nil, err
		}
		stored = append(stored, cover.Path)
		coverURL = &cover.Path
	}

	song := &model.Song{
		Title:      title,
		Artist:     artist,
		Duration:   p.Duration,
		FilePath:   audio.Path,
		CoverURL:   coverURL,
		Genre:      trimOptional(p.Genre),
		CreatorID:  actor.ID,
		IsApproved: false,
	}
	if err := s.repos.Songs.Create(ctx, song); err != nil {
		rollback()
		return nil, mapRepoError(err, "создание песни")
	}

	s.logger.Info("Песня загружена",
		slog.Int64("song_id", song.ID),
		slog.Int64("creator_id", actor.ID),
		slog.String("file_path", song.FilePath),
	)
	return song, nil
}

// UploadAlbum загружает альбом с треками.
//
// Аудиофайлы сопоставляются с записями songs_data строго по позиции.
// Альбом и все песни создаются в одной транзакции; при любой ошибке
// транзакция откатывается, а сохранённые файлы удаляются.
func (s *UploadService) UploadAlbum(ctx context.Context, actor *model.User, p AlbumUploadParams) (*AlbumUploadResult, error) {
	res, err := s.uploadAlbum(ctx, actor, p)
	s.observe("album", err)
	return res, err
}

func (s *UploadService) uploadAlbum(ctx context.Context, actor *model.User, p AlbumUploadParams) (*AlbumUploadResult, error) {
	if err := s.checkEnabled(); err != nil {
		return nil, err
	}
	if err := requireCapability(actor, rbac.CapUpload); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, validationError("album_title обязателен")
	}

	tracks, err := parseSongsData(p.SongsData)
	if err != nil {
		return nil, err
	}
	if len(p.AudioFiles) != len(tracks) {
		return nil, validationError("число аудиофайлов (%d) не совпадает с songs_data (%d)",
			len(p.AudioFiles), len(tracks))
	}
	if len(tracks) == 0 {
		return nil, validationError("альбом должен содержать хотя бы один трек")
	}
	if s.maxTracks > 0 && len(tracks) > s.maxTracks {
		return nil, validationError("альбом не может содержать более %d треков", s.maxTracks)
	}

	// Все файлы проверяются до первой записи на диск
	if p.Cover != nil {
		if err := assetstore.Validate(p.Cover, assetstore.ImageRule); err != nil {
			return nil, mapStoreError(err)
		}
	}
	for i, f := range p.AudioFiles {
		if err := assetstore.Validate(f, assetstore.AudioRule); err != nil {
			return nil, fmt.Errorf("трек %d: %w", i+1, mapStoreError(err))
		}
	}

	var stored []string
	rollback := func() { s.cleanup(stored) }

	var coverURL *string
	if p.Cover != nil {
		cover, err := s.store(p.Cover, assetstore.BucketAlbumCovers)
		if err != nil {
			return nil, err
		}
		stored = append(stored, cover.Path)
		coverURL = &cover.Path
	}

	album := &model.Album{
		Title:       title,
		Description: trimOptional(p.Description),
		CoverURL:    coverURL,
		ReleaseDate: s.parseReleaseDate(p.ReleaseDate),
		CreatorID:   actor.ID,
		IsApproved:  false,
	}
	songs := make([]*model.Song, 0, len(tracks))

	err = s.tx.InTx(ctx, func(r *repository.Repositories) error {
		if err := r.Albums.Create(ctx, album); err != nil {
			return mapRepoError(err, "создание альбома")
		}

		for i, meta := range tracks {
			audio, err := s.store(p.AudioFiles[i], assetstore.BucketSongs)
			if err != nil {
				return fmt.Errorf("трек %d: %w", i+1, err)
			}
			stored = append(stored, audio.Path)

			song := trackSong(meta, i, actor)
			song.FilePath = audio.Path
			song.CoverURL = coverURL
			song.AlbumID = &album.ID

			if err := r.Songs.Create(ctx, song); err != nil {
				return mapRepoError(err, fmt.Sprintf("создание трека %d", i+1))
			}
			songs = append(songs, song)
		}
		return nil
	})
	if err != nil {
		rollback()
		return nil, err
	}

	s.logger.Info("Альбом загружен",
		slog.Int64("album_id", album.ID),
		slog.Int64("creator_id", actor.ID),
		slog.Int("tracks", len(songs)),
	)
	return &AlbumUploadResult{Album: album, Songs: songs}, nil
}

// MyUploads возвращает песни и альбомы пользователя, новые первыми.
func (s *UploadService) MyUploads(ctx context.Context, actor *model.User) (*MyUploadsResult, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w: требуется вход в систему", ErrUnauthorized)
	}

	songs, err := s.repos.Songs.ListByCreator(ctx, actor.ID)
	if err != nil {
		return nil, mapRepoError(err, "получение песен пользователя")
	}
	albums, err := s.repos.Albums.ListByCreator(ctx, actor.ID)
	if err != nil {
		return nil, mapRepoError(err, "получение альбомов пользователя")
	}
	return &MyUploadsResult{Songs: songs, Albums: albums}, nil
}

// UploadAsset сохраняет одиночный файл и возвращает его путь.
// Аватар заменяет предыдущий: users.avatar_url обновляется, старый файл удаляется.
func (s *UploadService) UploadAsset(ctx context.Context, actor *model.User, kind AssetKind, f *assetstore.File) (*assetstore.StoredFile, error) {
	stored, err := s.uploadAsset(ctx, actor, kind, f)
	s.observe(string(kind), err)
	return stored, err
}

func (s *UploadService) uploadAsset(ctx context.Context, actor *model.User, kind AssetKind, f *assetstore.File) (*assetstore.StoredFile, error) {
	if err := s.checkEnabled(); err != nil {
		return nil, err
	}
	target, ok := assetTargets[kind]
	if !ok {
		return nil, validationError("неизвестный тип загрузки %q", kind)
	}
	if actor == nil {
		return nil, fmt.Errorf("%w: требуется вход в систему", ErrUnauthorized)
	}
	if target.capability != 0 {
		if err := requireCapability(actor, target.capability); err != nil {
			return nil, err
		}
	}

	if err := assetstore.Validate(f, target.rule); err != nil {
		return nil, mapStoreError(err)
	}
	stored, err := s.store(f, target.bucket)
	if err != nil {
		return nil, err
	}

	if kind == AssetAvatar {
		previous, err := s.repos.Users.UpdateAvatar(ctx, actor.ID, &stored.Path)
		if err != nil {
			s.cleanup([]string{stored.Path})
			return nil, mapRepoError(err, "обновление аватара")
		}
		if previous != nil && *previous != "" && *previous != stored.Path {
			s.cleanup([]string{*previous})
		}
		actor.AvatarURL = &stored.Path
	}

	s.logger.Info("Файл загружен",
		slog.String("kind", string(kind)),
		slog.String("path", stored.Path),
		slog.Int64("size", stored.Size),
		slog.Int64("user_id", actor.ID),
	)
	return stored, nil
}

// DeleteAsset удаляет файл из бакета, заданного типом.
// Требуется CapModerate; пользователь может удалить собственный текущий аватар.
func (s *UploadService) DeleteAsset(ctx context.Context, actor *model.User, fileType, filename string) error {
	if err := s.checkEnabled(); err != nil {
		return err
	}
	if actor == nil {
		return fmt.Errorf("%w: требуется вход в систему", ErrUnauthorized)
	}

	bucket, ok := deleteTypes[fileType]
	if !ok {
		return validationError("неизвестный тип файла %q: допустимы song, cover_song, cover_album, cover, avatar", fileType)
	}

	ownAvatar := false
	if bucket == assetstore.BucketAvatars && actor.AvatarURL != nil {
		if b, name, err := s.files.ParseWebPath(*actor.AvatarURL); err == nil && b == bucket && name == filename {
			ownAvatar = true
		}
	}
	if !ownAvatar {
		if err := requireCapability(actor, rbac.CapModerate); err != nil {
			return err
		}
	}

	if err := s.files.Delete(bucket, filename); err != nil {
		return mapStoreError(err)
	}

	if ownAvatar {
		if _, err := s.repos.Users.UpdateAvatar(ctx, actor.ID, nil); err != nil {
			return mapRepoError(err, "сброс аватара")
		}
		actor.AvatarURL = nil
	}

	s.logger.Info("Файл удалён",
		slog.String("bucket", string(bucket)),
		slog.String("filename", filename),
		slog.Int64("user_id", actor.ID),
	)
	return nil
}

// store сохраняет файл и учитывает объём в метриках.
func (s *UploadService) store(f *assetstore.File, bucket assetstore.Bucket) (*assetstore.StoredFile, error) {
	stored, err := s.files.Store(f, bucket)
	if err != nil {
		s.logger.Error("Ошибка сохранения файла",
			slog.String("bucket", string(bucket)),
			slog.String("error", err.Error()),
		)
		return nil, mapStoreError(err)
	}
	uploadBytesTotal.WithLabelValues(string(bucket)).Add(float64(stored.Size))
	return stored, nil
}

// cleanup удаляет сохранённые файлы после неудачной операции.
func (s *UploadService) cleanup(paths []string) {
	for _, p := range paths {
		if err := s.files.DeleteByPath(p); err != nil && !errors.Is(err, assetstore.ErrNotFound) {
			s.logger.Warn("Не удалось удалить файл при откате",
				slog.String("path", p),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *UploadService) checkEnabled() error {
	if !s.enabled {
		return fmt.Errorf("%w: загрузка файлов", ErrFeatureDisabled)
	}
	return nil
}

func (s *UploadService) observe(kind string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	uploadsTotal.WithLabelValues(kind, result).Inc()
}

// parseReleaseDate разбирает дату выхода; нераспознанное значение даёт nil.
func (s *UploadService) parseReleaseDate(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	s.logger.Debug("Дата выхода не распознана и пропущена", slog.String("release_date", v))
	return nil
}

// parseSongsData разбирает songs_data как JSON-массив записей треков.
func parseSongsData(raw string) ([]TrackMetadata, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, validationError("songs_data обязателен")
	}
	var tracks []TrackMetadata
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, validationError("songs_data должен быть JSON-массивом: %v", err)
	}
	for i, t := range tracks {
		if t.Duration != nil && *t.Duration > maxColumnInt {
			return nil, validationError("трек %d: duration не должна превышать %d", i+1, maxColumnInt)
		}
		if t.TrackNumber != nil && *t.TrackNumber > maxColumnInt {
			return nil, validationError("трек %d: track_number не должен превышать %d", i+1, maxColumnInt)
		}
	}
	return tracks, nil
}

// trackSong строит песню альбома из метаданных трека с i-й позиции.
func trackSong(meta TrackMetadata, i int, actor *model.User) *model.Song {
	song := &model.Song{
		Title:      fmt.Sprintf("Track %d", i+1),
		Artist:     actor.Username,
		Genre:      trimOptional(meta.Genre),
		CreatorID:  actor.ID,
		IsApproved: false,
	}
	if t := trimOptional(meta.Title); t != nil {
		song.Title = *t
	}
	if a := trimOptional(meta.Artist); a != nil {
		song.Artist = *a
	}
	if meta.Duration != nil && *meta.Duration > 0 {
		song.Duration = int(*meta.Duration)
	}
	n := i + 1
	if meta.TrackNumber != nil && *meta.TrackNumber > 0 {
		n = *meta.TrackNumber
	}
	song.TrackNumber = &n
	return song
}
