// upload.go — загрузка аудио и изображений (multipart/form-data).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	apierrors "github.com/Andert51/P-Music-td/internal/api/errors"
	"github.com/Andert51/P-Music-td/internal/api/generated"
	"github.com/Andert51/P-Music-td/internal/api/middleware"
	"github.com/Andert51/P-Music-td/internal/domain/model"
	"github.com/Andert51/P-Music-td/internal/service"
	"github.com/Andert51/P-Music-td/internal/storage/assetstore"
)

// multipartSlack — запас на заголовки частей и текстовые поля формы.
const multipartSlack = 1 << 20

// UploadService — операции загрузки (реализуется *service.UploadService).
type UploadService interface {
	Enabled() bool
	UploadSingle(ctx context.Context, actor *model.User, p service.SingleUploadParams) (*model.Song, error)
	UploadAlbum(ctx context.Context, actor *model.User, p service.AlbumUploadParams) (*service.AlbumUploadResult, error)
	MyUploads(ctx context.Context, actor *model.User) (*service.MyUploadsResult, error)
	UploadAsset(ctx context.Context, actor *model.User, kind service.AssetKind, f *assetstore.File) (*assetstore.StoredFile, error)
	DeleteAsset(ctx context.Context, actor *model.User, fileType, filename string) error
}

// UploadHandler — обработчик /upload/*.
type UploadHandler struct {
	uploads   UploadService
	maxMemory int64
	maxTracks int
	logger    *slog.Logger
}

// NewUploadHandler создаёт обработчик загрузок.
// maxMemory — буфер ParseMultipartForm, остальное уходит во временные файлы.
func NewUploadHandler(uploads UploadService, maxMemory int64, maxTracks int, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		uploads:   uploads,
		maxMemory: maxMemory,
		maxTracks: maxTracks,
		logger:    logger.With(slog.String("component", "upload_handler")),
	}
}

// UploadSongFile обрабатывает POST /upload/song.
func (h *UploadHandler) UploadSongFile(w http.ResponseWriter, r *http.Request) {
	h.uploadAsset(w, r, service.AssetSong, assetstore.AudioRule.MaxSize, "Аудиофайл загружен")
}

// UploadCoverFile обрабатывает POST /upload/cover.
func (h *UploadHandler) UploadCoverFile(w http.ResponseWriter, r *http.Request) {
	h.uploadAsset(w, r, service.AssetCover, assetstore.ImageRule.MaxSize, "Обложка загружена")
}

// UploadAlbumCoverFile обрабатывает POST /upload/album-cover.
func (h *UploadHandler) UploadAlbumCoverFile(w http.ResponseWriter, r *http.Request) {
	h.uploadAsset(w, r, service.AssetAlbumCover, assetstore.ImageRule.MaxSize, "Обложка альбома загружена")
}

// UploadAvatar обрабатывает POST /upload/avatar.
// Предыдущий аватар пользователя удаляется сервисом.
func (h *UploadHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	h.uploadAsset(w, r, service.AssetAvatar, assetstore.ImageRule.MaxSize, "Аватар обновлён")
}

func (h *UploadHandler) uploadAsset(w http.ResponseWriter, r *http.Request, kind service.AssetKind, maxSize int64, msg string) {
	user, ok := h.begin(w, r)
	if !ok {
		return
	}
	if !h.parseForm(w, r, maxSize+multipartSlack) {
		return
	}
	defer removeForm(r)
	var parts partSet
	defer parts.close()

	f, ok := formFile(w, r, &parts, "file", true)
	if !ok {
		return
	}

	stored, err := h.uploads.UploadAsset(r.Context(), user, kind, f)
	if err != nil {
		writeServiceError(w, h.logger, err, "upload_"+string(kind))
		return
	}

	resp := generated.FileUploadResponse{
		Message:  msg,
		Filename: stored.Name,
		Path:     stored.Path,
		Size:     stored.Size,
	}
	if kind == service.AssetAvatar {
		resp.AvatarUrl = &stored.Path
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteUploadedFile обрабатывает DELETE /upload/file/{file_type}/{filename}.
func (h *UploadHandler) DeleteUploadedFile(w http.ResponseWriter, r *http.Request, fileType generated.DeleteUploadedFileParamsFileType, filename string) {
	user, ok := h.begin(w, r)
	if !ok {
		return
	}
	if err := h.uploads.DeleteAsset(r.Context(), user, string(fileType), filename); err != nil {
		writeServiceError(w, h.logger, err, "delete_file")
		return
	}
	writeJSON(w, http.StatusOK, generated.MessageResponse{Message: "Файл удалён"})
}

// UploadSingle обрабатывает POST /upload/single.
// Поля: title, artist, duration, genre (опц.), audio_file, cover_file (опц.).
func (h *UploadHandler) UploadSingle(w http.ResponseWriter, r *http.Request) {
	user, ok := h.begin(w, r)
	if !ok {
		return
	}
	limit := assetstore.AudioRule.MaxSize + assetstore.ImageRule.MaxSize + multipartSlack
	if !h.parseForm(w, r, limit) {
		return
	}
	defer removeForm(r)
	var parts partSet
	defer parts.close()

	duration := 0
	if v := strings.TrimSpace(r.FormValue("duration")); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			apierrors.ValidationError(w, fmt.Sprintf("Поле 'duration' должно быть целым числом: %q", v))
			return
		}
		duration = d
	}

	audio, ok := formFile(w, r, &parts, "audio_file", true)
	if !ok {
		return
	}
	cover, ok := formFile(w, r, &parts, "cover_file", false)
	if !ok {
		return
	}

	song, err := h.uploads.UploadSingle(r.Context(), user, service.SingleUploadParams{
		Title:    r.FormValue("title"),
		Artist:   r.FormValue("artist"),
		Duration: duration,
		Genre:    optionalValue(r, "genre"),
		Audio:    audio,
		Cover:    cover,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "upload_single")
		return
	}
	writeJSON(w, http.StatusCreated, generated.SingleUploadResponse{
		Message: "Песня загружена и ожидает модерации",
		Song:    toSongResponse(song),
	})
}

// UploadAlbum обрабатывает POST /upload/album.
// Поля: album_title, album_description, release_date, songs_data (JSON),
// album_cover (опц.), audio_files (повторяющееся).
func (h *UploadHandler) UploadAlbum(w http.ResponseWriter, r *http.Request) {
	user, ok := h.begin(w, r)
	if !ok {
		return
	}
	limit := assetstore.AudioRule.MaxSize*int64(h.maxTracks) + assetstore.ImageRule.MaxSize + multipartSlack
	if !h.parseForm(w, r, limit) {
		return
	}
	defer removeForm(r)
	var parts partSet
	defer parts.close()

	cover, ok := formFile(w, r, &parts, "album_cover", false)
	if !ok {
		return
	}

	headers := r.MultipartForm.File["audio_files"]
	audio := make([]*assetstore.File, 0, len(headers))
	for _, fh := range headers {
		f, err := parts.open(fh)
		if err != nil {
			apierrors.ValidationError(w, fmt.Sprintf("Не удалось прочитать %q: %s", fh.Filename, err.Error()))
			return
		}
		audio = append(audio, f)
	}

	res, err := h.uploads.UploadAlbum(r.Context(), user, service.AlbumUploadParams{
		Title:       r.FormValue("album_title"),
		Description: optionalValue(r, "album_description"),
		ReleaseDate: r.FormValue("release_date"),
		SongsData:   r.FormValue("songs_data"),
		Cover:       cover,
		AudioFiles:  audio,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "upload_album")
		return
	}
	writeJSON(w, http.StatusCreated, generated.AlbumUploadResponse{
		Message: fmt.Sprintf("Альбом загружен: %d треков ожидают модерации", len(res.Songs)),
		Album:   toAlbumResponse(res.Album),
		Songs:   toSongList(res.Songs),
	})
}

// ListMyUploads обрабатывает GET /upload/my-uploads.
func (h *UploadHandler) ListMyUploads(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}
	res, err := h.uploads.MyUploads(r.Context(), user)
	if err != nil {
		writeServiceError(w, h.logger, err, "my_uploads")
		return
	}
	writeJSON(w, http.StatusOK, generated.MyUploadsResponse{
		Songs:  toSongList(res.Songs),
		Albums: toAlbumList(res.Albums),
	})
}

// begin проверяет аутентификацию и флаг загрузки до чтения тела.
func (h *UploadHandler) begin(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return nil, false
	}
	if !h.uploads.Enabled() {
		apierrors.FeatureDisabled(w, "Загрузка файлов отключена")
		return nil, false
	}
	return user, true
}

// parseForm ограничивает тело запроса и разбирает multipart форму.
func (h *UploadHandler) parseForm(w http.ResponseWriter, r *http.Request, limit int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apierrors.FileTooLarge(w, fmt.Sprintf("Размер запроса превышает %d байт", maxErr.Limit))
			return false
		}
		apierrors.ValidationError(w, fmt.Sprintf("Ошибка парсинга multipart: %s", err.Error()))
		return false
	}
	return true
}

func removeForm(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

// formFile извлекает файл из поля формы. Для необязательного поля
// отсутствие файла возвращает (nil, true).
func formFile(w http.ResponseWriter, r *http.Request, parts *partSet, field string, required bool) (*assetstore.File, bool) {
	fhs := r.MultipartForm.File[field]
	if len(fhs) == 0 || fhs[0].Filename == "" {
		if required {
			apierrors.ValidationError(w, fmt.Sprintf("Поле '%s' обязательно", field))
			return nil, false
		}
		return nil, true
	}

	f, err := parts.open(fhs[0])
	if err != nil {
		apierrors.ValidationError(w, fmt.Sprintf("Не удалось прочитать поле '%s': %s", field, err.Error()))
		return nil, false
	}
	return f, true
}

// partSet — открытые части формы, закрываются по завершении запроса.
type partSet struct {
	opened []multipart.File
}

func (p *partSet) open(fh *multipart.FileHeader) (*assetstore.File, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	p.opened = append(p.opened, file)
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &assetstore.File{
		Filename:    fh.Filename,
		ContentType: contentType,
		Content:     file,
	}, nil
}

func (p *partSet) close() {
	for _, f := range p.opened {
		_ = f.Close()
	}
}

func optionalValue(r *http.Request, field string) *string {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return nil
	}
	return &v
}
