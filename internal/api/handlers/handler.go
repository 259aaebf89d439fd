// handler.go — APIHandler реализует generated.ServerInterface,
// делегируя вызовы в отдельные handler'ы по доменам.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	apierrors "github.com/Andert51/P-Music-td/internal/api/errors"
	"github.com/Andert51/P-Music-td/internal/api/generated"
	"github.com/Andert51/P-Music-td/internal/service"
)

// maxJSONBody — ограничение тела JSON-запросов.
const maxJSONBody = 1 << 20

// APIHandler — единая реализация ServerInterface, собирающая
// все доменные handlers в один объект.
type APIHandler struct {
	health    *HealthHandler
	openapi   *OpenAPIHandler
	auth      *AuthHandler
	songs     *SongsHandler
	albums    *AlbumsHandler
	uploads   *UploadHandler
	playlists *PlaylistsHandler
}

// NewAPIHandler создаёт единый handler для всех endpoints.
func NewAPIHandler(
	health *HealthHandler,
	openapi *OpenAPIHandler,
	auth *AuthHandler,
	songs *SongsHandler,
	albums *AlbumsHandler,
	uploads *UploadHandler,
	playlists *PlaylistsHandler,
) *APIHandler {
	return &APIHandler{
		health:    health,
		openapi:   openapi,
		auth:      auth,
		songs:     songs,
		albums:    albums,
		uploads:   uploads,
		playlists: playlists,
	}
}

var _ generated.ServerInterface = (*APIHandler)(nil)

// --- Health ---

func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

func (h *APIHandler) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	h.openapi.GetOpenAPISpec(w, r)
}

// --- Auth ---

func (h *APIHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.auth.Register(w, r)
}

func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.auth.Login(w, r)
}

func (h *APIHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	h.auth.GetCurrentUser(w, r)
}

func (h *APIHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(w, r)
}

func (h *APIHandler) GetJWKS(w http.ResponseWriter, r *http.Request) {
	h.auth.GetJWKS(w, r)
}

// --- Songs ---

func (h *APIHandler) ListSongs(w http.ResponseWriter, r *http.Request, params generated.ListSongsParams) {
	h.songs.ListSongs(w, r, params)
}

func (h *APIHandler) CreateSong(w http.ResponseWriter, r *http.Request) {
	h.songs.CreateSong(w, r)
}

func (h *APIHandler) GetSong(w http.ResponseWriter, r *http.Request, songID generated.SongId) {
	h.songs.GetSong(w, r, songID)
}

func (h *APIHandler) DeleteSong(w http.ResponseWriter, r *http.Request, songID generated.SongId) {
	h.songs.DeleteSong(w, r, songID)
}

func (h *APIHandler) ApproveSong(w http.ResponseWriter, r *http.Request, songID generated.SongId) {
	h.songs.ApproveSong(w, r, songID)
}

func (h *APIHandler) PlaySong(w http.ResponseWriter, r *http.Request, songID generated.SongId) {
	h.songs.PlaySong(w, r, songID)
}

func (h *APIHandler) LikeSong(w http.ResponseWriter, r *http.Request, songID generated.SongId) {
	h.songs.LikeSong(w, r, songID)
}

func (h *APIHandler) UnlikeSong(w http.ResponseWriter, r *http.Request, songID generated.SongId) {
	h.songs.UnlikeSong(w, r, songID)
}

func (h *APIHandler) ListLikedSongs(w http.ResponseWriter, r *http.Request) {
	h.songs.ListLikedSongs(w, r)
}

// --- Albums ---

func (h *APIHandler) ListAlbums(w http.ResponseWriter, r *http.Request, params generated.ListAlbumsParams) {
	h.albums.ListAlbums(w, r, params)
}

func (h *APIHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	h.albums.CreateAlbum(w, r)
}

func (h *APIHandler) GetAlbum(w http.ResponseWriter, r *http.Request, albumID generated.AlbumId) {
	h.albums.GetAlbum(w, r, albumID)
}

func (h *APIHandler) ListAlbumSongs(w http.ResponseWriter, r *http.Request, albumID generated.AlbumId) {
	h.albums.ListAlbumSongs(w, r, albumID)
}

func (h *APIHandler) ApproveAlbum(w http.ResponseWriter, r *http.Request, albumID generated.AlbumId) {
	h.albums.ApproveAlbum(w, r, albumID)
}

// --- Upload ---

func (h *APIHandler) UploadSongFile(w http.ResponseWriter, r *http.Request) {
	h.uploads.UploadSongFile(w, r)
}

func (h *APIHandler) UploadCoverFile(w http.ResponseWriter, r *http.Request) {
	h.uploads.UploadCoverFile(w, r)
}

func (h *APIHandler) UploadAlbumCoverFile(w http.ResponseWriter, r *http.Request) {
	h.uploads.UploadAlbumCoverFile(w, r)
}

func (h *APIHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	h.uploads.UploadAvatar(w, r)
}

func (h *APIHandler) DeleteUploadedFile(w http.ResponseWriter, r *http.Request, fileType generated.DeleteUploadedFileParamsFileType, filename string) {
	h.uploads.DeleteUploadedFile(w, r, fileType, filename)
}

func (h *APIHandler) UploadSingle(w http.ResponseWriter, r *http.Request) {
	h.uploads.UploadSingle(w, r)
}

func (h *APIHandler) UploadAlbum(w http.ResponseWriter, r *http.Request) {
	h.uploads.UploadAlbum(w, r)
}

func (h *APIHandler) ListMyUploads(w http.ResponseWriter, r *http.Request) {
	h.uploads.ListMyUploads(w, r)
}

// --- Playlists ---

func (h *APIHandler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	h.playlists.ListPlaylists(w, r)
}

func (h *APIHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	h.playlists.CreatePlaylist(w, r)
}

func (h *APIHandler) GetPlaylist(w http.ResponseWriter, r *http.Request, playlistID generated.PlaylistId) {
	h.playlists.GetPlaylist(w, r, playlistID)
}

func (h *APIHandler) DeletePlaylist(w http.ResponseWriter, r *http.Request, playlistID generated.PlaylistId) {
	h.playlists.DeletePlaylist(w, r, playlistID)
}

func (h *APIHandler) AddPlaylistSong(w http.ResponseWriter, r *http.Request, playlistID generated.PlaylistId, songID generated.SongId) {
	h.playlists.AddPlaylistSong(w, r, playlistID, songID)
}

func (h *APIHandler) RemovePlaylistSong(w http.ResponseWriter, r *http.Request, playlistID generated.PlaylistId, songID generated.SongId) {
	h.playlists.RemovePlaylistSong(w, r, playlistID, songID)
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON разбирает тело запроса в dst. Пустое тело допустимо,
// если allowEmpty (например, PATCH approve без тела).
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(dst)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		apierrors.FileTooLarge(w, fmt.Sprintf("Тело запроса превышает %d байт", tooLarge.Limit))
		return false
	}
	apierrors.ValidationError(w, fmt.Sprintf("Некорректный JSON: %s", err.Error()))
	return false
}

// writeServiceError переводит ошибку сервисного слоя в HTTP-ответ.
// Внутренние ошибки логируются и не раскрываются клиенту.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error, op string) {
	msg := err.Error()
	switch {
	case errors.Is(err, service.ErrValidation):
		apierrors.ValidationError(w, msg)
	case errors.Is(err, service.ErrInvalidType):
		apierrors.UnsupportedMediaType(w, msg)
	case errors.Is(err, service.ErrTooLarge):
		apierrors.FileTooLarge(w, msg)
	case errors.Is(err, service.ErrUnauthorized):
		apierrors.Unauthorized(w, msg)
	case errors.Is(err, service.ErrForbidden):
		apierrors.Forbidden(w, msg)
	case errors.Is(err, service.ErrFeatureDisabled):
		apierrors.FeatureDisabled(w, msg)
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, msg)
	case errors.Is(err, service.ErrConflict):
		apierrors.Conflict(w, msg)
	case errors.Is(err, service.ErrStorage):
		logger.Error("Ошибка файлового хранилища",
			slog.String("operation", op),
			slog.String("error", msg),
		)
		apierrors.StorageError(w, "Ошибка файлового хранилища")
	default:
		logger.Error("Внутренняя ошибка",
			slog.String("operation", op),
			slog.String("error", msg),
		)
		apierrors.InternalError(w, "Внутренняя ошибка сервера")
	}
}
