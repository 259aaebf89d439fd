// songs.go — каталог песен: выборка, создание, модерация, прослушивания, лайки.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Andert51/P-Music-td/internal/api/generated"
	"github.com/Andert51/P-Music-td/internal/api/middleware"
	"github.com/Andert51/P-Music-td/internal/domain/model"
	"github.com/Andert51/P-Music-td/internal/service"
)

// CatalogService — операции каталога (реализуется *service.CatalogService).
type CatalogService interface {
	ListSongs(ctx context.Context, actor *model.User, q service.SongQuery) ([]*model.Song, error)
	GetSong(ctx context.Context, actor *model.User, id int64) (*model.Song, error)
	CreateSong(ctx context.Context, actor *model.User, p service.CreateSongParams) (*model.Song, error)
	ApproveSong(ctx context.Context, actor *model.User, id int64, approved bool) (*model.Song, error)
	DeleteSong(ctx context.Context, actor *model.User, id int64) error
	PlaySong(ctx context.Context, actor *model.User, id int64) (int64, error)

	ListAlbums(ctx context.Context, skip, limit *int) ([]*model.Album, error)
	GetAlbum(ctx context.Context, actor *model.User, id int64) (*model.Album, error)
	AlbumSongs(ctx context.Context, actor *model.User, id int64) ([]*model.Song, error)
	CreateAlbum(ctx context.Context, actor *model.User, p service.CreateAlbumParams) (*model.Album, error)
	ApproveAlbum(ctx context.Context, actor *model.User, id int64, approved bool) (*model.Album, error)
}

// SongsHandler — обработчик /songs/* и /me/liked-songs.
type SongsHandler struct {
	catalog CatalogService
	library LibraryService
	logger  *slog.Logger
}

// NewSongsHandler создаёт обработчик песен.
func NewSongsHandler(catalog CatalogService, library LibraryService, logger *slog.Logger) *SongsHandler {
	return &SongsHandler{
		catalog: catalog,
		library: library,
		logger:  logger.With(slog.String("component", "songs_handler")),
	}
}

// ListSongs обрабатывает GET /songs.
func (h *SongsHandler) ListSongs(w http.ResponseWriter, r *http.Request, params generated.ListSongsParams) {
	q := service.SongQuery{
		Skip:         params.Skip,
		Limit:        params.Limit,
		ApprovedOnly: params.ApprovedOnly,
		Search:       params.Search,
		AlbumID:      params.AlbumId,
	}
	if params.OrderBy != nil {
		q.OrderBy = string(*params.OrderBy)
	}

	songs, err := h.catalog.ListSongs(r.Context(), middleware.UserFromContext(r.Context()), q)
	if err != nil {
		writeServiceError(w, h.logger, err, "list_songs")
		return
	}
	writeJSON(w, http.StatusOK, toSongList(songs))
}

// GetSong обрабатывает GET /songs/{song_id}.
func (h *SongsHandler) GetSong(w http.ResponseWriter, r *http.Request, songID generated.SongId) {
	song, err := h.catalog.GetSong(r.Context(), middleware.UserFromContext(r.Context()), songID)
	if err != nil {
		writeServiceError(w, h.logger, err, "get_song")
		return
	}
	writeJSON(w, http.StatusOK, toSongResponse(song))
}

// CreateSong обрабатывает POST /songs. Песня создаётся одобренной.
func (h *SongsHandler) CreateSong(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var req generated.CreateSongJSONRequestBody
	if !decodeJSON(w, r, &req, false) {
		return
	}

	p := service.CreateSongParams{
		Title:       req.Title,
		Artist:      req.Artist,
		FilePath:    req.FilePath,
		CoverURL:    req.CoverUrl,
		Genre:       req.Genre,
		AlbumID:     req.AlbumId,
		TrackNumber: req.TrackNumber,
	}
	if req.Duration != nil {
		p.Duration = *req.Duration
	}

	song, err := h.catalog.CreateSong(r.Context(), user, p)
	if err != nil {
		writeServiceError(w, h.logger, err, "create_song")
		return
	}
	writeJSON(w, http.StatusCreated, toSongResponse(song))
}

// ApproveSong обрабатывает PATCH /songs/{song_id}/approve.
// Без тела запроса песня одобряется.
func (h *SongsHandler) ApproveSong(w http.ResponseWriter, r *http.Request, songID generated.SongId) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var req generated.ApproveSongJSONRequestBody
	if !decodeJSON(w, r, &req, true) {
		return
	}
	approved := req.IsApproved == nil || *req.IsApproved

	song, err := h.catalog.ApproveSong(r.Context(), user, songID, approved)
	if err != nil {
		writeServiceError(w, h.logger, err, "approve_song")
		return
	}

	msg := "Песня одобрена"
	if !approved {
		msg = "Одобрение песни отозвано"
	}
	writeJSON(w, http.StatusOK, generated.SongApprovalResponse{
		Message: msg,
		Song:    toSongResponse(song),
	})
}

// DeleteSong обрабатывает DELETE /songs/{song_id}.
func (h *SongsHandler) DeleteSong(w http.ResponseWriter, r *http.Request, songID generated.SongId) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}
	if err := h.catalog.DeleteSong(r.Context(), user, songID); err != nil {
		writeServiceError(w, h.logger, err, "delete_song")
		return
	}
	writeJSON(w, http.StatusOK, generated.MessageResponse{Message: "Песня удалена"})
}

// PlaySong обрабатывает POST /songs/{song_id}/play.
func (h *SongsHandler) PlaySong(w http.ResponseWriter, r *http.Request, songID generated.SongId) {
	count, err := h.catalog.PlaySong(r.Context(), middleware.UserFromContext(r.Context()), songID)
	if err != nil {
		writeServiceError(w, h.logger, err, "play_song")
		return
	}
	writeJSON(w, http.StatusOK, generated.PlayResponse{
		Message:   "Прослушивание учтено",
		PlayCount: count,
	})
}

// LikeSong обрабатывает POST /songs/{song_id}/like.
// 201 — лайк поставлен, 200 — песня уже была в избранном.
func (h *SongsHandler) LikeSong(w http.ResponseWriter, r *http.Request, songID generated.SongId) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}
	created, err := h.library.Like(r.Context(), user, songID)
	if err != nil {
		writeServiceError(w, h.logger, err, "like_song")
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, generated.LikeResponse{Message: "Песня уже в избранном", Liked: true})
		return
	}
	writeJSON(w, http.StatusCreated, generated.LikeResponse{Message: "Песня добавлена в избранное", Liked: true})
}

// UnlikeSong обрабатывает DELETE /songs/{song_id}/like.
func (h *SongsHandler) UnlikeSong(w http.ResponseWriter, r *http.Request, songID generated.SongId) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}
	if err := h.library.Unlike(r.Context(), user, songID); err != nil {
		writeServiceError(w, h.logger, err, "unlike_song")
		return
	}
	writeJSON(w, http.StatusOK, generated.LikeResponse{Message: "Песня удалена из избранного", Liked: false})
}

// ListLikedSongs обрабатывает GET /me/liked-songs.
func (h *SongsHandler) ListLikedSongs(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}
	songs, err := h.library.LikedSongs(r.Context(), user)
	if err != nil {
		writeServiceError(w, h.logger, err, "liked_songs")
		return
	}
	writeJSON(w, http.StatusOK, toSongList(songs))
}
