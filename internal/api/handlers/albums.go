// albums.go — альбомы: выборка, песни альбома, создание и модерация.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Andert51/P-Music-td/internal/api/generated"
	"github.com/Andert51/P-Music-td/internal/api/middleware"
	"github.com/Andert51/P-Music-td/internal/service"
)

// AlbumsHandler — обработчик /albums/*.
type AlbumsHandler struct {
	catalog CatalogService
	logger  *slog.Logger
}

// NewAlbumsHandler создаёт обработчик альбомов.
func NewAlbumsHandler(catalog CatalogService, logger *slog.Logger) *AlbumsHandler {
	return &AlbumsHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "albums_handler")),
	}
}

// ListAlbums обрабатывает GET /albums (только одобренные).
func (h *AlbumsHandler) ListAlbums(w http.ResponseWriter, r *http.Request, params generated.ListAlbumsParams) {
	albums, err := h.catalog.ListAlbums(r.Context(), params.Skip, params.Limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "list_albums")
		return
	}
	writeJSON(w, http.StatusOK, toAlbumList(albums))
}

// GetAlbum обрабатывает GET /albums/{album_id}.
func (h *AlbumsHandler) GetAlbum(w http.ResponseWriter, r *http.Request, albumID generated.AlbumId) {
	album, err := h.catalog.GetAlbum(r.Context(), middleware.UserFromContext(r.Context()), albumID)
	if err != nil {
		writeServiceError(w, h.logger, err, "get_album")
		return
	}
	writeJSON(w, http.StatusOK, toAlbumResponse(album))
}

// ListAlbumSongs обрабатывает GET /albums/{album_id}/songs.
func (h *AlbumsHandler) ListAlbumSongs(w http.ResponseWriter, r *http.Request, albumID generated.AlbumId) {
	songs, err := h.catalog.AlbumSongs(r.Context(), middleware.UserFromContext(r.Context()), albumID)
	if err != nil {
		writeServiceError(w, h.logger, err, "album_songs")
		return
	}
	writeJSON(w, http.StatusOK, toSongList(songs))
}

// CreateAlbum обрабатывает POST /albums. Альбом создаётся одобренным.
func (h *AlbumsHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var req generated.CreateAlbumJSONRequestBody
	if !decodeJSON(w, r, &req, false) {
		return
	}

	p := service.CreateAlbumParams{
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    req.CoverUrl,
	}
	if req.ReleaseDate != nil {
		d := req.ReleaseDate.Time
		p.ReleaseDate = &d
	}

	album, err := h.catalog.CreateAlbum(r.Context(), user, p)
	if err != nil {
		writeServiceError(w, h.logger, err, "create_album")
		return
	}
	writeJSON(w, http.StatusCreated, toAlbumResponse(album))
}

// ApproveAlbum обрабатывает PATCH /albums/{album_id}/approve.
// Статус одобрения распространяется на песни альбома.
func (h *AlbumsHandler) ApproveAlbum(w http.ResponseWriter, r *http.Request, albumID generated.AlbumId) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var req generated.ApproveAlbumJSONRequestBody
	if !decodeJSON(w, r, &req, true) {
		return
	}
	approved := req.IsApproved == nil || *req.IsApproved

	album, err := h.catalog.ApproveAlbum(r.Context(), user, albumID, approved)
	if err != nil {
		writeServiceError(w, h.logger, err, "approve_album")
		return
	}

	msg := "Альбом и его песни одобрены"
	if !approved {
		msg = "Одобрение альбома и его песен отозвано"
	}
	writeJSON(w, http.StatusOK, generated.AlbumApprovalResponse{
		Message: msg,
		Album:   toAlbumResponse(album),
	})
}
