// playlists.go — плейлисты пользователя.
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

// LibraryService — плейлисты и лайки (реализуется *service.LibraryService).
type LibraryService interface {
	CreatePlaylist(ctx context.Context, actor *model.User, p service.CreatePlaylistParams) (*model.Playlist, error)
	ListPlaylists(ctx context.Context, actor *model.User) ([]*model.Playlist, error)
	GetPlaylist(ctx context.Context, actor *model.User, id int64) (*service.PlaylistDetails, error)
	DeletePlaylist(ctx context.Context, actor *model.User, id int64) error
	AddSong(ctx context.Context, actor *model.User, playlistID, songID int64) error
	RemoveSong(ctx context.Context, actor *model.User, playlistID, songID int64) error

	Like(ctx context.Context, actor *model.User, songID int64) (bool, error)
	Unlike(ctx context.Context, actor *model.User, songID int64) error
	LikedSongs(ctx context.Context, actor *model.User) ([]*model.Song, error)
}

// PlaylistsHandler — обработчик /playlists/*.
type PlaylistsHandler struct {
	library LibraryService
	logger  *slog.Logger
}

// NewPlaylistsHandler создаёт обработчик плейлистов.
func NewPlaylistsHandler(library LibraryService, logger *slog.Logger) *PlaylistsHandler {
	return &PlaylistsHandler{
		library: library,
		logger:  logger.With(slog.String("component", "playlists_handler")),
	}
}

// ListPlaylists обрабатывает GET /playlists.
func (h *PlaylistsHandler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}
	playlists, err := h.library.ListPlaylists(r.Context(), user)
	if err != nil {
		writeServiceError(w, h.logger, err, "list_playlists")
		return
	}
	resp := make([]generated.PlaylistResponse, 0, len(playlists))
	for _, p := range playlists {
		resp = append(resp, toPlaylistResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreatePlaylist обрабатывает POST /playlists.
func (h *PlaylistsHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}

	var req generated.CreatePlaylistJSONRequestBody
	if !decodeJSON(w, r, &req, false) {
		return
	}

	playlist, err := h.library.CreatePlaylist(r.Context(), user, service.CreatePlaylistParams{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic != nil && *req.IsPublic,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "create_playlist")
		return
	}
	writeJSON(w, http.StatusCreated, toPlaylistResponse(playlist))
}

// GetPlaylist обрабатывает GET /playlists/{playlist_id}.
// Публичный плейлист доступен без входа.
func (h *PlaylistsHandler) GetPlaylist(w http.ResponseWriter, r *http.Request, playlistID generated.PlaylistId) {
	details, err := h.library.GetPlaylist(r.Context(), middleware.UserFromContext(r.Context()), playlistID)
	if err != nil {
		writeServiceError(w, h.logger, err, "get_playlist")
		return
	}
	p := details.Playlist
	writeJSON(w, http.StatusOK, generated.PlaylistDetailsResponse{
		Id:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		IsPublic:    p.IsPublic,
		OwnerId:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		Songs:       toSongList(details.Songs),
	})
}

// DeletePlaylist обрабатывает DELETE /playlists/{playlist_id}.
func (h *PlaylistsHandler) DeletePlaylist(w http.ResponseWriter, r *http.Request, playlistID generated.PlaylistId) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}
	if err := h.library.DeletePlaylist(r.Context(), user, playlistID); err != nil {
		writeServiceError(w, h.logger, err, "delete_playlist")
		return
	}
	writeJSON(w, http.StatusOK, generated.MessageResponse{Message: "Плейлист удалён"})
}

// AddPlaylistSong обрабатывает POST /playlists/{playlist_id}/songs/{song_id}.
func (h *PlaylistsHandler) AddPlaylistSong(w http.ResponseWriter, r *http.Request, playlistID generated.PlaylistId, songID generated.SongId) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}
	if err := h.library.AddSong(r.Context(), user, playlistID, songID); err != nil {
		writeServiceError(w, h.logger, err, "add_playlist_song")
		return
	}
	writeJSON(w, http.StatusCreated, generated.MessageResponse{Message: "Песня добавлена в плейлист"})
}

// RemovePlaylistSong обрабатывает DELETE /playlists/{playlist_id}/songs/{song_id}.
func (h *PlaylistsHandler) RemovePlaylistSong(w http.ResponseWriter, r *http.Request, playlistID generated.PlaylistId, songID generated.SongId) {
	user, ok := middleware.RequireUser(w, r)
	if !ok {
		return
	}
	if err := h.library.RemoveSong(r.Context(), user, playlistID, songID); err != nil {
		writeServiceError(w, h.logger, err, "remove_playlist_song")
		return
	}
	writeJSON(w, http.StatusOK, generated.MessageResponse{Message: "Песня удалена из плейлиста"})
}
