// library.go — личная библиотека: плейлисты и понравившиеся песни.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Andert51/P-Music-td/internal/domain/model"
	"github.com/Andert51/P-Music-td/internal/repository"
)

const maxPlaylistNameLen = 100

// CreatePlaylistParams — данные нового плейлиста.
type CreatePlaylistParams struct {
	Name        string
	Description *string
	IsPublic    bool
}

// PlaylistDetails — плейлист с песнями в порядке добавления.
type PlaylistDetails struct {
	Playlist *model.Playlist
	Songs    []*model.Song
}

// LibraryService — плейлисты и лайки пользователя.
type LibraryService struct {
	repos  *repository.Repositories
	logger *slog.Logger
}

// NewLibraryService создаёт сервис библиотеки.
func NewLibraryService(repos *repository.Repositories, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		repos:  repos,
		logger: logger.With(slog.String("component", "library_service")),
	}
}

// CreatePlaylist создаёт плейлист текущего пользователя.
func (s *LibraryService) CreatePlaylist(ctx context.Context, actor *model.User, p CreatePlaylistParams) (*model.Playlist, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w: требуется вход в систему", ErrUnauthorized)
	}

	name := strings.TrimSpace(p.Name)
	if name == "" || utf8.RuneCountInString(name) > maxPlaylistNameLen {
		return nil, validationError("имя плейлиста должно содержать от 1 до %d символов", maxPlaylistNameLen)
	}

	pl := &model.Playlist{
		Name:        name,
		Description: trimOptional(p.Description),
		IsPublic:    p.IsPublic,
		OwnerID:     actor.ID,
	}
	if err := s.repos.Playlists.Create(ctx, pl); err != nil {
		return nil, mapRepoError(err, "создание плейлиста")
	}

	s.logger.Info("Плейлист создан",
		slog.Int64("playlist_id", pl.ID),
		slog.Int64("owner_id", actor.ID),
	)
	return pl, nil
}

// ListPlaylists возвращает плейлисты текущего пользователя.
func (s *LibraryService) ListPlaylists(ctx context.Context, actor *model.User) ([]*model.Playlist, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w: требуется вход в систему", ErrUnauthorized)
	}
	list, err := s.repos.Playlists.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, mapRepoError(err, "получение плейлистов")
	}
	return list, nil
}

// GetPlaylist возвращает плейлист с песнями.
// Приватный плейлист доступен владельцу и администратору, остальным — ErrNotFound.
func (s *LibraryService) GetPlaylist(ctx context.Context, actor *model.User, id int64) (*PlaylistDetails, error) {
	pl, err := s.repos.Playlists.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("плейлист %d", id))
	}
	if !pl.IsPublic && !canManage(actor, pl.OwnerID) {
		return nil, fmt.Errorf("%w: плейлист %d", ErrNotFound, id)
	}

	songs, err := s.repos.Songs.ListByPlaylist(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "получение песен плейлиста")
	}
	return &PlaylistDetails{Playlist: pl, Songs: songs}, nil
}

// DeletePlaylist удаляет плейлист (владелец или администратор).
func (s *LibraryService) DeletePlaylist(ctx context.Context, actor *model.User, id int64) error {
	pl, err := s.ownedPlaylist(ctx, actor, id, true)
	if err != nil {
		return err
	}
	if err := s.repos.Playlists.Delete(ctx, pl.ID); err != nil {
		return mapRepoError(err, fmt.Sprintf("плейлист %d", id))
	}
	s.logger.Info("Плейлист удалён",
		slog.Int64("playlist_id", id),
		slog.Int64("actor_id", actor.ID),
	)
	return nil
}

// AddSong добавляет песню в конец плейлиста (только владелец).
// Добавить можно одобренную или собственную песню.
func (s *LibraryService) AddSong(ctx context.Context, actor *model.User, playlistID, songID int64) error {
	if _, err := s.ownedPlaylist(ctx, actor, playlistID, false); err != nil {
		return err
	}
	if _, err := s.visibleSong(ctx, actor, songID); err != nil {
		return err
	}
	if err := s.repos.Playlists.AddSong(ctx, playlistID, songID); err != nil {
		return mapRepoError(err, "добавление песни в плейлист")
	}
	return nil
}

// RemoveSong убирает песню из плейлиста (только владелец).
func (s *LibraryService) RemoveSong(ctx context.Context, actor *model.User, playlistID, songID int64) error {
	if _, err := s.ownedPlaylist(ctx, actor, playlistID, false); err != nil {
		return err
	}
	if err := s.repos.Playlists.RemoveSong(ctx, playlistID, songID); err != nil {
		return mapRepoError(err, fmt.Sprintf("песня %d в плейлисте %d", songID, playlistID))
	}
	return nil
}

// Like отмечает песню как понравившуюся. Повторный лайк не ошибка;
// created=false, если лайк уже был.
func (s *LibraryService) Like(ctx context.Context, actor *model.User, songID int64) (bool, error) {
	if actor == nil {
		return false, fmt.Errorf("%w: требуется вход в систему", ErrUnauthorized)
	}
	if _, err := s.visibleSong(ctx, actor, songID); err != nil {
		return false, err
	}
	created, err := s.repos.Likes.Like(ctx, actor.ID, songID)
	if err != nil {
		return false, mapRepoError(err, "лайк песни")
	}
	return created, nil
}

// Unlike снимает лайк; отсутствующий лайк — ErrNotFound.
func (s *LibraryService) Unlike(ctx context.Context, actor *model.User, songID int64) error {
	if actor == nil {
		return fmt.Errorf("%w: требуется вход в систему", ErrUnauthorized)
	}
	if err := s.repos.Likes.Unlike(ctx, actor.ID, songID); err != nil {
		return mapRepoError(err, fmt.Sprintf("лайк песни %d", songID))
	}
	return nil
}

// LikedSongs возвращает понравившиеся песни, последние лайки первыми.
func (s *LibraryService) LikedSongs(ctx context.Context, actor *model.User) ([]*model.Song, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w: требуется вход в систему", ErrUnauthorized)
	}
	songs, err := s.repos.Songs.ListLikedBy(ctx, actor.ID)
	if err != nil {
		return nil, mapRepoError(err, "получение понравившихся песен")
	}
	return songs, nil
}

// ownedPlaylist загружает плейлист и проверяет права на изменение.
// allowModerator разрешает действие администратору.
func (s *LibraryService) ownedPlaylist(ctx context.Context, actor *model.User, id int64, allowModerator bool) (*model.Playlist, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w: требуется вход в систему", ErrUnauthorized)
	}
	pl, err := s.repos.Playlists.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("плейлист %d", id))
	}

	allowed := pl.OwnerID == actor.ID
	if allowModerator {
		allowed = canManage(actor, pl.OwnerID)
	}
	if !allowed {
		if !pl.IsPublic && !canManage(actor, pl.OwnerID) {
			return nil, fmt.Errorf("%w: плейлист %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: плейлист принадлежит другому пользователю", ErrForbidden)
	}
	return pl, nil
}

// visibleSong возвращает песню, если она одобрена или принадлежит пользователю.
func (s *LibraryService) visibleSong(ctx context.Context, actor *model.User, id int64) (*model.Song, error) {
	song, err := s.repos.Songs.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("песня %d", id))
	}
	if !song.IsApproved && song.CreatorID != actor.ID {
		return nil, fmt.Errorf("%w: песня %d", ErrNotFound, id)
	}
	return song, nil
}
