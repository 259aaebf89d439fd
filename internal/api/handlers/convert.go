// convert.go — преобразование domain моделей в API-типы.
package handlers

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Andert51/P-Music-td/internal/api/generated"
	"github.com/Andert51/P-Music-td/internal/domain/model"
)

func toUserResponse(u *model.User) generated.UserResponse {
	return generated.UserResponse{
		Id:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      generated.UserRole(u.Role),
		IsActive:  u.IsActive,
		AvatarUrl: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

func toSongResponse(s *model.Song) generated.SongResponse {
	return generated.SongResponse{
		Id:          s.ID,
		Title:       s.Title,
		Artist:      s.Artist,
		Duration:    s.Duration,
		FilePath:    s.FilePath,
		CoverUrl:    s.CoverURL,
		Genre:       s.Genre,
		AlbumId:     s.AlbumID,
		TrackNumber: s.TrackNumber,
		CreatorId:   s.CreatorID,
		IsApproved:  s.IsApproved,
		PlayCount:   s.PlayCount,
		CreatedAt:   s.CreatedAt,
	}
}

// toSongList всегда возвращает непустой срез: клиент получает [] вместо null.
func toSongList(songs []*model.Song) []generated.SongResponse {
	out := make([]generated.SongResponse, 0, len(songs))
	for _, s := range songs {
		out = append(out, toSongResponse(s))
	}
	return out
}

func toAlbumResponse(a *model.Album) generated.AlbumResponse {
	resp := generated.AlbumResponse{
		Id:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		CoverUrl:    a.CoverURL,
		CreatorId:   a.CreatorID,
		IsApproved:  a.IsApproved,
		CreatedAt:   a.CreatedAt,
	}
	if a.ReleaseDate != nil {
		resp.ReleaseDate = &openapi_types.Date{Time: *a.ReleaseDate}
	}
	return resp
}

func toAlbumList(albums []*model.Album) []generated.AlbumResponse {
	out := make([]generated.AlbumResponse, 0, len(albums))
	for _, a := range albums {
		out = append(out, toAlbumResponse(a))
	}
	return out
}

func toPlaylistResponse(p *model.Playlist) generated.PlaylistResponse {
	return generated.PlaylistResponse{
		Id:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		IsPublic:    p.IsPublic,
		OwnerId:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
	}
}
