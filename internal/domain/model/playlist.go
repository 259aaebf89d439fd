package model

import "time"

// Playlist — пользовательский плейлист (таблица playlists).
// Песни хранятся в playlist_songs с явной позицией.
type Playlist struct {
	ID          int64
	Name        string
	Description *string
	// IsPublic — публичный плейлист доступен на чтение всем
	IsPublic  bool
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
