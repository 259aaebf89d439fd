package model

import "time"

// Album — альбом (таблица albums). Владеет песнями через songs.album_id.
type Album struct {
	ID          int64
	Title       string
	Description *string
	// CoverURL — веб-путь к обложке (/uploads/covers/albums/...)
	CoverURL *string
	// ReleaseDate — дата выхода (только дата, без времени)
	ReleaseDate *time.Time
	CreatorID   int64
	// IsApproved — виден ли альбом в стандартной выдаче каталога
	IsApproved bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Song — песня (таблица songs).
type Song struct {
	ID     int64
	Title  string
	Artist string
	// Duration — длительность в секундах
	Duration int
	// FilePath — веб-путь к аудиофайлу (/uploads/songs/<uuid>.<ext>)
	FilePath string
	CoverURL *string
	Genre    *string
	AlbumID  *int64
	// TrackNumber — позиция в альбоме (1..n), задаёт порядок песен в альбоме
	TrackNumber *int
	CreatorID   int64
	IsApproved  bool
	// PlayCount — счётчик прослушиваний, только растёт
	PlayCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
