package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Andert51/P-Music-td/internal/domain/model"
)

// playlistColumns — список столбцов таблицы playlists для SELECT-запросов.
const playlistColumns = `id, name, description, is_public, owner_id, created_at, updated_at`

// PlaylistRepository — интерфейс доступа к плейлистам и их содержимому.
type PlaylistRepository interface {
	Create(ctx context.Context, p *model.Playlist) error
	GetByID(ctx context.Context, id int64) (*model.Playlist, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.Playlist, error)
	Delete(ctx context.Context, id int64) error
	// AddSong добавляет песню в конец плейлиста.
	// Повторное добавление — ErrConflict, несуществующая песня — ErrReference.
	AddSong(ctx context.Context, playlistID, songID int64) error
	// RemoveSong удаляет песню из плейлиста; отсутствующая — ErrNotFound.
	RemoveSong(ctx context.Context, playlistID, songID int64) error
}

// playlistRepo — реализация PlaylistRepository.
type playlistRepo struct {
	db DBTX
}

// NewPlaylistRepository создаёт репозиторий плейлистов.
func NewPlaylistRepository(db DBTX) PlaylistRepository {
	return &playlistRepo{db: db}
}

func scanPlaylist(row pgx.Row) (*model.Playlist, error) {
	p := &model.Playlist{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.IsPublic, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *playlistRepo) Create(ctx context.Context, p *model.Playlist) error {
	query := `
		INSERT INTO playlists (name, description, is_public, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, p.Name, p.Description, p.IsPublic, p.OwnerID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: владелец плейлиста не существует", ErrReference)
		}
		return fmt.Errorf("ошибка создания плейлиста: %w", err)
	}
	return nil
}

func (r *playlistRepo) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	query := fmt.Sprintf(`SELECT %s FROM playlists WHERE id = $1`, playlistColumns)

	p, err := scanPlaylist(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения плейлиста: %w", err)
	}
	return p, nil
}

func (r *playlistRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Playlist, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM playlists
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`, playlistColumns)

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка плейлистов: %w", err)
	}
	defer rows.Close()

	result := make([]*model.Playlist, 0)
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования плейлиста: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *playlistRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления плейлиста: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *playlistRepo) AddSong(ctx context.Context, playlistID, songID int64) error {
	query := `
		INSERT INTO playlist_songs (playlist_id, song_id, position)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1
		FROM playlist_songs WHERE playlist_id = $1`

	if _, err := r.db.Exec(ctx, query, playlistID, songID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: песня уже в плейлисте", ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: плейлист или песня не существует", ErrReference)
		}
		return fmt.Errorf("ошибка добавления песни в плейлист: %w", err)
	}
	return nil
}

func (r *playlistRepo) RemoveSong(ctx context.Context, playlistID, songID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM playlist_songs WHERE playlist_id = $1 AND song_id = $2`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("ошибка удаления песни из плейлиста: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
