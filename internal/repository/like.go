package repository

import (
	"context"
	"fmt"
)

// LikeRepository — интерфейс доступа к таблице liked_songs.
type LikeRepository interface {
	// Like отмечает песню. Повторный лайк — no-op; created = false.
	Like(ctx context.Context, userID, songID int64) (created bool, err error)
	// Unlike снимает отметку; отсутствующая отметка — ErrNotFound.
	Unlike(ctx context.Context, userID, songID int64) error
	IsLiked(ctx context.Context, userID, songID int64) (bool, error)
}

// likeRepo — реализация LikeRepository.
type likeRepo struct {
	db DBTX
}

// NewLikeRepository создаёт репозиторий лайков.
func NewLikeRepository(db DBTX) LikeRepository {
	return &likeRepo{db: db}
}

func (r *likeRepo) Like(ctx context.Context, userID, songID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO liked_songs (user_id, song_id) VALUES ($1, $2)
		ON CONFLICT (user_id, song_id) DO NOTHING`, userID, songID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: песня не существует", ErrReference)
		}
		return false, fmt.Errorf("ошибка сохранения лайка: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *likeRepo) Unlike(ctx context.Context, userID, songID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM liked_songs WHERE user_id = $1 AND song_id = $2`, userID, songID)
	if err != nil {
		return fmt.Errorf("ошибка удаления лайка: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *likeRepo) IsLiked(ctx context.Context, userID, songID int64) (bool, error) {
	var liked bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM liked_songs WHERE user_id = $1 AND song_id = $2)`,
		userID, songID,
	).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки лайка: %w", err)
	}
	return liked, nil
}
