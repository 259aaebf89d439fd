package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Andert51/P-Music-td/internal/domain/model"
)

// albumColumns — список столбцов таблицы albums для SELECT-запросов.
const albumColumns = `id, title, description, cover_url, release_date, creator_id,
	is_approved, created_at, updated_at`

// AlbumFilters — параметры выборки альбомов.
type AlbumFilters struct {
	// ApprovedOnly — только одобренные альбомы
	ApprovedOnly bool
}

// AlbumRepository — интерфейс доступа к таблице albums.
type AlbumRepository interface {
	// List возвращает альбомы, новые первыми.
	List(ctx context.Context, filters AlbumFilters, limit, offset int) ([]*model.Album, error)
	GetByID(ctx context.Context, id int64) (*model.Album, error)
	Create(ctx context.Context, a *model.Album) error
	SetApproved(ctx context.Context, id int64, approved bool) (*model.Album, error)
	// ListByCreator — все альбомы пользователя без фильтра одобрения.
	ListByCreator(ctx context.Context, creatorID int64) ([]*model.Album, error)
}

// albumRepo — реализация AlbumRepository.
type albumRepo struct {
	db DBTX
}

// NewAlbumRepository создаёт репозиторий альбомов.
func NewAlbumRepository(db DBTX) AlbumRepository {
	return &albumRepo{db: db}
}

func scanAlbum(row pgx.Row) (*model.Album, error) {
	a := &model.Album{}
	err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.CoverURL, &a.ReleaseDate, &a.CreatorID,
		&a.IsApproved, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *albumRepo) List(ctx context.Context, filters AlbumFilters, limit, offset int) ([]*model.Album, error) {
	where := ""
	if filters.ApprovedOnly {
		where = "WHERE is_approved = true"
	}

	query := fmt.Sprintf(`
		SELECT %s FROM albums %s
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, albumColumns, where)
	return r.query(ctx, query, limit, offset)
}

func (r *albumRepo) GetByID(ctx context.Context, id int64) (*model.Album, error) {
	query := fmt.Sprintf(`SELECT %s FROM albums WHERE id = $1`, albumColumns)

	a, err := scanAlbum(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения альбома: %w", err)
	}
	return a, nil
}

func (r *albumRepo) Create(ctx context.Context, a *model.Album) error {
	query := `
		INSERT INTO albums (title, description, cover_url, release_date, creator_id, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		a.Title, a.Description, a.CoverURL, a.ReleaseDate, a.CreatorID, a.IsApproved,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: создатель альбома не существует", ErrReference)
		}
		return fmt.Errorf("ошибка создания альбома: %w", err)
	}
	return nil
}

func (r *albumRepo) SetApproved(ctx context.Context, id int64, approved bool) (*model.Album, error) {
	query := fmt.Sprintf(`
		UPDATE albums SET is_approved = $2
		WHERE id = $1
		RETURNING %s`, albumColumns)

	a, err := scanAlbum(r.db.QueryRow(ctx, query, id, approved))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка изменения статуса альбома: %w", err)
	}
	return a, nil
}

func (r *albumRepo) ListByCreator(ctx context.Context, creatorID int64) ([]*model.Album, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM albums
		WHERE creator_id = $1
		ORDER BY created_at DESC, id DESC`, albumColumns)
	return r.query(ctx, query, creatorID)
}

func (r *albumRepo) query(ctx context.Context, query string, args ...any) ([]*model.Album, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка альбомов: %w", err)
	}
	defer rows.Close()

	result := make([]*model.Album, 0)
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования альбома: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
