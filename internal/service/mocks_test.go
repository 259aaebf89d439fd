package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/Andert51/P-Music-td/internal/domain/model"
	"github.com/Andert51/P-Music-td/internal/domain/rbac"
	"github.com/Andert51/P-Music-td/internal/repository"
	"github.com/Andert51/P-Music-td/internal/storage/assetstore"
)

// --- Mock repositories ---

// mockUserRepo — мок UserRepository.
type mockUserRepo struct {
	createFn       func(ctx context.Context, u *model.User) error
	getByIDFn      func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn   func(ctx context.Context, email string) (*model.User, error)
	updateAvatarFn func(ctx context.Context, id int64, avatarURL *string) (*string, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	u.ID = 1
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, _ string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) UpdateAvatar(ctx context.Context, id int64, avatarURL *string) (*string, error) {
	if m.updateAvatarFn != nil {
		return m.updateAvatarFn(ctx, id, avatarURL)
	}
	return nil, nil
}

func (m *mockUserRepo) SetActive(_ context.Context, _ int64, _ bool) error { return nil }

func (m *mockUserRepo) List(_ context.Context, _, _ int) ([]*model.User, error) {
	return []*model.User{}, nil
}

func (m *mockUserRepo) DeleteAll(_ context.Context) (int64, error) { return 0, nil }

// mockSongRepo — мок SongRepository.
type mockSongRepo struct {
	listFn           func(ctx context.Context, f repository.SongFilters, limit, offset int) ([]*model.Song, error)
	getByIDFn        func(ctx context.Context, id int64) (*model.Song, error)
	createFn         func(ctx context.Context, s *model.Song) error
	incrementFn      func(ctx context.Context, id int64) (int64, error)
	setApprovedFn    func(ctx context.Context, id int64, approved bool) (*model.Song, error)
	setByAlbumFn     func(ctx context.Context, albumID int64, approved bool) (int64, error)
	deleteFn         func(ctx context.Context, id int64) error
	listByCreatorFn  func(ctx context.Context, creatorID int64) ([]*model.Song, error)
	listByAlbumFn    func(ctx context.Context, albumID int64, approvedOnly bool) ([]*model.Song, error)
	listLikedByFn    func(ctx context.Context, userID int64) ([]*model.Song, error)
	listByPlaylistFn func(ctx context.Context, playlistID int64) ([]*model.Song, error)
	referencedFn     func(ctx context.Context, webPath string) (bool, error)
}

func (m *mockSongRepo) List(ctx context.Context, f repository.SongFilters, limit, offset int) ([]*model.Song, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f, limit, offset)
	}
	return []*model.Song{}, nil
}

func (m *mockSongRepo) GetByID(ctx context.Context, id int64) (*model.Song, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockSongRepo) Create(ctx context.Context, s *model.Song) error {
	if m.createFn != nil {
		return m.createFn(ctx, s)
	}
	return nil
}

func (m *mockSongRepo) IncrementPlayCount(ctx context.Context, id int64) (int64, error) {
	if m.incrementFn != nil {
		return m.incrementFn(ctx, id)
	}
	return 0, repository.ErrNotFound
}

func (m *mockSongRepo) SetApproved(ctx context.Context, id int64, approved bool) (*model.Song, error) {
	if m.setApprovedFn != nil {
		return m.setApprovedFn(ctx, id, approved)
	}
	return nil, repository.ErrNotFound
}

func (m *mockSongRepo) SetApprovedByAlbum(ctx context.Context, albumID int64, approved bool) (int64, error) {
	if m.setByAlbumFn != nil {
		return m.setByAlbumFn(ctx, albumID, approved)
	}
	return 0, nil
}

func (m *mockSongRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSongRepo) ListByCreator(ctx context.Context, creatorID int64) ([]*model.Song, error) {
	if m.listByCreatorFn != nil {
		return m.listByCreatorFn(ctx, creatorID)
	}
	return []*model.Song{}, nil
}

func (m *mockSongRepo) ListByAlbum(ctx context.Context, albumID int64, approvedOnly bool) ([]*model.Song, error) {
	if m.listByAlbumFn != nil {
		return m.listByAlbumFn(ctx, albumID, approvedOnly)
	}
	return []*model.Song{}, nil
}

func (m *mockSongRepo) ListLikedBy(ctx context.Context, userID int64) ([]*model.Song, error) {
	if m.listLikedByFn != nil {
		return m.listLikedByFn(ctx, userID)
	}
	return []*model.Song{}, nil
}

func (m *mockSongRepo) ListByPlaylist(ctx context.Context, playlistID int64) ([]*model.Song, error) {
	if m.listByPlaylistFn != nil {
		return m.listByPlaylistFn(ctx, playlistID)
	}
	return []*model.Song{}, nil
}

func (m *mockSongRepo) FileReferenced(ctx context.Context, webPath string) (bool, error) {
	if m.referencedFn != nil {
		return m.referencedFn(ctx, webPath)
	}
	return false, nil
}

// mockAlbumRepo — мок AlbumRepository.
type mockAlbumRepo struct {
	listFn          func(ctx context.Context, f repository.AlbumFilters, limit, offset int) ([]*model.Album, error)
	getByIDFn       func(ctx context.Context, id int64) (*model.Album, error)
	createFn        func(ctx context.Context, a *model.Album) error
	setApprovedFn   func(ctx context.Context, id int64, approved bool) (*model.Album, error)
	listByCreatorFn func(ctx context.Context, creatorID int64) ([]*model.Album, error)
}

func (m *mockAlbumRepo) List(ctx context.Context, f repository.AlbumFilters, limit, offset int) ([]*model.Album, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f, limit, offset)
	}
	return []*model.Album{}, nil
}

func (m *mockAlbumRepo) GetByID(ctx context.Context, id int64) (*model.Album, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockAlbumRepo) Create(ctx context.Context, a *model.Album) error {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	return nil
}

func (m *mockAlbumRepo) SetApproved(ctx context.Context, id int64, approved bool) (*model.Album, error) {
	if m.setApprovedFn != nil {
		return m.setApprovedFn(ctx, id, approved)
	}
	return nil, repository.ErrNotFound
}

func (m *mockAlbumRepo) ListByCreator(ctx context.Context, creatorID int64) ([]*model.Album, error) {
	if m.listByCreatorFn != nil {
		return m.listByCreatorFn(ctx, creatorID)
	}
	return []*model.Album{}, nil
}

// mockPlaylistRepo — мок PlaylistRepository.
type mockPlaylistRepo struct {
	createFn     func(ctx context.Context, p *model.Playlist) error
	getByIDFn    func(ctx context.Context, id int64) (*model.Playlist, error)
	deleteFn     func(ctx context.Context, id int64) error
	addSongFn    func(ctx context.Context, playlistID, songID int64) error
	removeSongFn func(ctx context.Context, playlistID, songID int64) error
}

func (m *mockPlaylistRepo) Create(ctx context.Context, p *model.Playlist) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	p.ID = 1
	return nil
}

func (m *mockPlaylistRepo) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockPlaylistRepo) ListByOwner(_ context.Context, _ int64) ([]*model.Playlist, error) {
	return []*model.Playlist{}, nil
}

func (m *mockPlaylistRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPlaylistRepo) AddSong(ctx context.Context, playlistID, songID int64) error {
	if m.addSongFn != nil {
		return m.addSongFn(ctx, playlistID, songID)
	}
	return nil
}

func (m *mockPlaylistRepo) RemoveSong(ctx context.Context, playlistID, songID int64) error {
	if m.removeSongFn != nil {
		return m.removeSongFn(ctx, playlistID, songID)
	}
	return nil
}

// mockLikeRepo — мок LikeRepository.
type mockLikeRepo struct {
	likeFn   func(ctx context.Context, userID, songID int64) (bool, error)
	unlikeFn func(ctx context.Context, userID, songID int64) error
}

func (m *mockLikeRepo) Like(ctx context.Context, userID, songID int64) (bool, error) {
	if m.likeFn != nil {
		return m.likeFn(ctx, userID, songID)
	}
	return true, nil
}

func (m *mockLikeRepo) Unlike(ctx context.Context, userID, songID int64) error {
	if m.unlikeFn != nil {
		return m.unlikeFn(ctx, userID, songID)
	}
	return nil
}

func (m *mockLikeRepo) IsLiked(_ context.Context, _, _ int64) (bool, error) {
	return false, nil
}

// --- Транзакции ---

// fakeTx выполняет fn поверх того же набора репозиториев.
// Откат данных не моделируется: тесты проверяют ошибки и файлы.
type fakeTx struct {
	repos *repository.Repositories
	calls int
}

func (f *fakeTx) InTx(_ context.Context, fn func(*repository.Repositories) error) error {
	f.calls++
	return fn(f.repos)
}

// --- Вспомогательные ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRepos собирает Repositories из моков; nil-моки заменяются пустыми.
func newRepos(users *mockUserRepo, songs *mockSongRepo, albums *mockAlbumRepo) *repository.Repositories {
	if users == nil {
		users = &mockUserRepo{}
	}
	if songs == nil {
		songs = &mockSongRepo{}
	}
	if albums == nil {
		albums = &mockAlbumRepo{}
	}
	return &repository.Repositories{
		Users:     users,
		Songs:     songs,
		Albums:    albums,
		Playlists: &mockPlaylistRepo{},
		Likes:     &mockLikeRepo{},
	}
}

// newTestStore создаёт файловое хранилище во временной директории.
func newTestStore(t *testing.T) *assetstore.Store {
	t.Helper()
	store, err := assetstore.New(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("assetstore.New: %v", err)
	}
	return store
}

func user(id int64, role rbac.Role) *model.User {
	return &model.User{ID: id, Username: fmt.Sprintf("user%d", id), Role: role, IsActive: true}
}

func ptr[T any](v T) *T { return &v }
