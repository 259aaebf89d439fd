package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Andert51/P-Music-td/internal/api/middleware"
	"github.com/Andert51/P-Music-td/internal/domain/model"
	"github.com/Andert51/P-Music-td/internal/domain/rbac"
	"github.com/Andert51/P-Music-td/internal/service"
	"github.com/Andert51/P-Music-td/internal/storage/assetstore"
)

var errNotMocked = errors.New("метод не замокан")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser(id int64, role rbac.Role) *model.User {
	return &model.User{ID: id, Username: "user", Email: "user@example.com", Role: role, IsActive: true}
}

// asUser возвращает запрос с аутентифицированным пользователем в контексте.
func asUser(r *http.Request, u *model.User) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), u))
}

// decodeBody разбирает JSON ответа в dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("некорректный JSON ответа: %v", err)
	}
}

// errorCode извлекает error.code из ответа с ошибкой.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	decodeBody(t, rec, &body)
	return body.Error.Code
}

func song(id int64) *model.Song {
	return &model.Song{ID: id, Title: "Airbag", Artist: "Radiohead", Duration: 284,
		FilePath: "/uploads/songs/a.mp3", IsApproved: true, CreatedAt: time.Unix(0, 0).UTC()}
}

// --- CatalogService ---

type mockCatalog struct {
	listSongsFn    func(ctx context.Context, actor *model.User, q service.SongQuery) ([]*model.Song, error)
	getSongFn      func(ctx context.Context, actor *model.User, id int64) (*model.Song, error)
	createSongFn   func(ctx context.Context, actor *model.User, p service.CreateSongParams) (*model.Song, error)
	approveSongFn  func(ctx context.Context, actor *model.User, id int64, approved bool) (*model.Song, error)
	deleteSongFn   func(ctx context.Context, actor *model.User, id int64) error
	playSongFn     func(ctx context.Context, actor *model.User, id int64) (int64, error)
	listAlbumsFn   func(ctx context.Context, skip, limit *int) ([]*model.Album, error)
	getAlbumFn     func(ctx context.Context, actor *model.User, id int64) (*model.Album, error)
	albumSongsFn   func(ctx context.Context, actor *model.User, id int64) ([]*model.Song, error)
	createAlbumFn  func(ctx context.Context, actor *model.User, p service.CreateAlbumParams) (*model.Album, error)
	approveAlbumFn func(ctx context.Context, actor *model.User, id int64, approved bool) (*model.Album, error)
}

func (m *mockCatalog) ListSongs(ctx context.Context, actor *model.User, q service.SongQuery) ([]*model.Song, error) {
	if m.listSongsFn == nil {
		return nil, errNotMocked
	}
	return m.listSongsFn(ctx, actor, q)
}

func (m *mockCatalog) GetSong(ctx context.Context, actor *model.User, id int64) (*model.Song, error) {
	if m.getSongFn == nil {
		return nil, errNotMocked
	}
	return m.getSongFn(ctx, actor, id)
}

func (m *mockCatalog) CreateSong(ctx context.Context, actor *model.User, p service.CreateSongParams) (*model.Song, error) {
	if m.createSongFn == nil {
		return nil, errNotMocked
	}
	return m.createSongFn(ctx, actor, p)
}

func (m *mockCatalog) ApproveSong(ctx context.Context, actor *model.User, id int64, approved bool) (*model.Song, error) {
	if m.approveSongFn == nil {
		return nil, errNotMocked
	}
	return m.approveSongFn(ctx, actor, id, approved)
}

func (m *mockCatalog) DeleteSong(ctx context.Context, actor *model.User, id int64) error {
	if m.deleteSongFn == nil {
		return errNotMocked
	}
	return m.deleteSongFn(ctx, actor, id)
}

func (m *mockCatalog) PlaySong(ctx context.Context, actor *model.User, id int64) (int64, error) {
	if m.playSongFn == nil {
		return 0, errNotMocked
	}
	return m.playSongFn(ctx, actor, id)
}

func (m *mockCatalog) ListAlbums(ctx context.Context, skip, limit *int) ([]*model.Album, error) {
	if m.listAlbumsFn == nil {
		return nil, errNotMocked
	}
	return m.listAlbumsFn(ctx, skip, limit)
}

func (m *mockCatalog) GetAlbum(ctx context.Context, actor *model.User, id int64) (*model.Album, error) {
	if m.getAlbumFn == nil {
		return nil, errNotMocked
	}
	return m.getAlbumFn(ctx, actor, id)
}

func (m *mockCatalog) AlbumSongs(ctx context.Context, actor *model.User, id int64) ([]*model.Song, error) {
	if m.albumSongsFn == nil {
		return nil, errNotMocked
	}
	return m.albumSongsFn(ctx, actor, id)
}

func (m *mockCatalog) CreateAlbum(ctx context.Context, actor *model.User, p service.CreateAlbumParams) (*model.Album, error) {
	if m.createAlbumFn == nil {
		return nil, errNotMocked
	}
	return m.createAlbumFn(ctx, actor, p)
}

func (m *mockCatalog) ApproveAlbum(ctx context.Context, actor *model.User, id int64, approved bool) (*model.Album, error) {
	if m.approveAlbumFn == nil {
		return nil, errNotMocked
	}
	return m.approveAlbumFn(ctx, actor, id, approved)
}

// --- LibraryService ---

type mockLibrary struct {
	createPlaylistFn func(ctx context.Context, actor *model.User, p service.CreatePlaylistParams) (*model.Playlist, error)
	listPlaylistsFn  func(ctx context.Context, actor *model.User) ([]*model.Playlist, error)
	getPlaylistFn    func(ctx context.Context, actor *model.User, id int64) (*service.PlaylistDetails, error)
	deletePlaylistFn func(ctx context.Context, actor *model.User, id int64) error
	addSongFn        func(ctx context.Context, actor *model.User, pid, sid int64) error
	removeSongFn     func(ctx context.Context, actor *model.User, pid, sid int64) error
	likeFn           func(ctx context.Context, actor *model.User, sid int64) (bool, error)
	unlikeFn         func(ctx context.Context, actor *model.User, sid int64) error
	likedSongsFn     func(ctx context.Context, actor *model.User) ([]*model.Song, error)
}

func (m *mockLibrary) CreatePlaylist(ctx context.Context, actor *model.User, p service.CreatePlaylistParams) (*model.Playlist, error) {
	if m.createPlaylistFn == nil {
		return nil, errNotMocked
	}
	return m.createPlaylistFn(ctx, actor, p)
}

func (m *mockLibrary) ListPlaylists(ctx context.Context, actor *model.User) ([]*model.Playlist, error) {
	if m.listPlaylistsFn == nil {
		return nil, errNotMocked
	}
	return m.listPlaylistsFn(ctx, actor)
}

func (m *mockLibrary) GetPlaylist(ctx context.Context, actor *model.User, id int64) (*service.PlaylistDetails, error) {
	if m.getPlaylistFn == nil {
		return nil, errNotMocked
	}
	return m.getPlaylistFn(ctx, actor, id)
}

func (m *mockLibrary) DeletePlaylist(ctx context.Context, actor *model.User, id int64) error {
	if m.deletePlaylistFn == nil {
		return errNotMocked
	}
	return m.deletePlaylistFn(ctx, actor, id)
}

func (m *mockLibrary) AddSong(ctx context.Context, actor *model.User, pid, sid int64) error {
	if m.addSongFn == nil {
		return errNotMocked
	}
	return m.addSongFn(ctx, actor, pid, sid)
}

func (m *mockLibrary) RemoveSong(ctx context.Context, actor *model.User, pid, sid int64) error {
	if m.removeSongFn == nil {
		return errNotMocked
	}
	return m.removeSongFn(ctx, actor, pid, sid)
}

func (m *mockLibrary) Like(ctx context.Context, actor *model.User, sid int64) (bool, error) {
	if m.likeFn == nil {
		return false, errNotMocked
	}
	return m.likeFn(ctx, actor, sid)
}

func (m *mockLibrary) Unlike(ctx context.Context, actor *model.User, sid int64) error {
	if m.unlikeFn == nil {
		return errNotMocked
	}
	return m.unlikeFn(ctx, actor, sid)
}

func (m *mockLibrary) LikedSongs(ctx context.Context, actor *model.User) ([]*model.Song, error) {
	if m.likedSongsFn == nil {
		return nil, errNotMocked
	}
	return m.likedSongsFn(ctx, actor)
}

// --- UploadService ---

type mockUploads struct {
	disabled       bool
	uploadSingleFn func(ctx context.Context, actor *model.User, p service.SingleUploadParams) (*model.Song, error)
	uploadAlbumFn  func(ctx context.Context, actor *model.User, p service.AlbumUploadParams) (*service.AlbumUploadResult, error)
	myUploadsFn    func(ctx context.Context, actor *model.User) (*service.MyUploadsResult, error)
	uploadAssetFn  func(ctx context.Context, actor *model.User, kind service.AssetKind, f *assetstore.File) (*assetstore.StoredFile, error)
	deleteAssetFn  func(ctx context.Context, actor *model.User, fileType, filename string) error
}

func (m *mockUploads) Enabled() bool { return !m.disabled }

func (m *mockUploads) UploadSingle(ctx context.Context, actor *model.User, p service.SingleUploadParams) (*model.Song, error) {
	if m.uploadSingleFn == nil {
		return nil, errNotMocked
	}
	return m.uploadSingleFn(ctx, actor, p)
}

func (m *mockUploads) UploadAlbum(ctx context.Context, actor *model.User, p service.AlbumUploadParams) (*service.AlbumUploadResult, error) {
	if m.uploadAlbumFn == nil {
		return nil, errNotMocked
	}
	return m.uploadAlbumFn(ctx, actor, p)
}

func (m *mockUploads) MyUploads(ctx context.Context, actor *model.User) (*service.MyUploadsResult, error) {
	if m.myUploadsFn == nil {
		return nil, errNotMocked
	}
	return m.myUploadsFn(ctx, actor)
}

func (m *mockUploads) UploadAsset(ctx context.Context, actor *model.User, kind service.AssetKind, f *assetstore.File) (*assetstore.StoredFile, error) {
	if m.uploadAssetFn == nil {
		return nil, errNotMocked
	}
	return m.uploadAssetFn(ctx, actor, kind, f)
}

func (m *mockUploads) DeleteAsset(ctx context.Context, actor *model.User, fileType, filename string) error {
	if m.deleteAssetFn == nil {
		return errNotMocked
	}
	return m.deleteAssetFn(ctx, actor, fileType, filename)
}

// --- AuthService / JWKSProvider ---

type mockAuth struct {
	registerFn func(ctx context.Context, p service.RegisterParams) (*model.User, error)
	loginFn    func(ctx context.Context, email, password string) (*service.LoginResult, error)
}

func (m *mockAuth) Register(ctx context.Context, p service.RegisterParams) (*model.User, error) {
	if m.registerFn == nil {
		return nil, errNotMocked
	}
	return m.registerFn(ctx, p)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	if m.loginFn == nil {
		return nil, errNotMocked
	}
	return m.loginFn(ctx, email, password)
}

type staticJWKS string

func (s staticJWKS) JWKS(context.Context) (json.RawMessage, error) {
	return json.RawMessage(s), nil
}

// mockChecker — ReadinessChecker с фиксированным ответом.
type mockChecker struct {
	status, message string
}

func (m mockChecker) CheckReady() (string, string) { return m.status, m.message }
