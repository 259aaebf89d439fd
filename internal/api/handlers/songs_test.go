package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Andert51/P-Music-td/internal/api/generated"
	"github.com/Andert51/P-Music-td/internal/domain/model"
	"github.com/Andert51/P-Music-td/internal/domain/rbac"
	"github.com/Andert51/P-Music-td/internal/service"
)

func TestSongsHandler_ListSongs(t *testing.T) {
	var got service.SongQuery
	var gotActor *model.User
	catalog := &mockCatalog{
		listSongsFn: func(_ context.Context, actor *model.User, q service.SongQuery) ([]*model.Song, error) {
			got, gotActor = q, actor
			return nil, nil
		},
	}
	h := NewSongsHandler(catalog, &mockLibrary{}, testLogger())

	skip, limit := 10, 5
	search := "creep"
	order := generated.ListSongsParamsOrderByPlayCount
	rec := httptest.NewRecorder()
	h.ListSongs(rec, httptest.NewRequest(http.MethodGet, "/songs", nil), generated.ListSongsParams{
		Skip: &skip, Limit: &limit, Search: &search, OrderBy: &order,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("пустой список сериализован как %q", rec.Body.String())
	}
	if *got.Skip != 10 || *got.Limit != 5 || *got.Search != "creep" || got.OrderBy != "play_count" {
		t.Errorf("query = %+v", got)
	}
	if gotActor != nil {
		t.Errorf("анонимный запрос передал пользователя %+v", gotActor)
	}
}

func TestSongsHandler_ApproveSong(t *testing.T) {
	var gotApproved []bool
	catalog := &mockCatalog{
		approveSongFn: func(_ context.Context, _ *model.User, id int64, approved bool) (*model.Song, error) {
			gotApproved = append(gotApproved, approved)
			s := song(id)
			s.IsApproved = approved
			return s, nil
		},
	}
	h := NewSongsHandler(catalog, &mockLibrary{}, testLogger())
	admin := testUser(1, rbac.RoleAdmin)

	for _, body := range []string{"", `{"is_approved":false}`} {
		req := asUser(httptest.NewRequest(http.MethodPatch, "/songs/5/approve", strings.NewReader(body)), admin)
		rec := httptest.NewRecorder()
		h.ApproveSong(rec, req, 5)
		if rec.Code != http.StatusOK {
			t.Fatalf("тело %q: статус = %d", body, rec.Code)
		}
	}
	if len(gotApproved) != 2 || !gotApproved[0] || gotApproved[1] {
		t.Errorf("approved = %v, ожидалось [true false]", gotApproved)
	}

	rec := httptest.NewRecorder()
	h.ApproveSong(rec, httptest.NewRequest(http.MethodPatch, "/songs/5/approve", nil), 5)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("аноним: статус = %d", rec.Code)
	}
}

func TestSongsHandler_CreateSong(t *testing.T) {
	var got service.CreateSongParams
	catalog := &mockCatalog{
		createSongFn: func(_ context.Context, _ *model.User, p service.CreateSongParams) (*model.Song, error) {
			got = p
			return song(9), nil
		},
	}
	h := NewSongsHandler(catalog, &mockLibrary{}, testLogger())

	body := `{"title":"Airbag","artist":"Radiohead","duration":284,"file_path":"/uploads/songs/a.mp3"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/songs", strings.NewReader(body)), testUser(2, rbac.RoleCreator))
	rec := httptest.NewRecorder()
	h.CreateSong(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("статус = %d, тело: %s", rec.Code, rec.Body.String())
	}
	if got.Duration != 284 || got.FilePath != "/uploads/songs/a.mp3" {
		t.Errorf("params = %+v", got)
	}
}

func TestSongsHandler_PlaySong(t *testing.T) {
	catalog := &mockCatalog{
		playSongFn: func(_ context.Context, _ *model.User, id int64) (int64, error) {
			if id != 5 {
				return 0, service.ErrNotFound
			}
			return 42, nil
		},
	}
	h := NewSongsHandler(catalog, &mockLibrary{}, testLogger())

	rec := httptest.NewRecorder()
	h.PlaySong(rec, httptest.NewRequest(http.MethodPost, "/songs/5/play", nil), 5)
	var resp generated.PlayResponse
	decodeBody(t, rec, &resp)
	if rec.Code != http.StatusOK || resp.PlayCount != 42 {
		t.Errorf("статус = %d, resp = %+v", rec.Code, resp)
	}

	rec = httptest.NewRecorder()
	h.PlaySong(rec, httptest.NewRequest(http.MethodPost, "/songs/6/play", nil), 6)
	if rec.Code != http.StatusNotFound {
		t.Errorf("несуществующая: статус = %d", rec.Code)
	}
}

func TestSongsHandler_LikeSong(t *testing.T) {
	liked := map[int64]bool{}
	library := &mockLibrary{
		likeFn: func(_ context.Context, _ *model.User, sid int64) (bool, error) {
			if liked[sid] {
				return false, nil
			}
			liked[sid] = true
			return true, nil
		},
	}
	h := NewSongsHandler(&mockCatalog{}, library, testLogger())
	listener := testUser(4, rbac.RoleUser)

	wantCodes := []int{http.StatusCreated, http.StatusOK}
	for i, want := range wantCodes {
		rec := httptest.NewRecorder()
		h.LikeSong(rec, asUser(httptest.NewRequest(http.MethodPost, "/songs/5/like", nil), listener), 5)
		if rec.Code != want {
			t.Errorf("лайк #%d: статус = %d, ожидался %d", i+1, rec.Code, want)
		}
	}
}

func TestAlbumsHandler_CreateAlbum(t *testing.T) {
	var got service.CreateAlbumParams
	catalog := &mockCatalog{
		createAlbumFn: func(_ context.Context, actor *model.User, p service.CreateAlbumParams) (*model.Album, error) {
			got = p
			return &model.Album{ID: 3, Title: p.Title, ReleaseDate: p.ReleaseDate, CreatorID: actor.ID, IsApproved: true}, nil
		},
	}
	h := NewAlbumsHandler(catalog, testLogger())

	body := `{"title":"Kid A","release_date":"2000-10-02"}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/albums", strings.NewReader(body)), testUser(2, rbac.RoleCreator))
	rec := httptest.NewRecorder()
	h.CreateAlbum(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("статус = %d, тело: %s", rec.Code, rec.Body.String())
	}
	want := time.Date(2000, 10, 2, 0, 0, 0, 0, time.UTC)
	if got.ReleaseDate == nil || !got.ReleaseDate.Equal(want) {
		t.Errorf("release_date = %v", got.ReleaseDate)
	}

	var resp generated.AlbumResponse
	decodeBody(t, rec, &resp)
	if resp.ReleaseDate == nil || !resp.ReleaseDate.Time.Equal(want) {
		t.Errorf("release_date в ответе = %v", resp.ReleaseDate)
	}
}

func TestAlbumsHandler_ListAlbums(t *testing.T) {
	var gotSkip, gotLimit *int
	catalog := &mockCatalog{
		listAlbumsFn: func(_ context.Context, skip, limit *int) ([]*model.Album, error) {
			gotSkip, gotLimit = skip, limit
			return []*model.Album{{ID: 1, Title: "OK Computer", IsApproved: true}}, nil
		},
	}
	h := NewAlbumsHandler(catalog, testLogger())

	limit := 1
	rec := httptest.NewRecorder()
	h.ListAlbums(rec, httptest.NewRequest(http.MethodGet, "/albums", nil), generated.ListAlbumsParams{Limit: &limit})

	var resp []generated.AlbumResponse
	decodeBody(t, rec, &resp)
	if len(resp) != 1 || gotSkip != nil || *gotLimit != 1 {
		t.Errorf("resp = %+v, skip = %v, limit = %v", resp, gotSkip, gotLimit)
	}
}

func TestAlbumsHandler_ApproveAlbum_Forbidden(t *testing.T) {
	catalog := &mockCatalog{
		approveAlbumFn: func(_ context.Context, _ *model.User, _ int64, _ bool) (*model.Album, error) {
			return nil, service.ErrForbidden
		},
	}
	h := NewAlbumsHandler(catalog, testLogger())

	rec := httptest.NewRecorder()
	h.ApproveAlbum(rec, asUser(httptest.NewRequest(http.MethodPatch, "/albums/1/approve", nil), testUser(4, rbac.RoleUser)), 1)
	if rec.Code != http.StatusForbidden {
		t.Errorf("статус = %d", rec.Code)
	}
}
