package generated

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestValidateSwagger(t *testing.T) {
	swagger, err := ValidateSwagger(context.Background())
	if err != nil {
		t.Fatalf("ValidateSwagger: %v", err)
	}

	for _, path := range []string{
		"/songs", "/songs/{song_id}", "/songs/{song_id}/play",
		"/albums/{album_id}/songs", "/upload/album", "/auth/login",
		"/playlists/{playlist_id}/songs/{song_id}", "/health/ready",
	} {
		if swagger.Paths.Find(path) == nil {
			t.Errorf("путь %s отсутствует в контракте", path)
		}
	}
}

// recordingServer фиксирует вызванную операцию и разобранные параметры.
type recordingServer struct {
	Unimplemented
	called string
	songID SongId
	params ListSongsParams
}

func (s *recordingServer) ListSongs(w http.ResponseWriter, _ *http.Request, params ListSongsParams) {
	s.called = "ListSongs"
	s.params = params
	w.WriteHeader(http.StatusOK)
}

func (s *recordingServer) PlaySong(w http.ResponseWriter, _ *http.Request, songID SongId) {
	s.called = "PlaySong"
	s.songID = songID
	w.WriteHeader(http.StatusOK)
}

func TestHandlerWithOptions_Routing(t *testing.T) {
	srv := &recordingServer{}
	var paramErr error
	router := chi.NewRouter()
	for _, base := range []string{"", "/mvp/sprint3"} {
		HandlerWithOptions(srv, ChiServerOptions{
			BaseURL:    base,
			BaseRouter: router,
			ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
				paramErr = err
				w.WriteHeader(http.StatusBadRequest)
			},
		})
	}

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantCalled string
	}{
		{"список с параметрами", http.MethodGet, "/songs?skip=5&limit=10&order_by=title&approved_only=false", http.StatusOK, "ListSongs"},
		{"play по префиксу", http.MethodPost, "/mvp/sprint3/songs/42/play", http.StatusOK, "PlaySong"},
		{"нечисловой id", http.MethodPost, "/songs/abc/play", http.StatusBadRequest, ""},
		{"нечисловой limit", http.MethodGet, "/songs?limit=many", http.StatusBadRequest, ""},
		{"не реализовано", http.MethodGet, "/albums", http.StatusNotImplemented, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv.called = ""
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("статус = %d, ожидался %d", rec.Code, tt.wantStatus)
			}
			if srv.called != tt.wantCalled {
				t.Errorf("вызван %q, ожидался %q", srv.called, tt.wantCalled)
			}
		})
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/songs?skip=5&limit=10&order_by=title&approved_only=false", nil))
	p := srv.params
	if p.Skip == nil || *p.Skip != 5 || p.Limit == nil || *p.Limit != 10 {
		t.Errorf("skip/limit = %v/%v", p.Skip, p.Limit)
	}
	if p.OrderBy == nil || *p.OrderBy != ListSongsParamsOrderByTitle {
		t.Errorf("order_by = %v", p.OrderBy)
	}
	if p.ApprovedOnly == nil || *p.ApprovedOnly {
		t.Errorf("approved_only = %v", p.ApprovedOnly)
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/mvp/sprint3/songs/42/play", nil))
	if srv.songID != 42 {
		t.Errorf("song_id = %d", srv.songID)
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/songs?limit=many", nil))
	if paramErr == nil || !strings.Contains(paramErr.Error(), "limit") {
		t.Errorf("ошибка параметра = %v", paramErr)
	}
}

// TestHandlerWithOptions_MatchesContract сверяет маршруты роутера с операциями
// openapi.yaml: расхождение значит, что server.go не перегенерирован.
func TestHandlerWithOptions_MatchesContract(t *testing.T) {
	swagger, err := GetSwagger()
	if err != nil {
		t.Fatalf("GetSwagger: %v", err)
	}
	var want []string
	for path, item := range swagger.Paths.Map() {
		for method := range item.Operations() {
			want = append(want, method+" "+path)
		}
	}

	router := chi.NewRouter()
	HandlerWithOptions(&recordingServer{}, ChiServerOptions{BaseRouter: router})
	var got []string
	err = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		got = append(got, method+" "+route)
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk: %v", err)
	}

	slices.Sort(want)
	slices.Sort(got)
	for _, op := range want {
		if !slices.Contains(got, op) {
			t.Errorf("операция %s не зарегистрирована в роутере", op)
		}
	}
	for _, op := range got {
		if !slices.Contains(want, op) {
			t.Errorf("маршрут %s отсутствует в контракте", op)
		}
	}
}
