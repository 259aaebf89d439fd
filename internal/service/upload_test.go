package service

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Andert51/P-Music-td/internal/domain/model"
	"github.com/Andert51/P-Music-td/internal/domain/rbac"
	"github.com/Andert51/P-Music-td/internal/repository"
	"github.com/Andert51/P-Music-td/internal/storage/assetstore"
)

func newUploads(t *testing.T, repos *repository.Repositories, store *assetstore.Store) (*UploadService, *fakeTx) {
	t.Helper()
	tx := &fakeTx{repos: repos}
	return NewUploadService(repos, tx, store, true, 50, testLogger()), tx
}

func file(name, ct string, size int) *assetstore.File {
	return &assetstore.File{Filename: name, ContentType: ct, Content: bytes.NewReader(make([]byte, size))}
}

// unseekable — поток без Seek: размер не определить.
type unseekable struct{ *bytes.Reader }

func (unseekable) Seek(int64, int) (int64, error) { return 0, errors.New("seek не поддерживается") }

func mp3(name string) *assetstore.File { return file(name, "audio/mpeg", 128) }

// countFiles возвращает число файлов в бакете.
func countFiles(t *testing.T, store *assetstore.Store, bucket assetstore.Bucket) int {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(store.Root(), filepath.FromSlash(string(bucket))))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	return len(entries)
}

func TestUploadService_UploadSingle(t *testing.T) {
	store := newTestStore(t)
	var created []*model.Song
	songs := &mockSongRepo{
		createFn: func(_ context.Context, s *model.Song) error {
			s.ID = int64(len(created) + 1)
			created = append(created, s)
			return nil
		},
	}
	svc, _ := newUploads(t, newRepos(nil, songs, nil), store)

	song, err := svc.UploadSingle(context.Background(), user(3, rbac.RoleCreator), SingleUploadParams{
		Title:    "Creep",
		Artist:   "Radiohead",
		Duration: 238,
		Genre:    ptr("rock"),
		Audio:    mp3("creep.MP3"),
		Cover:    file("cover.png", "image/png", 64),
	})
	if err != nil {
		t.Fatalf("UploadSingle ошибка: %v", err)
	}

	if song.IsApproved {
		t.Error("загруженная песня должна ожидать одобрения")
	}
	if song.PlayCount != 0 || song.CreatorID != 3 {
		t.Errorf("song = %+v", song)
	}
	if !store.Exists(song.FilePath) || filepath.Ext(song.FilePath) != ".mp3" {
		t.Errorf("аудиофайл %q не сохранён", song.FilePath)
	}
	if song.CoverURL == nil || !store.Exists(*song.CoverURL) {
		t.Error("обложка не сохранена")
	}
	if bucket, _, _ := store.ParseWebPath(*song.CoverURL); bucket != assetstore.BucketSongCovers {
		t.Errorf("бакет обложки = %q", bucket)
	}
}

func TestUploadService_UploadSingle_Rejects(t *testing.T) {
	creator := user(3, rbac.RoleCreator)

	tests := []struct {
		name    string
		actor   *model.User
		params  SingleUploadParams
		wantErr error
	}{
		{
			name:    "роль premium",
			actor:   user(2, rbac.RolePremium),
			params:  SingleUploadParams{Title: "t", Artist: "a", Audio: mp3("a.mp3")},
			wantErr: ErrForbidden,
		},
		{
			name:    "text/plain",
			actor:   creator,
			params:  SingleUploadParams{Title: "t", Artist: "a", Audio: file("a.txt", "text/plain", 10)},
			wantErr: ErrInvalidType,
		},
		{
			name:    "обложка больше 5 MiB",
			actor:   creator,
			params:  SingleUploadParams{Title: "t", Artist: "a", Audio: mp3("a.mp3"), Cover: file("c.jpg", "image/jpeg", 5<<20+1)},
			wantErr: ErrTooLarge,
		},
		{
			name:    "обложка неверного типа",
			actor:   creator,
			params:  SingleUploadParams{Title: "t", Artist: "a", Audio: mp3("a.mp3"), Cover: file("c.gif", "image/gif", 10)},
			wantErr: ErrInvalidType,
		},
		{
			name:    "нет исполнителя",
			actor:   creator,
			params:  SingleUploadParams{Title: "t", Audio: mp3("a.mp3")},
			wantErr: ErrValidation,
		},
		{
			name:    "duration за пределами INTEGER",
			actor:   creator,
			params:  SingleUploadParams{Title: "t", Artist: "a", Duration: math.MaxInt32 + 1, Audio: mp3("a.mp3")},
			wantErr: ErrValidation,
		},
		{
			name:  "аудио не читается",
			actor: creator,
			params: SingleUploadParams{Title: "t", Artist: "a", Audio: &assetstore.File{
				Filename: "a.mp3", ContentType: "audio/mpeg", Content: unseekable{bytes.NewReader([]byte("x"))},
			}},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			songs := &mockSongRepo{
				createFn: func(_ context.Context, _ *model.Song) error {
					t.Error("песня создана при ошибке валидации")
					return nil
				},
			}
			svc, _ := newUploads(t, newRepos(nil, songs, nil), store)

			_, err := svc.UploadSingle(context.Background(), tt.actor, tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ошибка = %v, ожидалась %v", err, tt.wantErr)
			}
			for _, b := range assetstore.Buckets {
				if n := countFiles(t, store, b); n != 0 {
					t.Errorf("в бакете %s осталось %d файлов", b, n)
				}
			}
		})
	}
}

func TestUploadService_UploadSingle_CleanupOnDBError(t *testing.T) {
	store := newTestStore(t)
	songs := &mockSongRepo{
		createFn: func(_ context.Context, _ *model.Song) error {
			return errors.New("соединение потеряно")
		},
	}
	svc, _ := newUploads(t, newRepos(nil, songs, nil), store)

	_, err := svc.UploadSingle(context.Background(), user(1, rbac.RoleAdmin), SingleUploadParams{
		Title: "t", Artist: "a", Audio: mp3("a.mp3"), Cover: file("c.png", "image/png", 10),
	})
	if err == nil {
		t.Fatal("ожидалась ошибка")
	}
	if n := countFiles(t, store, assetstore.BucketSongs) + countFiles(t, store, assetstore.BucketSongCovers); n != 0 {
		t.Errorf("после отката осталось %d файлов", n)
	}
}

func TestUploadService_Disabled(t *testing.T) {
	repos := newRepos(nil, nil, nil)
	svc := NewUploadService(repos, &fakeTx{repos: repos}, newTestStore(t), false, 50, testLogger())
	ctx := context.Background()
	admin := user(1, rbac.RoleAdmin)

	if svc.Enabled() {
		t.Error("Enabled() = true")
	}
	if _, err := svc.UploadSingle(ctx, admin, SingleUploadParams{}); !errors.Is(err, ErrFeatureDisabled) {
		t.Errorf("UploadSingle: %v", err)
	}
	if _, err := svc.UploadAlbum(ctx, admin, AlbumUploadParams{}); !errors.Is(err, ErrFeatureDisabled) {
		t.Errorf("UploadAlbum: %v", err)
	}
	if _, err := svc.UploadAsset(ctx, admin, AssetAvatar, nil); !errors.Is(err, ErrFeatureDisabled) {
		t.Errorf("UploadAsset: %v", err)
	}
}

func TestUploadService_UploadAlbum(t *testing.T) {
	store := newTestStore(t)
	var (
		album *model.Album
		songs []*model.Song
	)
	albumRepo := &mockAlbumRepo{
		createFn: func(_ context.Context, a *model.Album) error {
			a.ID = 42
			album = a
			return nil
		},
	}
	songRepo := &mockSongRepo{
		createFn: func(_ context.Context, s *model.Song) error {
			s.ID = int64(100 + len(songs))
			songs = append(songs, s)
			return nil
		},
	}
	svc, tx := newUploads(t, newRepos(nil, songRepo, albumRepo), store)

	creator := user(3, rbac.RoleCreator)
	res, err := svc.UploadAlbum(context.Background(), creator, AlbumUploadParams{
		Title:       "In Rainbows",
		ReleaseDate: "2007-10-10",
		SongsData:   `[{"title":"15 Step","artist":"Radiohead","duration":237.6,"track_number":1},{"genre":"rock"}]`,
		Cover:       file("cover.webp", "image/webp", 32),
		AudioFiles:  []*assetstore.File{mp3("1.mp3"), mp3("2.mp3")},
	})
	if err != nil {
		t.Fatalf("UploadAlbum ошибка: %v", err)
	}

	if tx.calls != 1 {
		t.Errorf("транзакций = %d, ожидалась 1", tx.calls)
	}
	if res.Album != album || album.IsApproved {
		t.Errorf("album = %+v", res.Album)
	}
	if album.ReleaseDate == nil || album.ReleaseDate.Format("2006-01-02") != "2007-10-10" {
		t.Errorf("ReleaseDate = %v", album.ReleaseDate)
	}
	if len(res.Songs) != 2 {
		t.Fatalf("песен = %d, ожидалось 2", len(res.Songs))
	}

	first, second := res.Songs[0], res.Songs[1]
	if first.Title != "15 Step" || first.Duration != 237 || *first.TrackNumber != 1 {
		t.Errorf("первый трек = %+v", first)
	}
	// Значения по умолчанию
	if second.Title != "Track 2" || second.Artist != creator.Username || second.Duration != 0 || *second.TrackNumber != 2 {
		t.Errorf("второй трек = %+v", second)
	}
	if second.Genre == nil || *second.Genre != "rock" {
		t.Errorf("genre = %v", second.Genre)
	}
	for _, s := range res.Songs {
		if s.AlbumID == nil || *s.AlbumID != 42 {
			t.Errorf("AlbumID = %v", s.AlbumID)
		}
		if s.CoverURL == nil || album.CoverURL == nil || *s.CoverURL != *album.CoverURL {
			t.Error("песня должна наследовать обложку альбома")
		}
		if s.IsApproved {
			t.Error("песня альбома должна ожидать одобрения")
		}
		if !store.Exists(s.FilePath) {
			t.Errorf("файл %s не сохранён", s.FilePath)
		}
	}
}

func TestUploadService_UploadAlbum_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		params  AlbumUploadParams
		wantErr error
	}{
		{
			name: "3 файла и 2 записи",
			params: AlbumUploadParams{
				Title:      "A",
				SongsData:  `[{"title":"a"},{"title":"b"}]`,
				AudioFiles: []*assetstore.File{mp3("1.mp3"), mp3("2.mp3"), mp3("3.mp3")},
			},
			wantErr: ErrValidation,
		},
		{
			name:    "songs_data не JSON",
			params:  AlbumUploadParams{Title: "A", SongsData: "title=a", AudioFiles: []*assetstore.File{mp3("1.mp3")}},
			wantErr: ErrValidation,
		},
		{
			name:    "пустой альбом",
			params:  AlbumUploadParams{Title: "A", SongsData: "[]"},
			wantErr: ErrValidation,
		},
		{
			name:    "нет названия",
			params:  AlbumUploadParams{SongsData: `[{}]`, AudioFiles: []*assetstore.File{mp3("1.mp3")}},
			wantErr: ErrValidation,
		},
		{
			name:    "duration за пределами INTEGER",
			params:  AlbumUploadParams{Title: "A", SongsData: `[{"duration":1e300}]`, AudioFiles: []*assetstore.File{mp3("1.mp3")}},
			wantErr: ErrValidation,
		},
		{
			name:    "track_number за пределами INTEGER",
			params:  AlbumUploadParams{Title: "A", SongsData: `[{"track_number":3000000000}]`, AudioFiles: []*assetstore.File{mp3("1.mp3")}},
			wantErr: ErrValidation,
		},
		{
			name: "второй файл не аудио",
			params: AlbumUploadParams{
				Title:      "A",
				SongsData:  `[{},{}]`,
				AudioFiles: []*assetstore.File{mp3("1.mp3"), file("2.txt", "text/plain", 5)},
			},
			wantErr: ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			albums := &mockAlbumRepo{
				createFn: func(_ context.Context, _ *model.Album) error {
					t.Error("альбом создан при ошибке валидации")
					return nil
				},
			}
			svc, _ := newUploads(t, newRepos(nil, nil, albums), store)

			_, err := svc.UploadAlbum(context.Background(), user(1, rbac.RoleAdmin), tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ошибка = %v, ожидалась %v", err, tt.wantErr)
			}
			if n := countFiles(t, store, assetstore.BucketSongs); n != 0 {
				t.Errorf("сохранено %d файлов", n)
			}
		})
	}
}

func TestUploadService_UploadAlbum_CleanupOnTrackError(t *testing.T) {
	store := newTestStore(t)
	created := 0
	songs := &mockSongRepo{
		createFn: func(_ context.Context, _ *model.Song) error {
			created++
			if created == 2 {
				return errors.New("ошибка вставки")
			}
			return nil
		},
	}
	albums := &mockAlbumRepo{
		createFn: func(_ context.Context, a *model.Album) error {
			a.ID = 1
			return nil
		},
	}
	svc, _ := newUploads(t, newRepos(nil, songs, albums), store)

	_, err := svc.UploadAlbum(context.Background(), user(3, rbac.RoleCreator), AlbumUploadParams{
		Title:      "A",
		SongsData:  `[{},{},{}]`,
		Cover:      file("c.jpg", "image/jpeg", 10),
		AudioFiles: []*assetstore.File{mp3("1.mp3"), mp3("2.mp3"), mp3("3.mp3")},
	})
	if err == nil {
		t.Fatal("ожидалась ошибка")
	}
	if n := countFiles(t, store, assetstore.BucketSongs) + countFiles(t, store, assetstore.BucketAlbumCovers); n != 0 {
		t.Errorf("после отката осталось %d файлов", n)
	}
}

func TestUploadService_ParseReleaseDate(t *testing.T) {
	svc, _ := newUploads(t, newRepos(nil, nil, nil), newTestStore(t))

	tests := map[string]string{
		"2024-05-01":           "2024-05-01",
		"2024-05-01T10:00:00Z": "2024-05-01",
		"":                     "",
		"01/05/2024":           "",
		"завтра":               "",
	}
	for in, want := range tests {
		got := svc.parseReleaseDate(in)
		switch {
		case want == "" && got != nil:
			t.Errorf("parseReleaseDate(%q) = %v, ожидался nil", in, got)
		case want != "" && (got == nil || got.Format("2006-01-02") != want):
			t.Errorf("parseReleaseDate(%q) = %v, ожидалось %s", in, got, want)
		}
	}
}

func TestUploadService_MyUploads(t *testing.T) {
	songs := &mockSongRepo{
		listByCreatorFn: func(_ context.Context, id int64) ([]*model.Song, error) {
			return []*model.Song{{ID: 1, CreatorID: id, IsApproved: false}}, nil
		},
	}
	albums := &mockAlbumRepo{
		listByCreatorFn: func(_ context.Context, id int64) ([]*model.Album, error) {
			return []*model.Album{{ID: 2, CreatorID: id}}, nil
		},
	}
	svc, _ := newUploads(t, newRepos(nil, songs, albums), newTestStore(t))

	res, err := svc.MyUploads(context.Background(), user(3, rbac.RoleCreator))
	if err != nil {
		t.Fatalf("MyUploads ошибка: %v", err)
	}
	if len(res.Songs) != 1 || len(res.Albums) != 1 {
		t.Errorf("songs=%d albums=%d", len(res.Songs), len(res.Albums))
	}

	if _, err := svc.MyUploads(context.Background(), nil); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("аноним: ошибка = %v", err)
	}
}

func TestUploadService_UploadAsset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("права по типу", func(t *testing.T) {
		svc, _ := newUploads(t, newRepos(nil, nil, nil), store)
		listener := user(5, rbac.RoleUser)

		if _, err := svc.UploadAsset(ctx, listener, AssetSong, mp3("a.mp3")); !errors.Is(err, ErrForbidden) {
			t.Errorf("song от user: %v", err)
		}
		if _, err := svc.UploadAsset(ctx, listener, AssetAlbumCover, file("a.png", "image/png", 4)); !errors.Is(err, ErrForbidden) {
			t.Errorf("album-cover от user: %v", err)
		}
		if _, err := svc.UploadAsset(ctx, listener, AssetKind("video"), mp3("a.mp3")); !errors.Is(err, ErrValidation) {
			t.Errorf("неизвестный тип: %v", err)
		}

		sf, err := svc.UploadAsset(ctx, user(3, rbac.RoleCreator), AssetCover, file("c.jpg", "image/jpeg", 4))
		if err != nil {
			t.Fatalf("cover от creator: %v", err)
		}
		if sf.Bucket != assetstore.BucketSongCovers {
			t.Errorf("Bucket = %q", sf.Bucket)
		}
	})

	t.Run("замена аватара", func(t *testing.T) {
		old := storeFile(t, store, assetstore.BucketAvatars, "old.png", "image/png")
		current := &old
		users := &mockUserRepo{
			updateAvatarFn: func(_ context.Context, _ int64, url *string) (*string, error) {
				prev := current
				current = url
				return prev, nil
			},
		}
		svc, _ := newUploads(t, newRepos(users, nil, nil), store)
		actor := user(5, rbac.RoleUser)
		actor.AvatarURL = &old

		sf, err := svc.UploadAsset(ctx, actor, AssetAvatar, file("me.webp", "image/webp", 16))
		if err != nil {
			t.Fatalf("UploadAsset avatar: %v", err)
		}
		if store.Exists(old) {
			t.Error("старый аватар не удалён")
		}
		if !store.Exists(sf.Path) || current == nil || *current != sf.Path {
			t.Error("новый аватар не сохранён")
		}
		if actor.AvatarURL == nil || *actor.AvatarURL != sf.Path {
			t.Error("AvatarURL пользователя не обновлён")
		}
	})
}

func TestUploadService_DeleteAsset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	users := &mockUserRepo{}
	svc, _ := newUploads(t, newRepos(users, nil, nil), store)
	admin := user(1, rbac.RoleAdmin)

	songPath := storeFile(t, store, assetstore.BucketSongs, "s.mp3", "audio/mpeg")
	_, songName, _ := store.ParseWebPath(songPath)

	if err := svc.DeleteAsset(ctx, admin, "video", songName); !errors.Is(err, ErrValidation) {
		t.Errorf("неизвестный тип: %v", err)
	}
	if err := svc.DeleteAsset(ctx, user(3, rbac.RoleCreator), "song", songName); !errors.Is(err, ErrForbidden) {
		t.Errorf("creator: %v", err)
	}
	if err := svc.DeleteAsset(ctx, admin, "song", songName); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	if store.Exists(songPath) {
		t.Error("файл не удалён")
	}
	if err := svc.DeleteAsset(ctx, admin, "song", songName); !errors.Is(err, ErrNotFound) {
		t.Errorf("повторное удаление: %v, ожидалась ErrNotFound", err)
	}
	if err := svc.DeleteAsset(ctx, admin, "song", "../secret"); !errors.Is(err, ErrValidation) {
		t.Errorf("обход директорий: %v", err)
	}

	// Псевдоним cover указывает на covers/songs
	cover := storeFile(t, store, assetstore.BucketSongCovers, "c.png", "image/png")
	_, coverName, _ := store.ParseWebPath(cover)
	if err := svc.DeleteAsset(ctx, admin, "cover", coverName); err != nil || store.Exists(cover) {
		t.Errorf("cover: %v", err)
	}

	// Собственный аватар удаляется без прав модератора
	avatar := storeFile(t, store, assetstore.BucketAvatars, "me.png", "image/png")
	_, avatarName, _ := store.ParseWebPath(avatar)
	var reset bool
	users.updateAvatarFn = func(_ context.Context, id int64, url *string) (*string, error) {
		reset = id == 7 && url == nil
		return &avatar, nil
	}
	owner := user(7, rbac.RoleUser)
	owner.AvatarURL = &avatar
	if err := svc.DeleteAsset(ctx, user(8, rbac.RoleUser), "avatar", avatarName); !errors.Is(err, ErrForbidden) {
		t.Errorf("чужой аватар: %v", err)
	}
	if err := svc.DeleteAsset(ctx, owner, "avatar", avatarName); err != nil {
		t.Fatalf("свой аватар: %v", err)
	}
	if store.Exists(avatar) || !reset || owner.AvatarURL != nil {
		t.Error("аватар не сброшен")
	}
}
