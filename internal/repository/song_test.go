package repository

import (
	"strings"
	"testing"
)

// --- Тесты buildSongWhere ---

func TestBuildSongWhere_Empty(t *testing.T) {
	where, args := buildSongWhere(SongFilters{}, 1)

	if where != "" {
		t.Errorf("where = %q, ожидалась пустая строка", where)
	}
	if len(args) != 0 {
		t.Errorf("args count = %d, ожидался 0", len(args))
	}
}

func TestBuildSongWhere_ApprovedOnly(t *testing.T) {
	creator := int64(7)
	// VisibleTo игнорируется, если запрошены только одобренные
	where, args := buildSongWhere(SongFilters{ApprovedOnly: true, VisibleTo: &creator}, 1)

	if where != "WHERE s.is_approved = true" {
		t.Errorf("where = %q", where)
	}
	if len(args) != 0 {
		t.Errorf("args count = %d, ожидался 0", len(args))
	}
}

func TestBuildSongWhere_VisibleTo(t *testing.T) {
	creator := int64(7)
	where, args := buildSongWhere(SongFilters{VisibleTo: &creator}, 1)

	if !strings.Contains(where, "(s.is_approved = true OR s.creator_id = $1)") {
		t.Errorf("where = %q", where)
	}
	if len(args) != 1 || args[0] != int64(7) {
		t.Errorf("args = %v, ожидался [7]", args)
	}
}

func TestBuildSongWhere_SearchEscaping(t *testing.T) {
	search := `  100%_Hit\ `
	where, args := buildSongWhere(SongFilters{ApprovedOnly: true, Search: &search}, 1)

	if !strings.Contains(where, `LOWER(s.title) LIKE $1 ESCAPE '\'`) ||
		!strings.Contains(where, `LOWER(s.artist) LIKE $1 ESCAPE '\'`) {
		t.Errorf("where = %q, ожидался поиск по title и artist с одним параметром", where)
	}
	if len(args) != 1 {
		t.Fatalf("args count = %d, ожидался 1", len(args))
	}
	if args[0] != `%100\%\_hit\\%` {
		t.Errorf("args[0] = %v", args[0])
	}
}

func TestBuildSongWhere_BlankSearchIgnored(t *testing.T) {
	search := "   "
	where, args := buildSongWhere(SongFilters{Search: &search}, 1)
	if where != "" || len(args) != 0 {
		t.Errorf("пустой поиск не должен добавлять условие: %q %v", where, args)
	}
}

func TestBuildSongWhere_MultipleFilters(t *testing.T) {
	creator := int64(3)
	album := int64(11)
	search := "rock"
	filters := SongFilters{VisibleTo: &creator, AlbumID: &album, Search: &search}

	where, args := buildSongWhere(filters, 1)

	if strings.Count(where, " AND ") != 2 {
		t.Errorf("where = %q, ожидалось 3 условия через AND", where)
	}
	for _, want := range []string{"$1", "s.album_id = $2", "LIKE $3"} {
		if !strings.Contains(where, want) {
			t.Errorf("where = %q, ожидалось %q", where, want)
		}
	}
	if len(args) != 3 {
		t.Errorf("args count = %d, ожидался 3", len(args))
	}
}

func TestBuildSongWhere_StartArgOffset(t *testing.T) {
	album := int64(1)
	where, _ := buildSongWhere(SongFilters{AlbumID: &album}, 4)
	if !strings.Contains(where, "$4") {
		t.Errorf("where = %q, ожидался $4", where)
	}
}

// --- Тесты buildSongOrderBy ---

func TestBuildSongOrderBy(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "ORDER BY s.play_count DESC, s.id ASC"},
		{"play_count", "ORDER BY s.play_count DESC, s.id ASC"},
		{"created_at", "ORDER BY s.created_at DESC, s.id DESC"},
		{"title", `ORDER BY s.title COLLATE "C" ASC, s.id ASC`},
		{"id; DROP TABLE songs", "ORDER BY s.play_count DESC, s.id ASC"},
	}
	for _, tt := range tests {
		if got := buildSongOrderBy(tt.in); got != tt.want {
			t.Errorf("buildSongOrderBy(%q) = %q, ожидалось %q", tt.in, got, tt.want)
		}
	}
}

func TestValidSongOrder(t *testing.T) {
	for _, ok := range []string{"", "play_count", "created_at", "title"} {
		if !ValidSongOrder(ok) {
			t.Errorf("ValidSongOrder(%q) = false", ok)
		}
	}
	for _, bad := range []string{"duration", "PLAY_COUNT", "title desc"} {
		if ValidSongOrder(bad) {
			t.Errorf("ValidSongOrder(%q) = true", bad)
		}
	}
}

func TestLikePattern(t *testing.T) {
	tests := map[string]string{
		"Rock":  "%rock%",
		"50%":   `%50\%%`,
		"a_b":   `%a\_b%`,
		`c:\x`:  `%c:\\x%`,
		"Ärzte": "%ärzte%",
	}
	for in, want := range tests {
		if got := likePattern(in); got != want {
			t.Errorf("likePattern(%q) = %q, ожидалось %q", in, got, want)
		}
	}
}
