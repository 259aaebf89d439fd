// Пакет assetstore — хранение загруженных аудиофайлов и изображений на диске.
// Файлы раскладываются по фиксированным бакетам (songs, covers/songs,
// covers/albums, avatars), получают имя <uuid>.<ext> и веб-путь вида
// /uploads/<bucket>/<uuid>.<ext> с прямыми слэшами на любой ОС.
package assetstore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Bucket — поддиректория хранилища для одной категории файлов.
type Bucket string

// Фиксированные бакеты.
const (
	BucketSongs       Bucket = "songs"
	BucketSongCovers  Bucket = "covers/songs"
	BucketAlbumCovers Bucket = "covers/albums"
	BucketAvatars     Bucket = "avatars"
)

// Buckets — все бакеты, создаваемые при инициализации.
var Buckets = []Bucket{BucketSongs, BucketSongCovers, BucketAlbumCovers, BucketAvatars}

// Valid проверяет, что бакет входит в фиксированный набор.
func (b Bucket) Valid() bool {
	for _, known := range Buckets {
		if b == known {
			return true
		}
	}
	return false
}

// Ошибки хранилища.
var (
	// ErrInvalidType — MIME-тип не входит в список допустимых.
	ErrInvalidType = errors.New("недопустимый тип файла")
	// ErrTooLarge — размер файла превышает лимит.
	ErrTooLarge = errors.New("файл слишком большой")
	// ErrUnreadable — содержимое присланного файла нельзя прочитать.
	ErrUnreadable = errors.New("не удалось прочитать файл")
	// ErrWrite — ошибка записи на диск.
	ErrWrite = errors.New("ошибка записи файла")
	// ErrDelete — ошибка удаления с диска.
	ErrDelete = errors.New("ошибка удаления файла")
	// ErrNotFound — файл отсутствует.
	ErrNotFound = errors.New("файл не найден")
	// ErrInvalidName — имя файла или путь недопустимы.
	ErrInvalidName = errors.New("недопустимое имя файла")
	// ErrUnknownBucket — бакет не входит в фиксированный набор.
	ErrUnknownBucket = errors.New("неизвестный бакет")
)

// Rule — правило валидации: допустимые MIME-типы и максимальный размер.
type Rule struct {
	// Name — человекочитаемое название категории для сообщений об ошибках
	Name         string
	AllowedTypes []string
	MaxSize      int64
}

// Правила для аудио и изображений.
var (
	AudioRule = Rule{
		Name:         "Аудиофайл",
		AllowedTypes: []string{"audio/mpeg", "audio/mp3", "audio/wav", "audio/ogg"},
		MaxSize:      20 << 20,
	}
	ImageRule = Rule{
		Name:         "Изображение",
		AllowedTypes: []string{"image/jpeg", "image/jpg", "image/png", "image/webp"},
		MaxSize:      5 << 20,
	}
)

// File — загружаемый файл. Content должен поддерживать Seek:
// размер определяется без чтения содержимого.
type File struct {
	// Filename — оригинальное имя (используется только расширение)
	Filename string
	// ContentType — заявленный клиентом MIME-тип
	ContentType string
	Content     io.ReadSeeker
}

// StoredFile — результат сохранения файла.
type StoredFile struct {
	Bucket Bucket
	// Name — сгенерированное имя <uuid>.<ext>
	Name string
	// Path — веб-путь /uploads/<bucket>/<name>
	Path string
	// FullPath — абсолютный путь на диске
	FullPath string
	Size     int64
	// Checksum — SHA-256 содержимого
	Checksum string
}

// Store — файловое хранилище. Создаётся один раз при старте процесса
// и передаётся зависимым компонентам.
type Store struct {
	root   string
	prefix string
}

// New создаёт хранилище в rootDir и заранее создаёт все бакеты.
// publicPrefix — веб-префикс путей (обычно /uploads).
func New(rootDir, publicPrefix string) (*Store, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("не удалось определить путь %s: %w", rootDir, err)
	}

	for _, b := range Buckets {
		dir := filepath.Join(abs, filepath.FromSlash(string(b)))
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию %s: %w", dir, err)
		}
	}

	prefix := "/" + strings.Trim(publicPrefix, "/")
	if prefix == "/" {
		prefix = "/uploads"
	}

	return &Store{root: abs, prefix: prefix}, nil
}

// Root возвращает корневую директорию хранилища (для раздачи статики).
func (s *Store) Root() string {
	return s.root
}

// PublicPrefix возвращает веб-префикс путей.
func (s *Store) PublicPrefix() string {
	return s.prefix
}

// CheckReady проверяет, что все директории бакетов на месте.
// Возвращает статус ("ok", "fail") и сообщение для readiness probe.
func (s *Store) CheckReady() (status, message string) {
	for _, b := range Buckets {
		dir := filepath.Join(s.root, filepath.FromSlash(string(b)))
		info, err := os.Stat(dir)
		if err != nil {
			return "fail", fmt.Sprintf("бакет %s недоступен: %v", b, err)
		}
		if !info.IsDir() {
			return "fail", fmt.Sprintf("бакет %s не является директорией", b)
		}
	}
	return "ok", "бакетов: " + strconv.Itoa(len(Buckets))
}

// Validate проверяет MIME-тип (точное совпадение со списком) и размер файла.
// После проверки поток установлен в начало: содержимое не потребляется.
func Validate(f *File, rule Rule) error {
	if f == nil || f.Content == nil {
		return fmt.Errorf("%w: %s не передан", ErrInvalidType, rule.Name)
	}

	mediaType := normalizeContentType(f.ContentType)
	allowed := false
	for _, t := range rule.AllowedTypes {
		if mediaType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s должен быть одного из типов: %s (получен %q)",
			ErrInvalidType, rule.Name, strings.Join(rule.AllowedTypes, ", "), f.ContentType)
	}

	size, err := streamSize(f.Content)
	if err != nil {
		return fmt.Errorf("%w: размер %s не определён: %v", ErrUnreadable, rule.Name, err)
	}
	if size > rule.MaxSize {
		return fmt.Errorf("%w: %s не должен превышать %d MB (получено %d байт)",
			ErrTooLarge, rule.Name, rule.MaxSize>>20, size)
	}
	return nil
}

// Store сохраняет файл в бакет под сгенерированным именем.
//
// Паттерн: temp файл → запись + SHA-256 → fsync → atomic rename.
// При ошибке temp файл удаляется, частично записанный файл не остаётся.
func (s *Store) Store(f *File, bucket Bucket) (*StoredFile, error) {
	if !bucket.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
	}
	if f == nil || f.Content == nil {
		return nil, fmt.Errorf("%w: пустой файл", ErrWrite)
	}
	if _, err := f.Content.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	name := uuid.New().String() + extension(f.Filename)
	fullPath := s.fullPath(bucket, name)
	tmpPath := fullPath + ".tmp"

	out, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return nil, fmt.Errorf("%w: создание временного файла: %v", ErrWrite, err)
	}

	hasher := sha256.New()
	size, err := io.Copy(out, io.TeeReader(f.Content, hasher))
	if err != nil {
		out.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("%w: запись данных: %v", ErrWrite, err)
	}

	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("%w: fsync: %v", ErrWrite, err)
	}

	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("%w: закрытие файла: %v", ErrWrite, err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("%w: атомарное переименование: %v", ErrWrite, err)
	}

	return &StoredFile{
		Bucket:   bucket,
		Name:     name,
		Path:     s.WebPath(bucket, name),
		FullPath: fullPath,
		Size:     size,
		Checksum: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// Delete удаляет файл из бакета. Отсутствующий файл — ошибка ErrNotFound.
func (s *Store) Delete(bucket Bucket, filename string) error {
	if !bucket.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
	}
	if err := checkName(filename); err != nil {
		return err
	}

	fullPath := s.fullPath(bucket, filename)
	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, bucket, filename)
		}
		return fmt.Errorf("%w: %s/%s: %v", ErrDelete, bucket, filename, err)
	}
	return nil
}

// Reset удаляет все файлы из бакетов и пересоздаёт пустые директории.
// Возвращает число удалённых файлов.
func (s *Store) Reset() (int, error) {
	removed := 0
	for _, b := range Buckets {
		dir := filepath.Join(s.root, filepath.FromSlash(string(b)))
		entries, err := os.ReadDir(dir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("%w: %s: %v", ErrDelete, b, err)
		}
		for _, e := range entries {
			if e.Type().IsRegular() {
				removed++
			}
		}
		if err := os.RemoveAll(dir); err != nil {
			return removed, fmt.Errorf("%w: %s: %v", ErrDelete, b, err)
		}
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return removed, fmt.Errorf("%w: %s: %v", ErrWrite, b, err)
		}
	}
	return removed, nil
}

// DeleteByPath удаляет файл по веб-пути (/uploads/<bucket>/<name>).
func (s *Store) DeleteByPath(webPath string) error {
	bucket, name, err := s.ParseWebPath(webPath)
	if err != nil {
		return err
	}
	return s.Delete(bucket, name)
}

// Exists проверяет наличие файла по веб-пути.
func (s *Store) Exists(webPath string) bool {
	bucket, name, err := s.ParseWebPath(webPath)
	if err != nil {
		return false
	}
	info, err := os.Stat(s.fullPath(bucket, name))
	return err == nil && info.Mode().IsRegular()
}

// WebPath формирует веб-путь файла. Всегда использует прямые слэши.
func (s *Store) WebPath(bucket Bucket, name string) string {
	return path.Join(s.prefix, string(bucket), name)
}

// ParseWebPath разбирает веб-путь на бакет и имя файла.
// Обратные слэши (пути из старых записей Windows) приводятся к прямым.
func (s *Store) ParseWebPath(webPath string) (Bucket, string, error) {
	p := strings.ReplaceAll(webPath, `\`, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	rest, ok := strings.CutPrefix(p, s.prefix+"/")
	if !ok {
		return "", "", fmt.Errorf("%w: путь %q вне %s", ErrInvalidName, webPath, s.prefix)
	}

	dir, name := path.Split(rest)
	bucket := Bucket(strings.TrimSuffix(dir, "/"))
	if !bucket.Valid() {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
	}
	if err := checkName(name); err != nil {
		return "", "", err
	}
	return bucket, name, nil
}

// fullPath возвращает путь на диске для файла бакета.
func (s *Store) fullPath(bucket Bucket, name string) string {
	return filepath.Join(s.root, filepath.FromSlash(string(bucket)), name)
}

// checkName запрещает разделители пути и обход директорий.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") ||
		strings.HasSuffix(name, ".tmp") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// normalizeContentType возвращает media type без параметров в нижнем регистре.
func normalizeContentType(ct string) string {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mediaType
}

// extension возвращает расширение исходного имени в нижнем регистре.
// Допускаются только буквы и цифры; иначе — ".bin".
func extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(strings.ReplaceAll(filename, `\`, "/")))
	if len(ext) < 2 || len(ext) > 10 {
		return ".bin"
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ".bin"
		}
	}
	return ext
}

// streamSize определяет размер потока через Seek и возвращает его в начало.
func streamSize(rs io.ReadSeeker) (int64, error) {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return size, nil
}
