// static.go — раздача загруженных файлов (аудио, обложки, аватары).
// Поддерживает Range запросы (206) для перемотки в плеере.
package handlers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	apierrors "github.com/Andert51/P-Music-td/internal/api/errors"
)

// StaticHandler отдаёт файлы из корня хранилища.
// Путь запроса задаётся относительно публичного префикса (см. http.StripPrefix).
type StaticHandler struct {
	root   *os.Root
	logger *slog.Logger
}

// NewStaticHandler открывает корень хранилища. Выход за пределы
// корня (../, символические ссылки наружу) отклоняется os.Root.
func NewStaticHandler(rootDir string, logger *slog.Logger) (*StaticHandler, error) {
	root, err := os.OpenRoot(rootDir)
	if err != nil {
		return nil, err
	}
	return &StaticHandler{
		root:   root,
		logger: logger.With(slog.String("component", "static_handler")),
	}, nil
}

// Close освобождает дескриптор корня.
func (h *StaticHandler) Close() error {
	return h.root.Close()
}

// ServeHTTP обрабатывает GET/HEAD /uploads/{bucket}/{filename}.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range")
	w.Header().Set("Accept-Ranges", "bytes")

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		apierrors.WriteError(w, http.StatusMethodNotAllowed, apierrors.CodeValidationError, "Метод не поддерживается")
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" || strings.Contains(name, `\`) {
		apierrors.NotFound(w, "Файл не найден")
		return
	}

	f, err := h.root.Open(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.logger.Debug("Отказ в доступе к файлу",
				slog.String("path", name),
				slog.String("error", err.Error()),
			)
		}
		apierrors.NotFound(w, "Файл не найден")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		apierrors.NotFound(w, "Файл не найден")
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
