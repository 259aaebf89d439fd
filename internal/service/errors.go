// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/Andert51/P-Music-td/internal/repository"
	"github.com/Andert51/P-Music-td/internal/storage/assetstore"
)

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict — конфликт (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — ресурс уже существует")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
	// ErrUnauthorized — неверные учётные данные или токен.
	ErrUnauthorized = errors.New("требуется аутентификация")
	// ErrForbidden — недостаточно прав.
	ErrForbidden = errors.New("недостаточно прав")
	// ErrInvalidType — недопустимый MIME-тип загружаемого файла.
	ErrInvalidType = errors.New("недопустимый тип файла")
	// ErrTooLarge — файл превышает допустимый размер.
	ErrTooLarge = errors.New("файл слишком большой")
	// ErrStorage — сбой записи или удаления файла.
	ErrStorage = errors.New("ошибка файлового хранилища")
	// ErrFeatureDisabled — функция выключена конфигурацией.
	ErrFeatureDisabled = errors.New("функция отключена")
)

// classifiedError — ошибка нижнего слоя, отнесённая к категории сервиса.
// Текст берётся из исходной ошибки, errors.Is срабатывает для обеих.
type classifiedError struct {
	kind  error
	cause error
}

func (e *classifiedError) Error() string   { return e.cause.Error() }
func (e *classifiedError) Unwrap() []error { return []error{e.kind, e.cause} }

func classify(kind, cause error) error {
	return &classifiedError{kind: kind, cause: cause}
}

// mapRepoError переводит ошибки репозитория в ошибки сервиса.
// what — описание операции для внутренних ошибок.
func mapRepoError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, repository.ErrConflict):
		return classify(ErrConflict, err)
	case errors.Is(err, repository.ErrReference):
		return classify(ErrValidation, err)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

// mapStoreError переводит ошибки файлового хранилища в ошибки сервиса.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assetstore.ErrInvalidType):
		return classify(ErrInvalidType, err)
	case errors.Is(err, assetstore.ErrTooLarge):
		return classify(ErrTooLarge, err)
	case errors.Is(err, assetstore.ErrNotFound):
		return classify(ErrNotFound, err)
	case errors.Is(err, assetstore.ErrInvalidName), errors.Is(err, assetstore.ErrUnknownBucket),
		errors.Is(err, assetstore.ErrUnreadable):
		return classify(ErrValidation, err)
	default:
		return classify(ErrStorage, err)
	}
}

// validationError — ошибка валидации с текстом для клиента.
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// maxColumnInt — верхняя граница колонок INTEGER (duration, track_number).
const maxColumnInt = math.MaxInt32

func checkDuration(d int) error {
	switch {
	case d < 0:
		return validationError("duration не может быть отрицательной")
	case d > maxColumnInt:
		return validationError("duration не должна превышать %d", maxColumnInt)
	}
	return nil
}

func checkTrackNumber(n int) error {
	if n < 1 || n > maxColumnInt {
		return validationError("track_number должен быть в диапазоне 1..%d", maxColumnInt)
	}
	return nil
}
