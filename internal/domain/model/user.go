// Пакет model — доменные модели P-Music.
package model

import (
	"time"

	"github.com/Andert51/P-Music-td/internal/domain/rbac"
)

// User — учётная запись пользователя (таблица users).
type User struct {
	// ID — идентификатор (BIGSERIAL)
	ID int64
	// Email — уникальный адрес, используется для входа
	Email string
	// Username — уникальное имя (3..50 символов)
	Username string
	// HashedPassword — bcrypt-хэш пароля; открытый пароль не хранится
	HashedPassword string
	// FullName — отображаемое имя (опционально)
	FullName *string
	// Role — роль, определяющая права на загрузку и модерацию
	Role rbac.Role
	// IsActive — неактивный пользователь не проходит аутентификацию
	IsActive bool
	// AvatarURL — веб-путь к аватару (/uploads/avatars/...)
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
