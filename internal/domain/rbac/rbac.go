// Пакет rbac — роли пользователей P-Music и единая проверка возможностей.
// Роли упорядочены по возрастанию привилегий: user < premium < creator < admin.
// Каталог и загрузка проверяют права только через Can.
package rbac

import (
	"errors"
	"fmt"
	"strings"
)

// Role — роль пользователя.
type Role string

// Роли в порядке возрастания привилегий.
const (
	RoleUser    Role = "user"
	RolePremium Role = "premium"
	RoleCreator Role = "creator"
	RoleAdmin   Role = "admin"
)

// ErrInvalidRole — строка не является допустимой ролью.
var ErrInvalidRole = errors.New("некорректная роль: допустимые значения — user, premium, creator, admin")

// roleWeight — вес роли для сравнения.
var roleWeight = map[Role]int{
	RoleUser:    1,
	RolePremium: 2,
	RoleCreator: 3,
	RoleAdmin:   4,
}

// Capability — действие, требующее минимальной роли.
type Capability int

const (
	// CapPremiumContent — доступ к premium-возможностям.
	CapPremiumContent Capability = iota + 1
	// CapUpload — загрузка песен и альбомов, создание записей каталога.
	CapUpload
	// CapModerate — одобрение контента, удаление чужих файлов и песен.
	CapModerate
)

// minRole — минимальная роль для каждой возможности.
var minRole = map[Capability]Role{
	CapPremiumContent: RolePremium,
	CapUpload:         RoleCreator,
	CapModerate:       RoleAdmin,
}

func (c Capability) String() string {
	switch c {
	case CapPremiumContent:
		return "premium"
	case CapUpload:
		return "upload"
	case CapModerate:
		return "moderate"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

// ParseRole разбирает строку роли (без учёта регистра и пробелов).
// Пустая строка означает роль по умолчанию — user.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleUser, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// Valid проверяет, является ли значение допустимой ролью.
func (r Role) Valid() bool {
	_, ok := roleWeight[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// Can — единственная проверка прав: есть ли у роли указанная возможность.
// Недопустимая роль не имеет никаких возможностей.
func Can(r Role, c Capability) bool {
	need, ok := minRole[c]
	if !ok || !r.Valid() {
		return false
	}
	return roleWeight[r] >= roleWeight[need]
}

// AutoApproves сообщает, публикуется ли контент, созданный через каталог
// пользователем с этой ролью, без модерации.
func AutoApproves(r Role) bool {
	return Can(r, CapUpload)
}

// CanManage — может ли пользователь изменять ресурс владельца ownerID:
// владелец всегда может, остальные — только с CapModerate.
func CanManage(r Role, userID, ownerID int64) bool {
	return userID == ownerID || Can(r, CapModerate)
}

// All возвращает все роли в порядке возрастания привилегий.
func All() []Role {
	return []Role{RoleUser, RolePremium, RoleCreator, RoleAdmin}
}
