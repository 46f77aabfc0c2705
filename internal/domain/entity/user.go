package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleNotario   = "notario"
	RoleAbogado   = "abogado"
	RoleDigitador = "digitador"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema (personal de la notaría).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, notario, abogado, digitador
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
