package repository

import (
	"context"
	"strings"
	"time"
)

// Role es el rol de aplicación del usuario.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// ParseRole normaliza (trim + lower) y valida el rol.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleCandidate, RoleRecruiter:
		return r, true
	default:
		return "", false
	}
}

// Profile es la fila de la relación `users`, una por identidad.
// AuthUID referencia a Identity.ID (FK en el platform).
type Profile struct {
	AuthUID   string     `json:"auth_uid"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      Role       `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// ProfileFields son las columnas actualizables de un perfil.
type ProfileFields struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// ProfileRepository es el contrato de la relación `users` keyed por auth_uid.
type ProfileRepository interface {
	// Exists informa si hay perfil para authUID.
	Exists(ctx context.Context, authUID string) (bool, error)

	// Insert crea el perfil. Conflict si ya existe (unique) o si la
	// identidad no existe todavía (FK).
	Insert(ctx context.Context, p Profile) error

	// Update reemplaza first_name, last_name y role.
	Update(ctx context.Context, authUID string, f ProfileFields) error

	// Get devuelve found=false (sin error) si no hay perfil.
	Get(ctx context.Context, authUID string) (p *Profile, found bool, err error)
}
