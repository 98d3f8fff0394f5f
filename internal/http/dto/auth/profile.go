package auth

import "time"

// ProfileResponse es la fila almacenada tal cual.
type ProfileResponse struct {
	AuthUID   string     `json:"auth_uid"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
