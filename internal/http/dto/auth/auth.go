// Package auth contiene los DTOs de las rutas /api/v1/auth.
package auth

// SignupRequest es el body de POST /signup. LastName es puntero para distinguir
// ausente de vacío.
type SignupRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      string  `json:"role"`
}

// SignupResponse 201.
type SignupResponse struct {
	Message string `json:"message"`
	AuthUID string `json:"auth_uid"`
}

// SignupResult es lo que devuelve el service.
type SignupResult struct {
	AuthUID string
	// Created indica si el perfil se insertó (false = se actualizó uno existente).
	Created bool
}

// LoginRequest es el body de POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser es el bloque "user" del login.
type LoginUser struct {
	AuthUID   string `json:"auth_uid"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Email     string `json:"email"`
}

// LoginResponse 200.
type LoginResponse struct {
	Message     string    `json:"message"`
	AccessToken string    `json:"access_token"`
	User        LoginUser `json:"user"`
}

// LoginResult es lo que devuelve el service.
type LoginResult struct {
	AccessToken string
	User        LoginUser
}

// ProtectedResponse 200 de GET /protected.
type ProtectedResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
}

// TokenResult es la identidad resuelta desde un bearer token.
type TokenResult struct {
	UserID string
	Email  string
}
