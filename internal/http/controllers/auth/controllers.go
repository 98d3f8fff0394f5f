// Package auth contiene los controllers de /api/v1/auth.
package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	httperrors "github.com/hiredvalley/hired-backend/internal/http/errors"
	svc "github.com/hiredvalley/hired-backend/internal/http/services/auth"
)

const maxBodySize = 64 * 1024 // 64KB

// Controllers agrupa todos los controllers del dominio auth.
type Controllers struct {
	Signup    *SignupController
	Login     *LoginController
	Protected *ProtectedController
	Profile   *ProfileController
}

// NewControllers crea el agregador de controllers auth.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Signup:    NewSignupController(s.Signup),
		Login:     NewLoginController(s.Login),
		Protected: NewProtectedController(s.Token),
		Profile:   NewProfileController(s.Profile),
	}
}

// readJSON decodifica un único objeto JSON con límite de tamaño. Campos
// desconocidos se ignoran. Devuelve false si ya escribió el error.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			httperrors.WriteError(w, httperrors.ErrBodyTooLarge)
			return false
		}
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return false
	}
	// Datos extra después del objeto
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return false
	}
	return true
}
