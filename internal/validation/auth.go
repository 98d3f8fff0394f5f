package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hiredvalley/hired-backend/internal/domain/repository"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidRole   = errors.New("invalid role")
)

// MissingFieldsError lista los campos requeridos ausentes, en orden de declaración.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool { return target == ErrMissingFields }

// SignupInput es el payload crudo del signup.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  *string
	Role      string
}

// Signup es el resultado normalizado.
type Signup struct {
	Email    string
	Password string
	Fields   repository.ProfileFields
}

// LoginInput es el payload crudo del login.
type LoginInput struct {
	Email    string
	Password string
}

// NormalizeEmail trim + lowercase.
func NormalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// NormalizeSignup exige email, password, first_name y role. last_name ausente
// queda en "". El password nunca se modifica.
func NormalizeSignup(in SignupInput) (Signup, error) {
	email := NormalizeEmail(in.Email)
	first := strings.TrimSpace(in.FirstName)
	roleRaw := strings.TrimSpace(in.Role)

	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if first == "" {
		missing = append(missing, "first_name")
	}
	if roleRaw == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return Signup{}, &MissingFieldsError{Fields: missing}
	}

	role, ok := repository.ParseRole(roleRaw)
	if !ok {
		return Signup{}, fmt.Errorf("%w: %q", ErrInvalidRole, roleRaw)
	}

	last := ""
	if in.LastName != nil {
		last = strings.TrimSpace(*in.LastName)
	}

	return Signup{
		Email:    email,
		Password: in.Password,
		Fields: repository.ProfileFields{
			FirstName: first,
			LastName:  last,
			Role:      role,
		},
	}, nil
}

// NormalizeLogin exige email y password.
func NormalizeLogin(in LoginInput) (LoginInput, error) {
	out := LoginInput{Email: NormalizeEmail(in.Email), Password: in.Password}

	var missing []string
	if out.Email == "" {
		missing = append(missing, "email")
	}
	if out.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return LoginInput{}, &MissingFieldsError{Fields: missing}
	}
	return out, nil
}
