// Package platform envuelve el identity+storage platform hosteado detrás de
// una fachada con errores tipados.
//
// Los adapters (gotrue, postgrest, memory, store/pg) clasifican cada falla en
// un Kind cerrado al momento de producirla, a partir de status HTTP, códigos de
// error del platform o SQLSTATE. Nadie aguas arriba inspecciona mensajes.
package platform

import (
	"errors"
	"fmt"
)

// Kind es la clasificación de una falla del platform.
type Kind uint8

const (
	// KindInternal: cualquier falla no clasificada (red, 5xx, payload inesperado).
	KindInternal Kind = iota
	// KindConflict: identidad o perfil ya existente, unique o FK violation.
	KindConflict
	// KindUnauthorized: credenciales inválidas.
	KindUnauthorized
	// KindNotFound: el recurso no existe donde era requerido.
	KindNotFound
	// KindInvalidToken: token malformado, vencido o revocado.
	KindInvalidToken
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindInvalidToken:
		return "invalid_token"
	default:
		return "internal"
	}
}

// Error es la falla tipada que devuelven los adapters.
type Error struct {
	Kind Kind
	Op   string // ej: "gotrue.signup", "pg.insert_profile"
	// Code es el código crudo del upstream (error_code, SQLSTATE), solo para logs.
	Code string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.Code != "" {
		msg += " [" + e.Code + "]"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf es total: un error que no es *Error se clasifica como KindInternal.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}

// Is permite errors.Is(err, platform.ErrConflict) y similares.
func (e *Error) Is(target error) bool {
	t, ok := target.(kindSentinel)
	return ok && Kind(t) == e.Kind
}

type kindSentinel Kind

func (k kindSentinel) Error() string { return Kind(k).String() }

// Sentinels para comparar con errors.Is.
var (
	ErrInternal     error = kindSentinel(KindInternal)
	ErrConflict     error = kindSentinel(KindConflict)
	ErrUnauthorized error = kindSentinel(KindUnauthorized)
	ErrNotFound     error = kindSentinel(KindNotFound)
	ErrInvalidToken error = kindSentinel(KindInvalidToken)
)

func newErr(k Kind, op, code string, err error) *Error {
	return &Error{Kind: k, Op: op, Code: code, Err: err}
}

func Internal(op string, err error) *Error     { return newErr(KindInternal, op, "", err) }
func Conflict(op string, err error) *Error     { return newErr(KindConflict, op, "", err) }
func Unauthorized(op string, err error) *Error { return newErr(KindUnauthorized, op, "", err) }
func NotFound(op string, err error) *Error     { return newErr(KindNotFound, op, "", err) }
func InvalidToken(op string, err error) *Error { return newErr(KindInvalidToken, op, "", err) }

// WithCode devuelve una copia con el código crudo del upstream.
func (e *Error) WithCode(code string) *Error {
	c := *e
	c.Code = code
	return &c
}

// Errorf es un atajo para Internal con mensaje formateado.
func Errorf(op, format string, args ...any) *Error {
	return Internal(op, fmt.Errorf(format, args...))
}
