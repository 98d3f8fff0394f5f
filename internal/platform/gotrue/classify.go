package gotrue

import (
	"net/http"

	"github.com/hiredvalley/hired-backend/internal/platform"
	"github.com/hiredvalley/hired-backend/internal/platform/rest"
)

// kindByCode mapea los error_code documentados de la auth API.
var kindByCode = map[string]platform.Kind{
	"user_already_exists":     platform.KindConflict,
	"email_exists":            platform.KindConflict,
	"identity_already_exists": platform.KindConflict,
	"phone_exists":            platform.KindConflict,

	"invalid_credentials": platform.KindUnauthorized,
	"invalid_grant":       platform.KindUnauthorized, // formato viejo (error=invalid_grant)
	"email_not_confirmed": platform.KindUnauthorized,
	"user_banned":         platform.KindUnauthorized,

	"user_not_found": platform.KindNotFound,

	"bad_jwt":           platform.KindInvalidToken,
	"no_authorization":  platform.KindInvalidToken,
	"session_not_found": platform.KindInvalidToken,
	"session_expired":   platform.KindInvalidToken,
}

// classify convierte una respuesta no-2xx en *platform.Error usando primero el
// código simbólico y después el status HTTP.
func classify(op string, resp *rest.Response) *platform.Error {
	ae := resp.APIError()
	code := ae.CodeString()

	if k, ok := kindByCode[code]; ok {
		return &platform.Error{Kind: k, Op: op, Code: code, Err: ae}
	}

	var k platform.Kind
	switch resp.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		k = platform.KindUnauthorized
	case http.StatusNotFound:
		k = platform.KindNotFound
	case http.StatusConflict:
		k = platform.KindConflict
	default:
		k = platform.KindInternal
	}
	return &platform.Error{Kind: k, Op: op, Code: code, Err: ae}
}

// classifySignup: las versiones viejas de la auth API responden un email ya
// registrado con 400/422 y {"code":N,"msg":...}, sin código simbólico.
func classifySignup(op string, resp *rest.Response) *platform.Error {
	pe := classify(op, resp)
	if pe.Kind != platform.KindInternal || pe.Code != "" {
		return pe
	}
	switch resp.Status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		pe.Kind = platform.KindConflict
	}
	return pe
}
