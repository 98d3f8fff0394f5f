package postgrest

import (
	"github.com/hiredvalley/hired-backend/internal/platform"
	"github.com/hiredvalley/hired-backend/internal/platform/rest"
)

// SQLSTATE y códigos propios de la data API.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
	codeNoRows              = "PGRST116"
)

// classify usa el campo code del body (SQLSTATE o PGRST*). El status HTTP no
// alcanza: la data API devuelve 409 tanto para unique como para FK.
func classify(op string, resp *rest.Response) *platform.Error {
	ae := resp.APIError()
	code := ae.CodeString()

	k := platform.KindInternal
	switch code {
	case codeUniqueViolation, codeForeignKeyViolation:
		// FK: la identidad todavía no es visible para el perfil (carrera de signup).
		k = platform.KindConflict
	case codeNoRows, codeInvalidText:
		// auth_uid que no parsea como uuid no puede existir.
		k = platform.KindNotFound
	}
	return &platform.Error{Kind: k, Op: op, Code: code, Err: ae}
}
