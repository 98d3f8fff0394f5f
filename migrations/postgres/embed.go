// Package migrations embebe las migraciones SQL (formato goose) de la relación users.
package migrations

import "embed"

// FS contiene las migraciones. Dir es el directorio dentro de FS.
//
//go:embed sql/*.sql
var FS embed.FS

const Dir = "sql"
