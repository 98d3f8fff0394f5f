// Package validation normaliza y valida los payloads de signup/login antes de
// cualquier llamada al platform. Funciones puras, sin efectos.
package validation
