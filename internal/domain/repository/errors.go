package repository

import "errors"

// ErrNotFound es la causa que los adapters envuelven en platform.NotFound
// cuando la fila no existe (ej: update de un perfil ausente).
var ErrNotFound = errors.New("not found")
