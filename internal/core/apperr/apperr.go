package apperr

import "errors"

// Sentinel errors shared by all services. Operations wrap these with the
// operation-specific message so callers can branch with errors.Is.
var (
	ErrValidation   = errors.New("entrada inválida")
	ErrNotFound     = errors.New("registro não encontrado")
	ErrUnauthorized = errors.New("não autorizado")
	ErrConflict     = errors.New("registro já existe")
	ErrDatastore    = errors.New("falha no datastore")
)
