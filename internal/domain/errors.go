package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrValidation     = errors.New("datos inválidos")
	ErrDuplicateName  = errors.New("el nombre ya está registrado")
	ErrMalformedInput = errors.New("entrada mal formada")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
)
