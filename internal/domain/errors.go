package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Documentos y SISGEN.
	ErrMissingData       = errors.New("faltan datos para completar la operación")
	ErrTemplateNotFound  = errors.New("plantilla no encontrada")
	ErrSISGENRejected    = errors.New("SISGEN observó el documento")
	ErrSISGENUnavailable = errors.New("SISGEN no disponible")
)
