package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// Ciclo de vida de la factura.
	ErrAlreadyIssued   = errors.New("la factura ya fue emitida")
	ErrAlreadyPrepared = errors.New("la factura ya está preparada")
	ErrNotPrepared     = errors.New("la factura no está preparada")
	ErrLocked          = errors.New("la factura está bloqueada")

	// ErrInvalidBackup: etiqueta de aplicación o versión de esquema no reconocida.
	ErrInvalidBackup = errors.New("copia de seguridad inválida")
)
