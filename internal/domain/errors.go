package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrStoreNotFound  = errors.New("tienda no encontrada")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrForbidden      = errors.New("acceso denegado")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrSessionExpired = errors.New("sesión de marketing expirada")
)
