package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnsupportedTable   = errors.New("tabla no soportada")
	ErrUnknownResource    = errors.New("recurso ERPNext no soportado")
	ErrNoData             = errors.New("No data found")
	ErrUpstream           = errors.New("error en ERPNext")
	ErrUpstreamAuth       = errors.New("ERPNext rechazó las credenciales")
)
