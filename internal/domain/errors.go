package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrNotAuthenticated la sesión Odoo no existe o fue rechazada.
	ErrNotAuthenticated = errors.New("sesión ERP no autenticada")
	// ErrNotFound recurso no encontrado (trabajo de carga, registro, índice).
	ErrNotFound = errors.New("recurso no encontrado")
	// ErrInvalidInput entrada inválida del usuario o del front-end.
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrNoSelection no hay pedido o línea seleccionada para imprimir.
	ErrNoSelection = errors.New("ningún registro seleccionado")
	// ErrMissingInvoice el pedido no tiene factura vinculada (etiqueta de pedido).
	ErrMissingInvoice = errors.New("el pedido no tiene factura vinculada")
	// ErrInvalidQuantity el texto de cantidad no es un entero no negativo.
	ErrInvalidQuantity = errors.New("cantidad no numérica")
	// ErrBadCredential credencial rechazada por el servicio remoto (HTTP 403).
	ErrBadCredential = errors.New("credencial rechazada")
	// ErrJobRunning el trabajo de carga todavía no terminó.
	ErrJobRunning = errors.New("la carga de datos sigue en curso")
)
