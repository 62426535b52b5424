package domain

import (
	"errors"
	"fmt"
)

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
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// ValidationError entrada malformada: justificación vacía, comentario de
// rechazo vacío, cantidad no positiva, umbrales invertidos.
// Unwrap devuelve ErrInvalidInput para que los handlers mapeen con errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError la cantidad solicitada supera el disponible.
// Lleva el producto ofensor y la cantidad disponible al momento de validar.
type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: solicitado %d, disponible %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidTransitionError transición no legal desde el estado actual.
type InvalidTransitionError struct {
	Current   string
	Attempted string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición inválida: %s desde estado %s", e.Attempted, e.Current)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrConflict }

// PermissionError el actor no tiene autoridad para la operación solicitada.
type PermissionError struct {
	Actor    string
	Required string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permiso denegado para %s: se requiere %s", e.Actor, e.Required)
}

func (e *PermissionError) Unwrap() error { return ErrForbidden }
