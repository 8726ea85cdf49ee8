package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotAuthenticated       = errors.New("no autenticado")
	ErrOrganizationNotFound   = errors.New("organización no encontrada")
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEquipmentUnavailable   = errors.New("equipo no disponible")
	ErrAlreadyReturned        = errors.New("el alquiler ya fue devuelto")
	ErrMaintenanceNotRequired = errors.New("la inspección no requiere mantenimiento")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
)

// NotFoundError indica que una entidad no existe o pertenece a otra organización.
// Ambos casos son indistinguibles para el llamador.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado", e.Entity)
}

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound construye el error para la entidad indicada (ej. "equipo", "alquiler").
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// EquipmentUnavailableError lleva el estado actual del equipo en el mensaje.
type EquipmentUnavailableError struct {
	Status string
}

func (e *EquipmentUnavailableError) Error() string {
	return fmt.Sprintf("equipo no disponible: estado actual %s", e.Status)
}

func (e *EquipmentUnavailableError) Is(target error) bool { return target == ErrEquipmentUnavailable }

// EquipmentUnavailable construye el error con el estado actual.
func EquipmentUnavailable(status string) error {
	return &EquipmentUnavailableError{Status: status}
}

// Invalid envuelve ErrInvalidInput con un detalle legible.
func Invalid(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, detail)
}
