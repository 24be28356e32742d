package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrLocalNotFound      = errors.New("local no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrLookupFailed       = errors.New("no se pudo consultar el almacén")
	ErrPartialMutation    = errors.New("la operación quedó incompleta")
	ErrLocalInUse         = errors.New("el local está en uso")
)

// LookupError fallo del almacén al responder una lectura necesaria para una decisión.
// Nunca debe confundirse con "sin locales" o "sin rol".
type LookupError struct {
	Op  string
	Err error
}

// NewLookupError envuelve err como fallo de consulta de la operación op.
func NewLookupError(op string, err error) *LookupError {
	return &LookupError{Op: op, Err: err}
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrLookupFailed.Error(), e.Op, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrLookupFailed).
func (e *LookupError) Is(target error) bool { return target == ErrLookupFailed }

// PartialMutationError una mutación de varios pasos falló después de confirmar algunos.
// Los pasos confirmados no se deshacen; reintentar la operación completa converge
// porque cada paso es idempotente.
type PartialMutationError struct {
	Operation string
	Step      string
	Completed []string
	Err       error
}

func (e *PartialMutationError) Error() string {
	done := "ninguno"
	if len(e.Completed) > 0 {
		done = strings.Join(e.Completed, ", ")
	}
	return fmt.Sprintf("%s: %s falló en %q (completados: %s): %v",
		ErrPartialMutation.Error(), e.Operation, e.Step, done, e.Err)
}

func (e *PartialMutationError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrPartialMutation).
func (e *PartialMutationError) Is(target error) bool { return target == ErrPartialMutation }

// Razones por las que un local no puede eliminarse.
const (
	ReasonAssignedToUsers       = "ASSIGNED_TO_USERS"
	ReasonInReceptionData       = "IN_RECEPTION_DATA"
	ReasonInCompletedReceptions = "IN_COMPLETED_RECEPTIONS"
)

// LocalInUseError bloqueo de eliminación de un local referenciado.
type LocalInUseError struct {
	Local  string
	Reason string
}

func (e *LocalInUseError) Error() string {
	return fmt.Sprintf("%s: %q %s", ErrLocalInUse.Error(), e.Local, ReasonMessage(e.Reason))
}

// Is permite errors.Is(err, ErrLocalInUse).
func (e *LocalInUseError) Is(target error) bool { return target == ErrLocalInUse }

// ReasonMessage texto legible de una razón de bloqueo.
func ReasonMessage(reason string) string {
	switch reason {
	case ReasonAssignedToUsers:
		return "está asignado a usuarios"
	case ReasonInReceptionData:
		return "está en uso en datos de recepción"
	case ReasonInCompletedReceptions:
		return "está en uso en recepciones completadas"
	default:
		return reason
	}
}
