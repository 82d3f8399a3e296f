package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind clasifica los errores de negocio del servicio
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindResourceLimit
	KindNegativeValue
	KindStore
)

// Error es el error estructurado que retornan los services
type Error struct {
	Kind    Kind
	Message string
	Campos  []string // campos que fallaron la validación
	Err     error
}

func (e *Error) Error() string {
	if len(e.Campos) > 0 {
		return fmt.Sprintf("%s (campos: %s)", e.Message, strings.Join(e.Campos, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation crea un error de validación nombrando los campos ofensores
func Validation(message string, campos ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Campos: campos}
}

// NotFound crea un error para referencias que no resuelven
func NotFound(entidad string, id interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %v no encontrado", entidad, id)}
}

// ResourceLimit crea un error por exceder un límite de recursos
func ResourceLimit(message string) *Error {
	return &Error{Kind: KindResourceLimit, Message: message}
}

// NegativeValue crea un error por cantidades o valores negativos
func NegativeValue(campo string) *Error {
	return &Error{Kind: KindNegativeValue, Message: fmt.Sprintf("el campo %s no puede ser negativo", campo), Campos: []string{campo}}
}

// Store envuelve un fallo de la capa de persistencia
func Store(err error) *Error {
	return &Error{Kind: KindStore, Message: "error de persistencia", Err: err}
}

// KindOf extrae el Kind de un error si es un *Error
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

// CamposDe extrae los campos ofensores si el error los trae
func CamposDe(err error) []string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Campos
	}
	return nil
}

// HTTPStatus mapea el error al status code de la respuesta
func HTTPStatus(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case KindValidation, KindResourceLimit, KindNegativeValue:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
