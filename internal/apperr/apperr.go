// Package apperr define la taxonomía de errores del núcleo de reservas.
//
// Los servicios devuelven *Error con un Code; los handlers lo traducen a HTTP
// con Code.HTTPStatus(). La comparación se hace por código:
//
//	if errors.Is(err, apperr.ErrConflict) { ... }
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeNotFound     Code = "NOT_FOUND"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeInvalidSlot  Code = "INVALID_SLOT"
	CodeConflict     Code = "CONFLICT"
	CodeValidation   Code = "VALIDATION"
	CodeInternal     Code = "INTERNAL"
)

func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeInvalidSlot, CodeValidation:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SlotReason detalla por qué un slot fue rechazado.
type SlotReason string

const (
	ReasonPastDate             SlotReason = "past_date"
	ReasonPastTime             SlotReason = "past_time"
	ReasonOutsideBusinessHours SlotReason = "outside_business_hours"
)

type Error struct {
	Code    Code
	Message string
	Reason  SlotReason        // solo para CodeInvalidSlot
	Details map[string]string // campo -> mensaje, para CodeValidation
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is compara por código, así errors.Is(err, ErrNotFound) funciona con
// cualquier mensaje.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Reason:  e.Reason,
		Details: e.Details,
		cause:   err,
	}
}

var (
	ErrNotFound     = &Error{Code: CodeNotFound, Message: "not found"}
	ErrUnauthorized = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrInvalidSlot  = &Error{Code: CodeInvalidSlot, Message: "invalid slot"}
	ErrConflict     = &Error{Code: CodeConflict, Message: "conflict"}
	ErrValidation   = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal     = &Error{Code: CodeInternal, Message: "internal error"}
)

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

func ValidationWithDetails(msg string, details map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

func InvalidSlot(reason SlotReason) *Error {
	return &Error{
		Code:    CodeInvalidSlot,
		Message: "invalid slot: " + string(reason),
		Reason:  reason,
	}
}

// CodeOf devuelve el código del error, o CodeInternal si no es un *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// ReasonOf devuelve el motivo de un InvalidSlot.
func ReasonOf(err error) (SlotReason, bool) {
	var e *Error
	if errors.As(err, &e) && e.Code == CodeInvalidSlot {
		return e.Reason, true
	}
	return "", false
}
