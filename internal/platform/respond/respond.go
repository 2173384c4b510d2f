// Package respond centraliza la escritura de respuestas JSON y la traducción
// de errores apperr a HTTP. Antes cada módulo tenía su propio writeJSON.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/platform/logger"
)

const maxBodyBytes = 1 << 20

// ErrorBody es el cuerpo de toda respuesta de error.
type ErrorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error escribe el error con el status de su código. Los 5xx se loguean con
// la causa y no la exponen al cliente.
func Error(w http.ResponseWriter, log logger.Logger, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = apperr.ErrInternal.WithCause(err)
	}

	status := e.Code.HTTPStatus()
	body := ErrorBody{
		Error:   string(e.Code),
		Message: e.Message,
		Reason:  string(e.Reason),
		Details: e.Details,
	}
	if status >= http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", map[string]any{"error": err.Error()})
		}
		body.Message = apperr.ErrInternal.Message
	}

	JSON(w, status, body)
}

// Decode lee un body JSON. Campos desconocidos o JSON inválido son Validation.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("empty body")
		}
		return apperr.Validation(fmt.Sprintf("invalid json: %v", err))
	}
	return nil
}
