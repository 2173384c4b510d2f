// Package patch modela campos de un PATCH con tres estados: no enviado,
// enviado como null y enviado con valor. Un valor "falsy" (0, "", false)
// enviado explícitamente cuenta como enviado.
package patch

import (
	"bytes"
	"encoding/json"
)

type Field[T any] struct {
	Set   bool // el campo vino en el body
	Null  bool // vino como null
	Value T
}

func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON solo se invoca cuando la clave está presente.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(b, &f.Value)
}

// Apply copia el valor sobre dst si el campo fue enviado. null deja el valor cero.
func (f Field[T]) Apply(dst *T) bool {
	if !f.Set {
		return false
	}
	*dst = f.Value
	return true
}

// ApplyPtr aplica sobre un destino nullable: null limpia, valor asigna.
func (f Field[T]) ApplyPtr(dst **T) bool {
	if !f.Set {
		return false
	}
	if f.Null {
		*dst = nil
		return true
	}
	v := f.Value
	*dst = &v
	return true
}

// Nulled es true si el campo vino explícitamente como null.
func (f Field[T]) Nulled() bool {
	return f.Set && f.Null
}
