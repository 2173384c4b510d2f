package schedule

import (
	"context"
	"errors"

	"pet-spa-booking/internal/apperr"
)

// BookingSlotFinder busca la reserva que ocupa (pet, fecha, hora).
// Devuelve apperr.ErrNotFound si el slot está libre.
type BookingSlotFinder interface {
	BookingAt(ctx context.Context, petID string, d Date, at TimeOfDay) (string, error)
}

// RosterSlotFinder busca el roster de un empleado en una fecha.
// Devuelve apperr.ErrNotFound si no hay.
type RosterSlotFinder interface {
	RosterOn(ctx context.Context, employeeID string, d Date) (string, error)
}

// BookingConflict informa si otra reserva (distinta de excludingID) ya ocupa
// el mismo pet+fecha+hora. Debe correr dentro de la misma transacción que la
// escritura posterior.
func BookingConflict(ctx context.Context, f BookingSlotFinder, petID string, d Date, at TimeOfDay, excludingID string) (bool, error) {
	id, err := f.BookingAt(ctx, petID, d, at)
	return occupied(id, err, excludingID)
}

// RosterConflict informa si el empleado ya tiene otro roster ese día.
func RosterConflict(ctx context.Context, f RosterSlotFinder, employeeID string, d Date, excludingID string) (bool, error) {
	id, err := f.RosterOn(ctx, employeeID, d)
	return occupied(id, err, excludingID)
}

func occupied(id string, err error, excludingID string) (bool, error) {
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return id != excludingID, nil
}
