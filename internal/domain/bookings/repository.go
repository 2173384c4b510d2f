package bookings

import (
	"context"

	"pet-spa-booking/internal/domain/schedule"
)

// Store son las operaciones que corren dentro de una transacción.
// BookingAt devuelve apperr.ErrNotFound si el slot está libre.
type Store interface {
	GetByID(ctx context.Context, id string) (Booking, error)
	BookingAt(ctx context.Context, petID string, d schedule.Date, at schedule.TimeOfDay) (string, error)
	Create(ctx context.Context, b Booking) error
	Update(ctx context.Context, b Booking) error
	Delete(ctx context.Context, id string) error
}

// Filter vacío lista todo.
type Filter struct {
	Status Status
}

// Repository: Create/Update deben devolver apperr.ErrConflict si se viola
// UNIQUE(pet_id, date, time).
type Repository interface {
	Store
	List(ctx context.Context, f Filter) ([]Booking, error)
	// WithinTx ejecuta fn atómicamente: chequeo de choque + escritura.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
