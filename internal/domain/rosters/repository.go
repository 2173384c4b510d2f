package rosters

import (
	"context"

	"pet-spa-booking/internal/domain/schedule"
)

// Store: RosterOn devuelve apperr.ErrNotFound si el empleado no tiene roster ese día.
type Store interface {
	GetByID(ctx context.Context, id string) (Roster, error)
	RosterOn(ctx context.Context, employeeID string, d schedule.Date) (string, error)
	Create(ctx context.Context, r Roster) error
	Update(ctx context.Context, r Roster) error
	Delete(ctx context.Context, id string) error
}

// Filter: Date nil lista todo, ordenado por fecha.
type Filter struct {
	Date *schedule.Date
}

// Repository: Create/Update devuelven apperr.ErrConflict si se viola
// UNIQUE(employee_id, date).
type Repository interface {
	Store
	List(ctx context.Context, f Filter) ([]Roster, error)
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
