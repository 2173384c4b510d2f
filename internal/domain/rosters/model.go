package rosters

import (
	"time"

	"pet-spa-booking/internal/domain/schedule"
)

// Roster asigna un empleado a un día. Un empleado no puede estar dos veces el mismo día.
type Roster struct {
	ID         string
	EmployeeID string
	Date       schedule.Date

	CreatedAt time.Time
	UpdatedAt time.Time
}
