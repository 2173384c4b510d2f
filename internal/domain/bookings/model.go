package bookings

import (
	"strings"
	"time"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/schedule"
)

// Status es un valor libre dentro del conjunto; no hay grafo de transiciones.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In-progress"
	StatusCompleted  Status = "Completed"
)

var statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// ParseStatus acepta el valor sin importar mayúsculas ("in-progress" -> In-progress).
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", apperr.ValidationWithDetails("validation failed", map[string]string{
		"status": "must be one of: Pending In-progress Completed",
	})
}

func (s Status) Valid() bool {
	for _, st := range statuses {
		if s == st {
			return true
		}
	}
	return false
}

// Booking: una mascota no puede tener dos reservas en el mismo (fecha, hora).
type Booking struct {
	ID         string
	PetID      string
	EmployeeID *string // opcional
	ServiceID  string

	Date   schedule.Date
	Time   schedule.TimeOfDay
	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
