package pets

import "time"

// Pet pertenece a exactamente un cliente. Sus reservas le pertenecen a ese
// cliente de forma transitiva.
type Pet struct {
	ID       string
	ClientID string

	TypeID string // p.ej. dog, cat (código opaco)
	SizeID string // p.ej. S, M, L (código opaco)

	Name  string
	Breed string
	Year  *int // año de nacimiento, opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}
