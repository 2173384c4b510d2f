package clients

import "time"

// Client es el dueño de mascotas. El teléfono es único.
type Client struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
