package employees

import "time"

// Employee es el staff de la spa. IsAdmin da privilegios de administración.
// PasswordHash nunca sale por la API.
type Employee struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	IsAdmin   bool

	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}
