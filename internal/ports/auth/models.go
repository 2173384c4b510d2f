package auth

// Claims representa la información extraída del token ya verificado.
type Claims struct {
	Subject         string
	Email           string
	Role            string // admin, employee, client
	OwnedResourceID string // id de cliente o de empleado según el rol
}
