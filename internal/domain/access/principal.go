package access

import (
	"strings"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/ports/auth"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

// Principal es el actor autenticado de un request. Inmutable durante el request.
type Principal struct {
	ID              string
	Role            Role
	OwnedResourceID string // cliente o empleado que el principal "es"
}

func (p Principal) IsStaff() bool {
	return p.Role == RoleEmployee || p.Role == RoleAdmin
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// ResolvePrincipal mapea claims verificados a un Principal. No aplica reglas de negocio.
func ResolvePrincipal(c auth.Claims) (Principal, error) {
	sub := strings.TrimSpace(c.Subject)
	if sub == "" {
		return Principal{}, apperr.Unauthorized("missing subject")
	}

	owned := strings.TrimSpace(c.OwnedResourceID)

	switch Role(strings.ToLower(strings.TrimSpace(c.Role))) {
	case RoleAdmin:
		return Principal{ID: sub, Role: RoleAdmin, OwnedResourceID: orDefault(owned, sub)}, nil
	case RoleEmployee:
		return Principal{ID: sub, Role: RoleEmployee, OwnedResourceID: orDefault(owned, sub)}, nil
	case RoleClient:
		// Un cliente sin id de cliente no puede ser dueño de nada.
		if owned == "" {
			return Principal{}, apperr.Unauthorized("client principal without client id")
		}
		return Principal{ID: sub, Role: RoleClient, OwnedResourceID: owned}, nil
	default:
		return Principal{}, apperr.Unauthorized("unknown role")
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
