package access

import (
	"fmt"

	"pet-spa-booking/internal/apperr"
)

type Action string

const (
	ActionReadOne  Action = "read_one"
	ActionReadMany Action = "read_many"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

type Resource string

const (
	ResourceBooking  Resource = "booking"
	ResourceRoster   Resource = "roster"
	ResourcePet      Resource = "pet"
	ResourceClient   Resource = "client"
	ResourceUser     Resource = "user"
	ResourceEmployee Resource = "employee"
	ResourceService  Resource = "service"
)

// Facts son los hechos de ownership ya resueltos por el módulo dueño del recurso.
// La guardia no consulta storage.
type Facts struct {
	// Cliente dueño: del pet, del booking (vía pet) o la propia cuenta de cliente.
	OwnerClientID string
	// Empleado objetivo (registro de empleado).
	EmployeeID string

	// Cambios sensibles dentro de un Update.
	ChangesAdminFlag bool // el request trae is_admin
	ReassignsPet     bool // booking.pet_id cambia
	ReassignsOwner   bool // pet.client_id cambia
}

type Request struct {
	Resource Resource
	Action   Action
	Facts    Facts
}

type effect int

const (
	deny effect = iota
	allow
)

type condition func(p Principal, f Facts) bool

type rule struct {
	resource Resource
	actions  []Action
	when     condition
	effect   effect
}

var allActions = []Action{ActionReadOne, ActionReadMany, ActionCreate, ActionUpdate, ActionDelete}

// policy es la tabla de decisión. Gana la primera regla cuyo recurso, acción
// y condición coinciden; sin coincidencia se deniega.
var policy = []rule{
	// Employee
	{ResourceEmployee, []Action{ActionUpdate}, allOf(admin, changesAdminFlag), allow},
	{ResourceEmployee, []Action{ActionUpdate}, changesAdminFlag, deny},
	{ResourceEmployee, []Action{ActionCreate, ActionDelete}, admin, allow},
	{ResourceEmployee, []Action{ActionReadOne, ActionUpdate}, anyOf(admin, selfEmployee), allow},
	{ResourceEmployee, []Action{ActionReadMany}, staff, allow},

	// Booking
	{ResourceBooking, []Action{ActionReadMany}, staff, allow},
	{ResourceBooking, []Action{ActionCreate}, anyOf(staff, ownsClient), allow},
	{ResourceBooking, []Action{ActionUpdate}, allOf(staff, reassignsPet), allow},
	{ResourceBooking, []Action{ActionUpdate}, reassignsPet, deny},
	{ResourceBooking, []Action{ActionReadOne, ActionUpdate, ActionDelete}, anyOf(staff, ownsClient), allow},

	// Roster
	{ResourceRoster, allActions, staff, allow},

	// Pet
	{ResourcePet, []Action{ActionCreate}, anyOf(staff, ownsClient), allow},
	{ResourcePet, []Action{ActionUpdate}, allOf(staff, reassignsOwner), allow},
	{ResourcePet, []Action{ActionUpdate}, reassignsOwner, deny},
	{ResourcePet, []Action{ActionReadOne, ActionUpdate, ActionDelete}, anyOf(staff, ownsClient), allow},
	{ResourcePet, []Action{ActionReadMany}, staff, allow},

	// Client / User
	{ResourceClient, []Action{ActionCreate, ActionReadMany}, staff, allow},
	{ResourceClient, []Action{ActionReadOne, ActionUpdate, ActionDelete}, anyOf(staff, ownsClient), allow},
	{ResourceUser, []Action{ActionReadMany}, staff, allow},
	{ResourceUser, []Action{ActionReadOne}, anyOf(staff, ownsClient), allow},

	// Catálogo de servicios
	{ResourceService, []Action{ActionReadOne, ActionReadMany}, anyone, allow},
	{ResourceService, []Action{ActionCreate, ActionUpdate, ActionDelete}, admin, allow},
}

// Authorize decide Allow (nil) o Deny (apperr Unauthorized).
func Authorize(p Principal, req Request) error {
	for _, r := range policy {
		if r.resource != req.Resource || !r.covers(req.Action) {
			continue
		}
		if !r.when(p, req.Facts) {
			continue
		}
		if r.effect == allow {
			return nil
		}
		break
	}
	return apperr.Unauthorized(fmt.Sprintf("%s may not %s %s", roleLabel(p), req.Action, req.Resource))
}

func (r rule) covers(a Action) bool {
	for _, x := range r.actions {
		if x == a {
			return true
		}
	}
	return false
}

func roleLabel(p Principal) string {
	if p.Role == "" {
		return "anonymous"
	}
	return string(p.Role)
}

// condiciones

func anyone(p Principal, _ Facts) bool { return p.Role != "" }

func staff(p Principal, _ Facts) bool { return p.IsStaff() }

func admin(p Principal, _ Facts) bool { return p.IsAdmin() }

func ownsClient(p Principal, f Facts) bool {
	return p.Role == RoleClient && p.OwnedResourceID != "" && p.OwnedResourceID == f.OwnerClientID
}

func selfEmployee(p Principal, f Facts) bool {
	return p.IsStaff() && p.OwnedResourceID != "" && p.OwnedResourceID == f.EmployeeID
}

func changesAdminFlag(_ Principal, f Facts) bool { return f.ChangesAdminFlag }

func reassignsPet(_ Principal, f Facts) bool { return f.ReassignsPet }

func reassignsOwner(_ Principal, f Facts) bool { return f.ReassignsOwner }

func allOf(cs ...condition) condition {
	return func(p Principal, f Facts) bool {
		for _, c := range cs {
			if !c(p, f) {
				return false
			}
		}
		return true
	}
}

func anyOf(cs ...condition) condition {
	return func(p Principal, f Facts) bool {
		for _, c := range cs {
			if c(p, f) {
				return true
			}
		}
		return false
	}
}
