package memory

import (
	"pet-spa-booking/internal/domain/bookings"
	"pet-spa-booking/internal/domain/catalog"
	"pet-spa-booking/internal/domain/clients"
	"pet-spa-booking/internal/domain/employees"
	"pet-spa-booking/internal/domain/pets"
	"pet-spa-booking/internal/domain/rosters"
)

// Store agrupa los repos en memoria enlazados con las mismas acciones
// ON DELETE que el esquema SQL:
//   - client -> pets (cascade) -> bookings (cascade)
//   - employee -> rosters (cascade), bookings.employee_id (set null)
//   - service <- bookings (restrict)
//
// Orden de locks: clients, pets, employees y services antes que bookings y
// rosters; los hooks de borrado corren con el lock del padre ya liberado.
type Store struct {
	Clients   clients.Repository
	Pets      pets.Repository
	Employees employees.Repository
	Services  catalog.Repository
	Bookings  bookings.Repository
	Rosters   rosters.Repository
}

func NewStore() *Store {
	b := &bookingRepo{byID: make(map[string]bookings.Booking)}
	ro := &rosterRepo{byID: make(map[string]rosters.Roster)}
	p := &petRepo{byID: make(map[string]pets.Pet)}
	c := &clientRepo{byID: make(map[string]clients.Client)}
	e := &employeeRepo{byID: make(map[string]employees.Employee)}
	s := &serviceRepo{byID: make(map[string]catalog.Service)}

	p.onDelete = func(petID string) {
		b.deleteWhere(func(x bookings.Booking) bool { return x.PetID == petID })
	}
	c.onDelete = func(clientID string) {
		for _, petID := range p.deleteWhere(func(x pets.Pet) bool { return x.ClientID == clientID }) {
			p.onDelete(petID)
		}
	}
	e.onDelete = func(employeeID string) {
		ro.deleteWhere(func(x rosters.Roster) bool { return x.EmployeeID == employeeID })
		b.clearEmployee(employeeID)
	}
	s.inUse = func(serviceID string) bool {
		return b.references(func(x bookings.Booking) bool { return x.ServiceID == serviceID })
	}

	return &Store{
		Clients:   c,
		Pets:      p,
		Employees: e,
		Services:  s,
		Bookings:  b,
		Rosters:   ro,
	}
}

func (r *bookingRepo) deleteWhere(match func(bookings.Booking) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, x := range r.byID {
		if match(x) {
			delete(r.byID, id)
		}
	}
}

func (r *bookingRepo) clearEmployee(employeeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, x := range r.byID {
		if x.EmployeeID != nil && *x.EmployeeID == employeeID {
			x.EmployeeID = nil
			r.byID[id] = x
		}
	}
}

func (r *bookingRepo) references(match func(bookings.Booking) bool) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, x := range r.byID {
		if match(x) {
			return true
		}
	}
	return false
}

func (r *rosterRepo) deleteWhere(match func(rosters.Roster) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, x := range r.byID {
		if match(x) {
			delete(r.byID, id)
		}
	}
}

// deleteWhere devuelve los ids borrados para seguir la cascada.
func (r *petRepo) deleteWhere(match func(pets.Pet) bool) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, x := range r.byID {
		if match(x) {
			delete(r.byID, id)
			ids = append(ids, id)
		}
	}
	return ids
}
