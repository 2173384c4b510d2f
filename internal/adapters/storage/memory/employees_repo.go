package memory

import (
	"context"
	"sort"
	"sync"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/employees"
)

type employeeRepo struct {
	mu   sync.RWMutex
	byID map[string]employees.Employee

	onDelete func(id string) // cascada, corre fuera del lock
}

func NewEmployeeRepo() employees.Repository {
	return &employeeRepo{
		byID: make(map[string]employees.Employee),
	}
}

func (r *employeeRepo) Create(ctx context.Context, e employees.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return apperr.Validation("employee id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return apperr.Conflict("employee already exists")
	}
	if err := r.checkUnique(e); err != nil {
		return err
	}
	r.byID[e.ID] = e
	return nil
}

func (r *employeeRepo) Update(ctx context.Context, e employees.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; !exists {
		return apperr.NotFound("employee not found")
	}
	if err := r.checkUnique(e); err != nil {
		return err
	}
	r.byID[e.ID] = e
	return nil
}

func (r *employeeRepo) Delete(ctx context.Context, id string) error {
	if err := r.remove(id); err != nil {
		return err
	}
	if r.onDelete != nil {
		r.onDelete(id)
	}
	return nil
}

func (r *employeeRepo) remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return apperr.NotFound("employee not found")
	}
	delete(r.byID, id)
	return nil
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (employees.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return employees.Employee{}, apperr.NotFound("employee not found")
	}
	return e, nil
}

func (r *employeeRepo) GetByEmail(ctx context.Context, email string) (employees.Employee, error) {
	return r.find(func(e employees.Employee) bool { return e.Email == email })
}

func (r *employeeRepo) GetByPhone(ctx context.Context, phone string) (employees.Employee, error) {
	return r.find(func(e employees.Employee) bool { return e.Phone == phone })
}

func (r *employeeRepo) List(ctx context.Context) ([]employees.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]employees.Employee, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *employeeRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID), nil
}

func (r *employeeRepo) find(match func(employees.Employee) bool) (employees.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.byID {
		if match(e) {
			return e, nil
		}
	}
	return employees.Employee{}, apperr.NotFound("employee not found")
}

// checkUnique: requiere el lock tomado.
func (r *employeeRepo) checkUnique(e employees.Employee) error {
	for _, o := range r.byID {
		if o.ID == e.ID {
			continue
		}
		if o.Email == e.Email {
			return apperr.Conflict("email already registered")
		}
		if o.Phone == e.Phone {
			return apperr.Conflict("phone already registered")
		}
	}
	return nil
}
