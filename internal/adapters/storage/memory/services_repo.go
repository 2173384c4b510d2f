package memory

import (
	"context"
	"sort"
	"sync"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/catalog"
)

type serviceRepo struct {
	mu   sync.RWMutex
	byID map[string]catalog.Service

	inUse func(id string) bool // ON DELETE RESTRICT desde bookings
}

func NewServiceRepo() catalog.Repository {
	return &serviceRepo{
		byID: make(map[string]catalog.Service),
	}
}

func (r *serviceRepo) Create(ctx context.Context, s catalog.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		return apperr.Validation("service id required")
	}
	if _, exists := r.byID[s.ID]; exists {
		return apperr.Conflict("service already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *serviceRepo) Update(ctx context.Context, s catalog.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; !exists {
		return apperr.NotFound("service not found")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *serviceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return apperr.NotFound("service not found")
	}
	if r.inUse != nil && r.inUse(id) {
		return apperr.Conflict("service is still referenced")
	}
	delete(r.byID, id)
	return nil
}

func (r *serviceRepo) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return catalog.Service{}, apperr.NotFound("service not found")
	}
	return s, nil
}

// List ordena por nombre.
func (r *serviceRepo) List(ctx context.Context) ([]catalog.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Service, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}
