package memory

import (
	"context"
	"sort"
	"sync"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/clients"
)

type clientRepo struct {
	mu   sync.RWMutex
	byID map[string]clients.Client

	onDelete func(id string) // cascada, corre fuera del lock
}

func NewClientRepo() clients.Repository {
	return &clientRepo{
		byID: make(map[string]clients.Client),
	}
}

func (r *clientRepo) Create(ctx context.Context, c clients.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		return apperr.Validation("client id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return apperr.Conflict("client already exists")
	}
	if r.phoneTaken(c.Phone, c.ID) {
		return apperr.Conflict("phone already registered")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *clientRepo) Update(ctx context.Context, c clients.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return apperr.NotFound("client not found")
	}
	if r.phoneTaken(c.Phone, c.ID) {
		return apperr.Conflict("phone already registered")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, id string) error {
	if err := r.remove(id); err != nil {
		return err
	}
	if r.onDelete != nil {
		r.onDelete(id)
	}
	return nil
}

func (r *clientRepo) remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return apperr.NotFound("client not found")
	}
	delete(r.byID, id)
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return clients.Client{}, apperr.NotFound("client not found")
	}
	return c, nil
}

func (r *clientRepo) GetByPhone(ctx context.Context, phone string) (clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byID {
		if c.Phone == phone {
			return c, nil
		}
	}
	return clients.Client{}, apperr.NotFound("client not found")
}

func (r *clientRepo) List(ctx context.Context) ([]clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clients.Client, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// phoneTaken: requiere el lock tomado.
func (r *clientRepo) phoneTaken(phone, exceptID string) bool {
	for _, c := range r.byID {
		if c.Phone == phone && c.ID != exceptID {
			return true
		}
	}
	return false
}
