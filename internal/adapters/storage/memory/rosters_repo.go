package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/domain/rosters"
	"pet-spa-booking/internal/domain/schedule"
)

type rosterRepo struct {
	mu   sync.RWMutex
	byID map[string]rosters.Roster
}

func NewRosterRepo() rosters.Repository {
	return &rosterRepo{
		byID: make(map[string]rosters.Roster),
	}
}

func (r *rosterRepo) WithinTx(ctx context.Context, fn func(tx rosters.Store) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := maps.Clone(r.byID)
	if err := fn(rosterTx{byID: r.byID}); err != nil {
		r.byID = snapshot
		return err
	}
	return nil
}

func (r *rosterRepo) GetByID(ctx context.Context, id string) (rosters.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return rosterTx{byID: r.byID}.GetByID(ctx, id)
}

func (r *rosterRepo) RosterOn(ctx context.Context, employeeID string, d schedule.Date) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return rosterTx{byID: r.byID}.RosterOn(ctx, employeeID, d)
}

func (r *rosterRepo) Create(ctx context.Context, ro rosters.Roster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rosterTx{byID: r.byID}.Create(ctx, ro)
}

func (r *rosterRepo) Update(ctx context.Context, ro rosters.Roster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rosterTx{byID: r.byID}.Update(ctx, ro)
}

func (r *rosterRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return rosterTx{byID: r.byID}.Delete(ctx, id)
}

// List ordena por fecha y luego por empleado.
func (r *rosterRepo) List(ctx context.Context, f rosters.Filter) ([]rosters.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rosters.Roster, 0)
	for _, ro := range r.byID {
		if f.Date != nil && ro.Date != *f.Date {
			continue
		}
		out = append(out, ro)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

type rosterTx struct {
	byID map[string]rosters.Roster
}

func (t rosterTx) GetByID(ctx context.Context, id string) (rosters.Roster, error) {
	ro, ok := t.byID[id]
	if !ok {
		return rosters.Roster{}, apperr.NotFound("roster not found")
	}
	return ro, nil
}

func (t rosterTx) RosterOn(ctx context.Context, employeeID string, d schedule.Date) (string, error) {
	for _, ro := range t.byID {
		if ro.EmployeeID == employeeID && ro.Date == d {
			return ro.ID, nil
		}
	}
	return "", apperr.ErrNotFound
}

func (t rosterTx) Create(ctx context.Context, ro rosters.Roster) error {
	if ro.ID == "" {
		return apperr.Validation("roster id required")
	}
	if _, exists := t.byID[ro.ID]; exists {
		return apperr.Conflict("roster already exists")
	}
	if t.dayTaken(ro) {
		return apperr.Conflict("employee is already rostered for this date")
	}
	t.byID[ro.ID] = ro
	return nil
}

func (t rosterTx) Update(ctx context.Context, ro rosters.Roster) error {
	if _, exists := t.byID[ro.ID]; !exists {
		return apperr.NotFound("roster not found")
	}
	if t.dayTaken(ro) {
		return apperr.Conflict("employee is already rostered for this date")
	}
	t.byID[ro.ID] = ro
	return nil
}

func (t rosterTx) Delete(ctx context.Context, id string) error {
	if _, exists := t.byID[id]; !exists {
		return apperr.NotFound("roster not found")
	}
	delete(t.byID, id)
	return nil
}

// dayTaken replica UNIQUE(employee_id, date).
func (t rosterTx) dayTaken(ro rosters.Roster) bool {
	for _, o := range t.byID {
		if o.ID != ro.ID && o.EmployeeID == ro.EmployeeID && o.Date == ro.Date {
			return true
		}
	}
	return false
}
