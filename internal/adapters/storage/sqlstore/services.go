package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pet-spa-booking/internal/domain/catalog"
)

type serviceRow struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	DurationHours float64 `db:"duration_hours"`
	PriceCents    int64   `db:"price_cents"`
}

func (r serviceRow) toDomain() catalog.Service {
	return catalog.Service(r)
}

const serviceColumns = `id, name, duration_hours, price_cents`

type ServiceRepo struct {
	db *sqlx.DB
}

func NewServiceRepo(db *sqlx.DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

func (r *ServiceRepo) Create(ctx context.Context, s catalog.Service) error {
	q := r.db.Rebind(`INSERT INTO services (` + serviceColumns + `) VALUES (?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q, s.ID, s.Name, s.DurationHours, s.PriceCents)
	return mapErr(err, "service")
}

func (r *ServiceRepo) Update(ctx context.Context, s catalog.Service) error {
	q := r.db.Rebind(`UPDATE services SET name = ?, duration_hours = ?, price_cents = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, s.Name, s.DurationHours, s.PriceCents, s.ID)
	if err != nil {
		return mapErr(err, "service")
	}
	return mustAffect(res, "service")
}

// Delete devuelve Conflict si alguna reserva todavía usa el servicio.
func (r *ServiceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM services WHERE id = ?`), id)
	if err != nil {
		return mapDeleteErr(err, "service")
	}
	return mustAffect(res, "service")
}

func (r *ServiceRepo) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	var row serviceRow
	q := r.db.Rebind(`SELECT ` + serviceColumns + ` FROM services WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.db, &row, q, id); err != nil {
		return catalog.Service{}, mapErr(err, "service")
	}
	return row.toDomain(), nil
}

func (r *ServiceRepo) List(ctx context.Context) ([]catalog.Service, error) {
	var rows []serviceRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, `SELECT `+serviceColumns+` FROM services ORDER BY name`); err != nil {
		return nil, mapErr(err, "service")
	}
	out := make([]catalog.Service, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
