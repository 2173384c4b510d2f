package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pet-spa-booking/internal/domain/clients"
)

type clientRow struct {
	ID        string `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Phone     string `db:"phone"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (r clientRow) toDomain() (clients.Client, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return clients.Client{}, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return clients.Client{}, err
	}
	return clients.Client{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

const clientColumns = `id, first_name, last_name, phone, created_at, updated_at`

type ClientRepo struct {
	db *sqlx.DB
}

func NewClientRepo(db *sqlx.DB) *ClientRepo {
	return &ClientRepo{db: db}
}

func (r *ClientRepo) Create(ctx context.Context, c clients.Client) error {
	q := r.db.Rebind(`INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q, c.ID, c.FirstName, c.LastName, c.Phone, formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	return mapErr(err, "client")
}

func (r *ClientRepo) Update(ctx context.Context, c clients.Client) error {
	q := r.db.Rebind(`UPDATE clients SET first_name = ?, last_name = ?, phone = ?, updated_at = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName, c.Phone, formatTime(c.UpdatedAt), c.ID)
	if err != nil {
		return mapErr(err, "client")
	}
	return mustAffect(res, "client")
}

// Delete arrastra mascotas y reservas (ON DELETE CASCADE).
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM clients WHERE id = ?`), id)
	if err != nil {
		return mapDeleteErr(err, "client")
	}
	return mustAffect(res, "client")
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
}

func (r *ClientRepo) GetByPhone(ctx context.Context, phone string) (clients.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE phone = ?`, phone)
}

func (r *ClientRepo) List(ctx context.Context) ([]clients.Client, error) {
	var rows []clientRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, `SELECT `+clientColumns+` FROM clients ORDER BY created_at, id`); err != nil {
		return nil, mapErr(err, "client")
	}
	out := make([]clients.Client, 0, len(rows))
	for _, row := range rows {
		c, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *ClientRepo) getOne(ctx context.Context, query string, args ...any) (clients.Client, error) {
	var row clientRow
	if err := sqlx.GetContext(ctx, r.db, &row, r.db.Rebind(query), args...); err != nil {
		return clients.Client{}, mapErr(err, "client")
	}
	return row.toDomain()
}
