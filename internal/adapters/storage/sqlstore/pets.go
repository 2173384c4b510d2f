package sqlstore

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"pet-spa-booking/internal/domain/pets"
)

type petRow struct {
	ID        string        `db:"id"`
	ClientID  string        `db:"client_id"`
	TypeID    string        `db:"type_id"`
	SizeID    string        `db:"size_id"`
	Name      string        `db:"name"`
	Breed     string        `db:"breed"`
	Year      sql.NullInt64 `db:"year"`
	CreatedAt string        `db:"created_at"`
	UpdatedAt string        `db:"updated_at"`
}

func (r petRow) toDomain() (pets.Pet, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return pets.Pet{}, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return pets.Pet{}, err
	}
	p := pets.Pet{
		ID:        r.ID,
		ClientID:  r.ClientID,
		TypeID:    r.TypeID,
		SizeID:    r.SizeID,
		Name:      r.Name,
		Breed:     r.Breed,
		CreatedAt: created,
		UpdatedAt: updated,
	}
	if r.Year.Valid {
		y := int(r.Year.Int64)
		p.Year = &y
	}
	return p, nil
}

func nullYear(y *int) sql.NullInt64 {
	if y == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*y), Valid: true}
}

const petColumns = `id, client_id, type_id, size_id, name, breed, year, created_at, updated_at`

type PetRepo struct {
	db *sqlx.DB
}

func NewPetRepo(db *sqlx.DB) *PetRepo {
	return &PetRepo{db: db}
}

// Create devuelve NotFound si client_id no existe (FK).
func (r *PetRepo) Create(ctx context.Context, p pets.Pet) error {
	q := r.db.Rebind(`INSERT INTO pets (` + petColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		p.ID, p.ClientID, p.TypeID, p.SizeID, p.Name, p.Breed, nullYear(p.Year),
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	return mapErr(err, "pet")
}

func (r *PetRepo) Update(ctx context.Context, p pets.Pet) error {
	q := r.db.Rebind(`UPDATE pets SET client_id = ?, type_id = ?, size_id = ?, name = ?, breed = ?, year = ?, updated_at = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q,
		p.ClientID, p.TypeID, p.SizeID, p.Name, p.Breed, nullYear(p.Year), formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return mapErr(err, "pet")
	}
	return mustAffect(res, "pet")
}

func (r *PetRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM pets WHERE id = ?`), id)
	if err != nil {
		return mapDeleteErr(err, "pet")
	}
	return mustAffect(res, "pet")
}

func (r *PetRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	var row petRow
	q := r.db.Rebind(`SELECT ` + petColumns + ` FROM pets WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.db, &row, q, id); err != nil {
		return pets.Pet{}, mapErr(err, "pet")
	}
	return row.toDomain()
}

func (r *PetRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.list(ctx, `SELECT `+petColumns+` FROM pets ORDER BY created_at, id`)
}

func (r *PetRepo) ListByClient(ctx context.Context, clientID string) ([]pets.Pet, error) {
	return r.list(ctx, `SELECT `+petColumns+` FROM pets WHERE client_id = ? ORDER BY created_at, id`, clientID)
}

func (r *PetRepo) list(ctx context.Context, query string, args ...any) ([]pets.Pet, error) {
	var rows []petRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, mapErr(err, "pet")
	}
	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
