package sqlstore

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pet-spa-booking/internal/domain/employees"
)

type employeeRow struct {
	ID           string `db:"id"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	IsAdmin      bool   `db:"is_admin"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    string `db:"created_at"`
	UpdatedAt    string `db:"updated_at"`
}

func (r employeeRow) toDomain() (employees.Employee, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return employees.Employee{}, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return employees.Employee{}, err
	}
	return employees.Employee{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Phone:        r.Phone,
		IsAdmin:      r.IsAdmin,
		PasswordHash: r.PasswordHash,
		CreatedAt:    created,
		UpdatedAt:    updated,
	}, nil
}

const employeeColumns = `id, first_name, last_name, email, phone, is_admin, password_hash, created_at, updated_at`

type EmployeeRepo struct {
	db *sqlx.DB
}

func NewEmployeeRepo(db *sqlx.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

func (r *EmployeeRepo) Create(ctx context.Context, e employees.Employee) error {
	q := r.db.Rebind(`INSERT INTO employees (` + employeeColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.IsAdmin, e.PasswordHash,
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	return mapErr(err, "employee")
}

func (r *EmployeeRepo) Update(ctx context.Context, e employees.Employee) error {
	q := r.db.Rebind(`UPDATE employees SET first_name = ?, last_name = ?, email = ?, phone = ?, is_admin = ?, password_hash = ?, updated_at = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q,
		e.FirstName, e.LastName, e.Email, e.Phone, e.IsAdmin, e.PasswordHash, formatTime(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return mapErr(err, "employee")
	}
	return mustAffect(res, "employee")
}

// Delete: los rosters caen en cascada y las reservas quedan sin empleado.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM employees WHERE id = ?`), id)
	if err != nil {
		return mapDeleteErr(err, "employee")
	}
	return mustAffect(res, "employee")
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (employees.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
}

func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (employees.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = ?`, email)
}

func (r *EmployeeRepo) GetByPhone(ctx context.Context, phone string) (employees.Employee, error) {
	return r.getOne(ctx, `SELECT `+employeeColumns+` FROM employees WHERE phone = ?`, phone)
}

func (r *EmployeeRepo) List(ctx context.Context) ([]employees.Employee, error) {
	var rows []employeeRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at, id`); err != nil {
		return nil, mapErr(err, "employee")
	}
	out := make([]employees.Employee, 0, len(rows))
	for _, row := range rows {
		e, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *EmployeeRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.db, &n, `SELECT COUNT(*) FROM employees`); err != nil {
		return 0, mapErr(err, "employee")
	}
	return n, nil
}

func (r *EmployeeRepo) getOne(ctx context.Context, query string, args ...any) (employees.Employee, error) {
	var row employeeRow
	if err := sqlx.GetContext(ctx, r.db, &row, r.db.Rebind(query), args...); err != nil {
		return employees.Employee{}, mapErr(err, "employee")
	}
	return row.toDomain()
}
