package employees

import "context"

// Repository devuelve apperr.ErrNotFound / apperr.ErrConflict (email o teléfono duplicado).
type Repository interface {
	Create(ctx context.Context, e Employee) error
	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	GetByPhone(ctx context.Context, phone string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Count(ctx context.Context) (int, error)
}
