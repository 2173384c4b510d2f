package clients

import "context"

// Repository devuelve apperr.ErrNotFound / apperr.ErrConflict (teléfono duplicado).
type Repository interface {
	Create(ctx context.Context, c Client) error
	Update(ctx context.Context, c Client) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Client, error)
	GetByPhone(ctx context.Context, phone string) (Client, error)
	List(ctx context.Context) ([]Client, error)
}
