package repository

import (
	"context"

	"github.com/eymenelneccar/ewf/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Search filtra por nombre/teléfono/email; término vacío lista todo.
// El orden lo decide el store (created_at DESC), la vista no reordena.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Search(ctx context.Context, term string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
}
