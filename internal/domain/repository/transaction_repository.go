package repository

import (
	"context"

	"github.com/eymenelneccar/ewf/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para los
// movimientos de cuenta (historial del cliente).
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Transaction, error)
}
