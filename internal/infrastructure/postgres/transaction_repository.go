package postgres

import (
	"context"
	"fmt"

	"github.com/eymenelneccar/ewf/internal/domain/entity"
	"github.com/eymenelneccar/ewf/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste un movimiento de cuenta.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, customer_id, kind, amount, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, tx.ID, tx.CustomerID, tx.Kind, tx.Amount, tx.Note, tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByCustomer lista los movimientos de un cliente, el más reciente primero.
func (r *TransactionRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT id, customer_id, kind, amount, note, created_at
		FROM transactions WHERE customer_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var tx entity.Transaction
		if err := rows.Scan(&tx.ID, &tx.CustomerID, &tx.Kind, &tx.Amount, &tx.Note, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &tx)
	}
	return list, rows.Err()
}
