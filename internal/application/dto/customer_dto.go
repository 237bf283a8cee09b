package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/eymenelneccar/ewf/internal/domain/entity"
)

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// UpdateCustomerRequest entrada para actualizar un cliente.
type UpdateCustomerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	IsActive *bool  `json:"is_active"`
}

// CustomerResponse salida de un cliente. TotalDebt se serializa como string
// decimal ("5200.00") o null cuando no hay deuda registrada.
type CustomerResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone,omitempty"`
	Email     string           `json:"email,omitempty"`
	Address   string           `json:"address,omitempty"`
	IsActive  bool             `json:"is_active"`
	TotalDebt *decimal.Decimal `json:"total_debt"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ToCustomerResponse mapea la entidad al DTO de salida.
func ToCustomerResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	out := &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.TotalDebt.Valid {
		d := c.TotalDebt.Decimal
		out.TotalDebt = &d
	}
	return out
}

// CreateTransactionRequest entrada para registrar un movimiento de cuenta.
type CreateTransactionRequest struct {
	Kind   string          `json:"kind"` // debt | payment
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

// TransactionResponse salida de un movimiento de cuenta.
type TransactionResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToTransactionResponse mapea la entidad al DTO de salida.
func ToTransactionResponse(tx *entity.Transaction) *TransactionResponse {
	if tx == nil {
		return nil
	}
	return &TransactionResponse{
		ID:         tx.ID,
		CustomerID: tx.CustomerID,
		Kind:       tx.Kind,
		Amount:     tx.Amount,
		Note:       tx.Note,
		CreatedAt:  tx.CreatedAt,
	}
}
