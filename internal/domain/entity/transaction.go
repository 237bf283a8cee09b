package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento sobre la cuenta de un cliente.
const (
	TransactionDebt    = "debt"    // cargo: aumenta la deuda
	TransactionPayment = "payment" // abono: reduce la deuda
)

// Transaction es un movimiento en la cuenta corriente de un cliente.
// La deuda pendiente del cliente es SUM(debt) - SUM(payment).
type Transaction struct {
	ID         string
	CustomerID string
	Kind       string // debt | payment
	Amount     decimal.Decimal
	Note       string
	CreatedAt  time.Time
}
