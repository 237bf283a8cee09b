package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del back-office.
// TotalDebt es la deuda pendiente calculada desde sus movimientos (cargos
// menos abonos); NullDecimal inválido significa "sin deuda registrada".
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	IsActive  bool
	TotalDebt decimal.NullDecimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
