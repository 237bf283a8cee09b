// Package debt clasifica la deuda pendiente de un cliente para la vista de
// listado. La clasificación es una función pura sobre el monto; la UI solo
// decide cómo pintar cada severidad.
package debt

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Severity es la severidad de la deuda pendiente de un cliente.
type Severity int

const (
	// SeverityNone sin deuda: no se muestra ningún indicador.
	SeverityNone Severity = iota
	// SeverityWarning deuda positiva por debajo del límite: énfasis suave.
	SeverityWarning
	// SeverityCritical deuda en o por encima del límite: énfasis bloqueante
	// con nota de exceso.
	SeverityCritical
)

// CriticalThreshold es el límite de deuda crítica. Regla de negocio: la
// frontera es inclusiva (una deuda de exactamente 5000 ya es crítica).
var CriticalThreshold = decimal.NewFromInt(5000)

// String devuelve el nombre de la severidad.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "none"
	}
}

// Classify clasifica un monto de deuda:
//
//	d >= 5000     -> SeverityCritical
//	0 < d < 5000  -> SeverityWarning
//	d <= 0        -> SeverityNone
func Classify(d decimal.Decimal) Severity {
	if d.GreaterThanOrEqual(CriticalThreshold) {
		return SeverityCritical
	}
	if d.IsPositive() {
		return SeverityWarning
	}
	return SeverityNone
}

// ClassifyNull clasifica un monto opcional. Monto ausente -> SeverityNone.
func ClassifyNull(d decimal.NullDecimal) Severity {
	if !d.Valid {
		return SeverityNone
	}
	return Classify(d.Decimal)
}

// ParseRaw interpreta el campo total_debt tal como llega del API: número
// JSON, string numérico o null. Cualquier valor no interpretable se trata
// como "sin deuda" en vez de romper el decode del listado completo.
func ParseRaw(raw json.RawMessage) decimal.NullDecimal {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return decimal.NullDecimal{}
	}
	s := string(trimmed)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// FormatAmount formatea un monto con dos decimales fijos ("5200.00").
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
