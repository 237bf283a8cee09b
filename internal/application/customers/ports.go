package customers

import (
	"context"

	"github.com/eymenelneccar/ewf/internal/domain/entity"
)

// ListCache es el cache de consultas del listado, inyectado de forma
// explícita (nada de singletons a nivel de módulo). Get devuelve (nil,
// false) en miss o ante cualquier fallo del cache: un cache caído nunca
// rompe una lectura.
type ListCache interface {
	Get(ctx context.Context, key string) ([]*entity.Customer, bool)
	Set(ctx context.Context, key string, list []*entity.Customer)
	// Invalidate marca stale todo el listado cacheado; la próxima lectura
	// vuelve a la DB. Se invoca tras cada mutación de clientes o movimientos.
	Invalidate(ctx context.Context)
}

// StatementGenerator genera el estado de cuenta de un cliente en PDF.
type StatementGenerator interface {
	GenerateStatement(ctx context.Context, customer *entity.Customer, txs []*entity.Transaction) ([]byte, error)
}
