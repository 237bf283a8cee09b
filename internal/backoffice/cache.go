package backoffice

import (
	"sync"
	"time"

	"github.com/eymenelneccar/ewf/internal/domain/entity"
)

// QueryCache es el cache de consultas de la vista, inyectado de forma
// explícita (sin singletons a nivel de módulo). La clave es el término de
// búsqueda normalizado.
type QueryCache interface {
	Read(key string) ([]entity.Customer, bool)
	Write(key string, list []entity.Customer)
	// Invalidate marca stale la entrada: la próxima lectura refetchea.
	Invalidate(key string)
}

// MemoryCache implementación en memoria de QueryCache con TTL por entrada.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	list    []entity.Customer
	expires time.Time
}

// NewMemoryCache construye el cache. ttl <= 0 usa 30 segundos.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &MemoryCache{ttl: ttl, entries: make(map[string]memoryEntry)}
}

// Read devuelve la entrada vigente para la clave, o (nil, false).
func (c *MemoryCache) Read(key string) ([]entity.Customer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.list, true
}

// Write guarda el listado para la clave con el TTL configurado.
func (c *MemoryCache) Write(key string, list []entity.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{list: list, expires: time.Now().Add(c.ttl)}
}

// Invalidate descarta la entrada de la clave.
func (c *MemoryCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
