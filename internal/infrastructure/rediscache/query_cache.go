// Package rediscache implementa el cache de listados de clientes sobre
// Redis. Cualquier fallo del cache degrada a miss: Redis caído nunca
// impide leer de la DB.
package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eymenelneccar/ewf/internal/application/customers"
	"github.com/eymenelneccar/ewf/internal/domain/entity"
)

const keyPrefix = "customers:list:"

var _ customers.ListCache = (*ListCache)(nil)

// ListCache cachea resultados del listado por clave de búsqueda normalizada.
type ListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New construye el cache con el cliente Redis y el TTL de cada entrada.
func New(rdb *redis.Client, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ListCache{rdb: rdb, ttl: ttl}
}

// NewClient crea y verifica el cliente Redis.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Get devuelve el listado cacheado para la clave, o (nil, false) en miss o
// ante cualquier error de Redis o de decode.
func (c *ListCache) Get(ctx context.Context, key string) ([]*entity.Customer, bool) {
	payload, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var list []*entity.Customer
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, false
	}
	return list, true
}

// Set guarda el listado con TTL. Errores se ignoran: el cache es mejor-esfuerzo.
func (c *ListCache) Set(ctx context.Context, key string, list []*entity.Customer) {
	payload, err := json.Marshal(list)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, keyPrefix+key, payload, c.ttl).Err()
}

// Invalidate borra todas las entradas del listado (SCAN + DEL por prefijo).
// Tras una mutación no sabemos qué términos de búsqueda siguen siendo
// válidos, así que se invalida todo.
func (c *ListCache) Invalidate(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		_ = c.rdb.Del(ctx, iter.Val()).Err()
	}
}
