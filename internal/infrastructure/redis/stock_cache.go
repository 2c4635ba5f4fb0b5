// Package redis implementa la cache consultiva de stock sobre Redis.
// El replay del kardex sigue siendo la fuente de verdad: la cache solo sirve
// lecturas (resumen, alertas) y se invalida tras cada escritura comprometida.
package redis

import (
	"context"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/jforero/kardex-api/internal/application/inventory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var _ inventory.StockCache = (*StockCache)(nil)

// StockCache guarda valores de stock por (item, bodega) con TTL corto.
type StockCache struct {
	client *goredis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewClient crea y verifica un cliente Redis a partir de una URL
// (redis://host:port/db).
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := goredis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// NewStockCache construye la cache. ttl <= 0 usa 30s por defecto.
func NewStockCache(client *goredis.Client, ttl time.Duration, log zerolog.Logger) *StockCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StockCache{client: client, ttl: ttl, log: log}
}

// Get devuelve el stock cacheado si existe. Cualquier error de Redis se trata
// como cache miss: la lectura cae al replay.
func (c *StockCache) Get(ctx context.Context, itemID, warehouseID string) (decimal.Decimal, bool) {
	val, err := c.client.Get(ctx, key(itemID, warehouseID)).Result()
	if err != nil {
		if err != goredis.Nil {
			c.log.Debug().Err(err).Str("item_id", itemID).Msg("stock cache get falló")
		}
		return decimal.Zero, false
	}
	stock, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false
	}
	return stock, true
}

// Set guarda el stock con TTL. Best effort: un error solo se loguea.
func (c *StockCache) Set(ctx context.Context, itemID, warehouseID string, stock decimal.Decimal) {
	if err := c.client.Set(ctx, key(itemID, warehouseID), stock.String(), c.ttl).Err(); err != nil {
		c.log.Debug().Err(err).Str("item_id", itemID).Msg("stock cache set falló")
	}
}

// Invalidate borra las entradas del item para las bodegas indicadas y el
// agregado (clave sin bodega).
func (c *StockCache) Invalidate(ctx context.Context, itemID string, warehouseIDs ...string) {
	keys := make([]string, 0, len(warehouseIDs)+1)
	keys = append(keys, key(itemID, ""))
	for _, w := range warehouseIDs {
		keys = append(keys, key(itemID, w))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Debug().Err(err).Str("item_id", itemID).Msg("stock cache invalidate falló")
	}
}

// InvalidateAll recorre el namespace stock:* con SCAN y borra todas las
// entradas. Best effort, igual que Invalidate.
func (c *StockCache) InvalidateAll(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, "stock:*", 100).Iterator()
	keys := make([]string, 0, 100)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Debug().Err(err).Msg("stock cache scan falló")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Debug().Err(err).Msg("stock cache invalidate all falló")
	}
}

func key(itemID, warehouseID string) string {
	if warehouseID == "" {
		return "stock:" + itemID + ":all"
	}
	return "stock:" + itemID + ":" + warehouseID
}
