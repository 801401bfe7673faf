package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/resto-admin/internal/application/reports"
	"github.com/tu-usuario/resto-admin/pkg/config"
)

var _ reports.ReportCache = (*RedisCache)(nil)

// RedisCache cache de reportes sobre Redis. Guarda el reporte ya serializado;
// la expiración la maneja Redis con el TTL de cada Set.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache conecta a Redis y verifica con un ping.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

// Get devuelve el payload cacheado; (nil, false, nil) si la clave no existe.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

// Set guarda el payload con TTL.
func (c *RedisCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, payload, ttl).Err()
}

// Close cierra la conexión.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
