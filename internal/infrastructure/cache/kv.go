package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/spatrax/spatrax-api/pkg/config"
)

// ErrMiss indica que la clave no existe en la caché.
var ErrMiss = errors.New("cache miss")

// KVStore abstrae el almacén clave-valor (permite reemplazar Redis en tests).
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// RedisKV implementación de KVStore sobre go-redis.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV construye el cliente Redis a partir de la configuración y verifica
// la conexión con un Ping.
func NewRedisKV(ctx context.Context, cfg config.RedisConfig) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisKV{client: client}, nil
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrMiss
		}
		return "", err
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisKV) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Close libera la conexión (la llama el proceso anfitrión al apagar).
func (r *RedisKV) Close() error {
	return r.client.Close()
}
