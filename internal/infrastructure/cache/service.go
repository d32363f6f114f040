package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/spatrax/spatrax-api/pkg/logger"
)

// Service caché read-through de snapshots JSON sobre un KVStore.
//
// Contrato: la caché es estado derivado, nunca autoritativo. Un fallo del
// KVStore se registra y se trata como miss (lectura) o como no-op (escritura);
// jamás se propaga al caller. La consistencia la da el TTL corto, no el
// parcheo manual indefinido.
type Service struct {
	kv  KVStore
	ttl time.Duration
	log *logger.Logger
}

// NewService construye el servicio de caché. ttl <= 0 significa sin expiración.
func NewService(kv KVStore, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{kv: kv, ttl: ttl, log: log}
}

// Get deserializa la entrada en dest. Devuelve false en miss o error.
func (s *Service) Get(ctx context.Context, key string, dest any) bool {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			s.log.Warn().Err(err).Str("key", key).Msg("caché: fallo de lectura")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("caché: entrada corrupta, se ignora")
		return false
	}
	return true
}

// Set serializa y guarda v bajo key (best-effort).
func (s *Service) Set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("caché: fallo de serialización")
		return
	}
	if err := s.kv.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("caché: fallo de escritura")
	}
}

// Invalidate elimina las claves indicadas (best-effort).
func (s *Service) Invalidate(ctx context.Context, keys ...string) {
	if err := s.kv.Del(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Strs("keys", keys).Msg("caché: fallo de invalidación")
	}
}

// GetOrLoad patrón cache-aside con tipos: intenta la caché, en miss carga del
// origen y repuebla. El error del loader sí se propaga; los de caché no.
func GetOrLoad[T any](ctx context.Context, s *Service, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if s.Get(ctx, key, &cached) {
		return cached, nil
	}
	loaded, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	s.Set(ctx, key, loaded)
	return loaded, nil
}
