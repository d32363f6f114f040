package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spatrax/spatrax-api/pkg/logger"
)

// fakeKV implementación en memoria de KVStore para tests.
type fakeKV struct {
	data    map[string]string
	getErr  error
	setErr  error
	getHits int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.getHits++
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return "", ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func newTestService(kv KVStore) *Service {
	return NewService(kv, 15*time.Minute, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Get / Set
// ──────────────────────────────────────────────────────────────────────────────

func TestService_SetYGet_Roundtrip(t *testing.T) {
	kv := newFakeKV()
	s := newTestService(kv)
	ctx := context.Background()

	type payload struct {
		Name string
		N    int
	}
	s.Set(ctx, "k", payload{Name: "spa", N: 3})

	var got payload
	require.True(t, s.Get(ctx, "k", &got), "una clave recién escrita debe resolverse")
	assert.Equal(t, payload{Name: "spa", N: 3}, got)
}

func TestService_Get_MissDevuelveFalse(t *testing.T) {
	s := newTestService(newFakeKV())

	var got string
	assert.False(t, s.Get(context.Background(), "no-existe", &got))
}

func TestService_Get_EntradaCorruptaSeIgnora(t *testing.T) {
	kv := newFakeKV()
	kv.data["k"] = "{esto no es json"
	s := newTestService(kv)

	var got map[string]string
	assert.False(t, s.Get(context.Background(), "k", &got),
		"una entrada no deserializable debe tratarse como miss")
}

func TestService_Get_FalloDelStoreEsMiss(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("connection refused")
	s := newTestService(kv)

	var got string
	assert.False(t, s.Get(context.Background(), "k", &got),
		"un fallo del KV debe degradar a miss, nunca a error")
}

func TestService_Invalidate(t *testing.T) {
	kv := newFakeKV()
	s := newTestService(kv)
	ctx := context.Background()

	s.Set(ctx, "a", 1)
	s.Set(ctx, "b", 2)
	s.Invalidate(ctx, "a", "b")

	var got int
	assert.False(t, s.Get(ctx, "a", &got))
	assert.False(t, s.Get(ctx, "b", &got))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests GetOrLoad
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrLoad_MissCargaYRepuebla(t *testing.T) {
	kv := newFakeKV()
	s := newTestService(kv)
	ctx := context.Background()

	loads := 0
	load := func(context.Context) ([]string, error) {
		loads++
		return []string{"x", "y"}, nil
	}

	got, err := GetOrLoad(ctx, s, "k", load)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)
	assert.Equal(t, 1, loads)

	// Segunda lectura: debe salir de la caché sin tocar el origen.
	got, err = GetOrLoad(ctx, s, "k", load)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)
	assert.Equal(t, 1, loads, "el hit de caché no debe invocar el loader")
}

func TestGetOrLoad_ErrorDelLoaderSePropaga(t *testing.T) {
	s := newTestService(newFakeKV())
	boom := errors.New("db caída")

	_, err := GetOrLoad(context.Background(), s, "k", func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestGetOrLoad_FalloDeEscrituraNoSePropaga(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("connection refused")
	s := newTestService(kv)

	got, err := GetOrLoad(context.Background(), s, "k", func(context.Context) (string, error) {
		return "valor", nil
	})
	require.NoError(t, err, "un fallo al repoblar la caché no debe afectar la respuesta")
	assert.Equal(t, "valor", got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests claves
// ──────────────────────────────────────────────────────────────────────────────

func TestKeys_Formato(t *testing.T) {
	assert.Equal(t, "users:user_2abc", UserKey("user_2abc"))
	assert.Equal(t, "users:42", UserIDKey(42))
	assert.Equal(t, "team:7", TeamKey(7))
	assert.Equal(t, "logs:7", LogsKey(7))
	assert.Equal(t, "establishments:7", EstablishmentKey(7))
}
