package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/store"
)

// memKV is an in-memory store.KV for handler tests.
type memKV struct {
	mu   sync.Mutex
	data map[string]string
	sets int
	err  error
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	v, ok := m.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (m *memKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	m.sets++
	return nil
}

func (m *memKV) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func TestSessionManager_CreateAndResolve(t *testing.T) {
	kv := newMemKV()
	m := NewSessionManager(kv, time.Hour, zap.NewNop())

	token, err := m.Create(context.Background(), "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	account, err := m.Account(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin", account)
	// Create plus the sliding-expiry refresh.
	assert.Equal(t, 2, kv.sets)
}

func TestSessionManager_DestroyedTokenIsMiss(t *testing.T) {
	kv := newMemKV()
	m := NewSessionManager(kv, time.Hour, zap.NewNop())

	token, err := m.Create(context.Background(), "admin")
	require.NoError(t, err)
	require.NoError(t, m.Destroy(context.Background(), token))

	_, err = m.Account(context.Background(), token)
	assert.Equal(t, store.ErrMiss, err)
}

func TestRequire_MissingToken(t *testing.T) {
	m := NewSessionManager(newMemKV(), time.Hour, zap.NewNop())
	handler := m.Require(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing session token"}`, rec.Body.String())
}

func TestRequire_ExpiredToken(t *testing.T) {
	m := NewSessionManager(newMemKV(), time.Hour, zap.NewNop())
	handler := m.Require(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an unknown token")
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer gone")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"session expired"}`, rec.Body.String())
}

func TestRequire_ValidToken(t *testing.T) {
	kv := newMemKV()
	m := NewSessionManager(kv, time.Hour, zap.NewNop())
	token, err := m.Create(context.Background(), "admin")
	require.NoError(t, err)

	called := false
	handler := m.Require(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", bearerToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "", bearerToken(req))

	req.Header.Set("Authorization", "Bearer tok-123")
	assert.Equal(t, "tok-123", bearerToken(req))
}
