package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/store"
)

const sessionKeyPrefix = "session:"

// SessionManager keeps admin sessions in the KV store so a restart does
// not log everyone out. Tokens are opaque uuids sent as a bearer header.
type SessionManager struct {
	kv     store.KV
	ttl    time.Duration
	logger *zap.Logger
}

func NewSessionManager(kv store.KV, ttl time.Duration, logger *zap.Logger) *SessionManager {
	return &SessionManager{kv: kv, ttl: ttl, logger: logger}
}

// Create issues a new session token for account.
func (m *SessionManager) Create(ctx context.Context, account string) (string, error) {
	token := uuid.NewString()
	if err := m.kv.Set(ctx, sessionKeyPrefix+token, account, m.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Account resolves a token to its account, refreshing the TTL.
func (m *SessionManager) Account(ctx context.Context, token string) (string, error) {
	account, err := m.kv.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return "", err
	}
	// Sliding expiry; a failed refresh only shortens the session.
	_ = m.kv.Set(ctx, sessionKeyPrefix+token, account, m.ttl)
	return account, nil
}

// Destroy drops the session for token.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	return m.kv.Del(ctx, sessionKeyPrefix+token)
}

// Require wraps a handler with the bearer-token session check.
func (m *SessionManager) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing session token")
			return
		}
		if _, err := m.Account(r.Context(), token); err != nil {
			if err == store.ErrMiss {
				writeError(w, http.StatusUnauthorized, "session expired")
				return
			}
			m.logger.Error("Session lookup failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "session store unavailable")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
