package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// AuthHandler checks the configured admin account and issues sessions.
// Passwords are compared by sha256 hash; the plaintext never leaves the
// login request.
type AuthHandler struct {
	accountHash  string
	passwordHash string
	sessions     *SessionManager
	logger       *zap.Logger
}

func NewAuthHandler(account, password string, sessions *SessionManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		accountHash:  HashAccount(account),
		passwordHash: HashPassword(password),
		sessions:     sessions,
		logger:       logger,
	}
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashAccount hashes the lowercased, trimmed account name.
func HashAccount(account string) string {
	return sha256Hex(strings.TrimSpace(strings.ToLower(account)))
}

// HashPassword hashes the password only, independent of the account.
func HashPassword(password string) string {
	return sha256Hex(password)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Account  string `json:"account"`
		Password string `json:"password"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if HashAccount(body.Account) != h.accountHash || HashPassword(body.Password) != h.passwordHash {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.sessions.Create(r.Context(), body.Account)
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing session token")
		return
	}
	if err := h.sessions.Destroy(r.Context(), token); err != nil {
		h.logger.Error("Failed to destroy session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to destroy session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
