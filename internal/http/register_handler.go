package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/models"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/notify"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/repository"
)

// RegisterHandler receives public multi-step form submissions. Records
// arrive PENDING and wait for an admin to validate them.
type RegisterHandler struct {
	repo     *repository.WargaRepository
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewRegisterHandler(repo *repository.WargaRepository, notifier notify.Notifier, logger *zap.Logger) *RegisterHandler {
	return &RegisterHandler{repo: repo, notifier: notifier, logger: logger}
}

func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var warga models.Warga
	if err := readBodyJSON(r, 1<<20, &warga); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if strings.TrimSpace(warga.Nama) == "" {
		writeError(w, http.StatusBadRequest, "nama is required")
		return
	}
	warga.Status = models.StatusPending

	id, err := h.repo.CreateWarga(r.Context(), &warga)
	if err != nil {
		h.logger.Error("Failed to register warga", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to register")
		return
	}
	warga.ID = id

	// Notification must never block or fail the registration itself.
	go func(w models.Warga) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.notifier.RegistrationReceived(ctx, &w); err != nil {
			h.logger.Warn("Registration notification failed",
				zap.Int64("warga_id", w.ID),
				zap.Error(err),
			)
		}
	}(warga)

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     id,
		"status": models.StatusPending,
	})
}
