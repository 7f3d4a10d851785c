package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/models"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/repository"
)

// WargaHandler is the admin CRUD surface over household records.
type WargaHandler struct {
	repo   *repository.WargaRepository
	logger *zap.Logger
}

func NewWargaHandler(repo *repository.WargaRepository, logger *zap.Logger) *WargaHandler {
	return &WargaHandler{repo: repo, logger: logger}
}

// Collection handles /admin/api/v1/warga (list and create).
func (h *WargaHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ByID handles /admin/api/v1/warga/{id} and /admin/api/v1/warga/{id}/validate.
func (h *WargaHandler) ByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/api/v1/warga/")

	if strings.HasSuffix(path, "/validate") {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.validate(w, r, strings.TrimSuffix(path, "/validate"))
		return
	}

	if path == "" || strings.Contains(path, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, path)
	case http.MethodPut:
		h.update(w, r, path)
	case http.MethodDelete:
		h.delete(w, r, path)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil && id > 0
}

func (h *WargaHandler) list(w http.ResponseWriter, r *http.Request) {
	page := parseInt(r.URL.Query().Get("page"), 1)
	pageSize := parseInt(r.URL.Query().Get("pageSize"), 25)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 25
	}

	f := repository.ListFilter{
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
		Status:     strings.TrimSpace(r.URL.Query().Get("status")),
		Lingkungan: strings.TrimSpace(r.URL.Query().Get("lingkungan")),
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	}

	items, total, err := h.repo.ListWarga(r.Context(), f)
	if err != nil {
		h.logger.Error("Failed to list warga", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list warga")
		return
	}
	if items == nil {
		items = []*models.Warga{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
		"page":  page,
	})
}

func (h *WargaHandler) get(w http.ResponseWriter, r *http.Request, rawID string) {
	id, ok := parseID(rawID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	warga, err := h.repo.GetWarga(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWargaNotFound) {
			writeError(w, http.StatusNotFound, "warga not found")
			return
		}
		h.logger.Error("Failed to get warga", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get warga")
		return
	}
	writeJSON(w, http.StatusOK, warga)
}

func (h *WargaHandler) create(w http.ResponseWriter, r *http.Request) {
	var warga models.Warga
	if err := readBodyJSON(r, 1<<20, &warga); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if strings.TrimSpace(warga.Nama) == "" {
		writeError(w, http.StatusBadRequest, "nama is required")
		return
	}
	// Admin-entered records skip the validation queue.
	warga.Status = models.StatusValidated

	id, err := h.repo.CreateWarga(r.Context(), &warga)
	if err != nil {
		h.logger.Error("Failed to create warga", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create warga")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *WargaHandler) update(w http.ResponseWriter, r *http.Request, rawID string) {
	id, ok := parseID(rawID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var warga models.Warga
	if err := readBodyJSON(r, 1<<20, &warga); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if warga.Status != models.StatusPending && warga.Status != models.StatusValidated {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if err := h.repo.UpdateWarga(r.Context(), id, &warga); err != nil {
		if errors.Is(err, repository.ErrWargaNotFound) {
			writeError(w, http.StatusNotFound, "warga not found")
			return
		}
		h.logger.Error("Failed to update warga", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update warga")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *WargaHandler) validate(w http.ResponseWriter, r *http.Request, rawID string) {
	id, ok := parseID(rawID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.ValidateWarga(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrWargaNotFound) {
			writeError(w, http.StatusNotFound, "warga not found")
			return
		}
		h.logger.Error("Failed to validate warga", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to validate warga")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *WargaHandler) delete(w http.ResponseWriter, r *http.Request, rawID string) {
	id, ok := parseID(rawID)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.repo.DeleteWarga(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrWargaNotFound) {
			writeError(w, http.StatusNotFound, "warga not found")
			return
		}
		h.logger.Error("Failed to delete warga", zap.Int64("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete warga")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
