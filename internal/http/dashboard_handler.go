package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/repository"
	"github.com/ralphwaworuntu/SIPPR-JEL-sub001/internal/service"
)

// DashboardHandler serves the reporting view.
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// GetStats handles GET /dashboard/stats?zone=...&subzone=...
// zone filters lingkungan, subzone filters rayon, both by raw equality.
// The response is the complete snapshot or a single 500 error; a failed
// read never produces a payload with missing keys.
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	f := repository.Filter{
		Lingkungan: r.URL.Query().Get("zone"),
		Rayon:      r.URL.Query().Get("subzone"),
	}

	snapshot, err := h.dashboard.Snapshot(r.Context(), f)
	if err != nil {
		h.logger.Error("Failed to compute dashboard snapshot",
			zap.Error(err),
			zap.String("zone", f.Lingkungan),
			zap.String("subzone", f.Rayon),
		)
		writeError(w, http.StatusInternalServerError, "failed to compute dashboard statistics")
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
