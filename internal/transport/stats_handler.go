package transport

import (
	"net/http"

	"tech-gadget/internal/middleware"
	"tech-gadget/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StatsHandler serves the public aggregate counts shown on the landing
// page.
type StatsHandler struct {
	statsService service.StatsService
	logger       *zap.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{statsService: statsService, logger: logger}
}

// RegisterRoutes registers the stats route.
func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.Get)
}

// Get returns the aggregate counts.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Counts(r.Context())
	if err != nil {
		h.logger.Error("Failed to aggregate stats", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to aggregate stats")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, stats)
}
