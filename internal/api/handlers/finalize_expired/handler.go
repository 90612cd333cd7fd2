package finalize_expired

import (
	"net/http"

	"github.com/m04kA/SFC-ReservaService/internal/api/handlers"
)

// FinalizeExpiredResponse HTTP response model
type FinalizeExpiredResponse struct {
	Finalized int `json:"finalized"`
}

type Handler struct {
	service ReservationService
	metrics Metrics
	logger  Logger
}

func NewHandler(service ReservationService, m Metrics, logger Logger) *Handler {
	return &Handler{
		service: service,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/finalize-expired
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.FinalizeExpired(r.Context())
	if err != nil {
		h.logger.Error("POST /reservations/finalize-expired - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if h.metrics != nil {
		h.metrics.AddSweepTransitions(count)
	}

	h.logger.Info("POST /reservations/finalize-expired - Sweep completed: %d reservations transitioned", count)
	handlers.RespondJSON(w, http.StatusOK, FinalizeExpiredResponse{Finalized: count})
}
