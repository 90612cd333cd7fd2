package check_tournament_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SFC-ReservaService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SFC-ReservaService/internal/usecase/check_tournament_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат дат турнира, ожидается YYYY-MM-DD"
	msgCourtTypeNotFound  = "тип корта не найден"
	msgInvalidDates       = "некорректные даты турнира"
	msgInvalidInput       = "некорректные параметры проверки"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tournaments/check-availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tournaments/check-availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /tournaments/check-availability - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrCourtTypeNotFound):
			h.logger.Warn("POST /tournaments/check-availability - Court type not found")
			handlers.RespondNotFound(w, msgCourtTypeNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidDate):
			h.logger.Warn("POST /tournaments/check-availability - Invalid dates: %s..%s", req.DateStart, req.DateEnd)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /tournaments/check-availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tournaments/check-availability - Failed to check availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tournaments/check-availability - Checked: feasible=%t, available=%d/%d",
		result.Feasible, result.AvailableSlots, result.TotalMatches)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
