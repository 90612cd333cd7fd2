package create_tournament

import (
	"errors"
	"net/http"

	"github.com/m04kA/SFC-ReservaService/internal/api/handlers"
	createTournament "github.com/m04kA/SFC-ReservaService/internal/usecase/create_tournament"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат дат турнира, ожидается YYYY-MM-DD"
	msgCustomerNotFound      = "клиент не найден"
	msgCourtTypeNotFound     = "тип корта не найден"
	msgPaymentMethodNotFound = "метод оплаты не найден"
	msgInvalidDates          = "некорректные даты турнира"
	msgInvalidPace           = "число матчей в день превышает вместимость площадки"
	msgDateRangeTooShort     = "окно дат не вмещает все матчи турнира"
	msgInsufficientSlots     = "недостаточно свободных слотов для всех матчей турнира"
	msgInvalidInput          = "некорректные данные турнира"
)

type Handler struct {
	useCase CreateTournamentUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase CreateTournamentUseCase, m Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/tournaments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateTournamentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tournaments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /tournaments - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createTournament.ErrInsufficientSlots):
			h.logger.Warn("POST /tournaments - Insufficient slots: name=%q, customer_id=%d", req.Name, req.CustomerID)
			handlers.RespondConflict(w, msgInsufficientSlots)

		case errors.Is(err, createTournament.ErrCustomerNotFound):
			h.logger.Warn("POST /tournaments - Customer not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createTournament.ErrCourtTypeNotFound):
			h.logger.Warn("POST /tournaments - Court type not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCourtTypeNotFound)

		case errors.Is(err, createTournament.ErrPaymentMethodNotFound):
			h.logger.Warn("POST /tournaments - Payment method not found: customer_id=%d, method_id=%d",
				req.CustomerID, req.PaymentMethodID)
			handlers.RespondNotFound(w, msgPaymentMethodNotFound)

		case errors.Is(err, createTournament.ErrInvalidDate):
			h.logger.Warn("POST /tournaments - Invalid dates: name=%q, %s..%s", req.Name, req.DateStart, req.DateEnd)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, createTournament.ErrInvalidMatchesPerDay):
			h.logger.Warn("POST /tournaments - Pace exceeds capacity: name=%q, pace=%d", req.Name, req.MatchesPerDay)
			handlers.RespondBadRequest(w, msgInvalidPace)

		case errors.Is(err, createTournament.ErrDateRangeTooShort):
			h.logger.Warn("POST /tournaments - Date range too short: name=%q, %s..%s", req.Name, req.DateStart, req.DateEnd)
			handlers.RespondBadRequest(w, msgDateRangeTooShort)

		case errors.Is(err, createTournament.ErrInvalidInput):
			h.logger.Warn("POST /tournaments - Invalid input: name=%q: %v", req.Name, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /tournaments - Failed to create tournament: name=%q, customer_id=%d, error=%v",
				req.Name, req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.IncReservationsCreated(result.Status)
		h.metrics.AddSlotsClaimed(len(result.Matches))
	}

	h.logger.Info("POST /tournaments - Tournament created successfully: tournament_id=%d, reservation_id=%d, matches=%d",
		result.ID, result.ReservationID, len(result.Matches))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
