package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SFC-ReservaService/internal/api/handlers"
	createReservation "github.com/m04kA/SFC-ReservaService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDate            = "некорректный формат даты слота, ожидается YYYY-MM-DD"
	msgSlotNotAvailable       = "один из запрошенных слотов недоступен"
	msgCustomerNotFound       = "клиент не найден"
	msgCourtNotFound          = "корт не найден"
	msgScheduleNotFound       = "горизонт расписания не найден"
	msgPaymentMethodNotFound  = "метод оплаты не найден"
	msgInvalidReservationDate = "дата слота не может быть в прошлом"
	msgInvalidInput           = "некорректные данные резервации"
)

type Handler struct {
	useCase CreateReservationUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, m Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: customer_id=%d", req.CustomerID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrCustomerNotFound):
			h.logger.Warn("POST /reservations - Customer not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createReservation.ErrCourtNotFound):
			h.logger.Warn("POST /reservations - Court not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createReservation.ErrScheduleNotFound):
			h.logger.Warn("POST /reservations - Schedule not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createReservation.ErrPaymentMethodNotFound):
			h.logger.Warn("POST /reservations - Payment method not found: customer_id=%d, method_id=%d",
				req.CustomerID, req.PaymentMethodID)
			handlers.RespondNotFound(w, msgPaymentMethodNotFound)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid item date: customer_id=%d", req.CustomerID)
			handlers.RespondBadRequest(w, msgInvalidReservationDate)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: customer_id=%d: %v", req.CustomerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer_id=%d, error=%v",
				req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.IncReservationsCreated(result.Status)
		h.metrics.AddSlotsClaimed(len(result.Items))
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, customer_id=%d, status=%s",
		result.ID, req.CustomerID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
