package get_reservation_by_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SFC-ReservaService/internal/api/handlers"
	"github.com/m04kA/SFC-ReservaService/internal/domain"
	"github.com/m04kA/SFC-ReservaService/internal/service/reservations"
)

const (
	msgInvalidCourtID    = "некорректный ID корта"
	msgInvalidScheduleID = "некорректный ID горизонта расписания"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound          = "резервация для указанного слота не найдена"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/by-slot?courtId=&scheduleId=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	courtID, err := strconv.ParseInt(query.Get("courtId"), 10, 64)
	if err != nil || courtID <= 0 {
		h.logger.Warn("GET /reservations/by-slot - Invalid court ID: %q", query.Get("courtId"))
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	scheduleID, err := strconv.ParseInt(query.Get("scheduleId"), 10, 64)
	if err != nil || scheduleID <= 0 {
		h.logger.Warn("GET /reservations/by-slot - Invalid schedule ID: %q", query.Get("scheduleId"))
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /reservations/by-slot - Invalid date: %q", query.Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetBySlot(r.Context(), courtID, scheduleID, date)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/by-slot - No reservation for slot: court_id=%d, schedule_id=%d, date=%s",
				courtID, scheduleID, query.Get("date"))
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /reservations/by-slot - Failed to get reservation: court_id=%d, schedule_id=%d, error=%v",
				courtID, scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/by-slot - Reservation retrieved: reservation_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
