package get_reservation_by_slot

import (
	"context"
	"time"

	"github.com/m04kA/SFC-ReservaService/internal/service/reservations/models"
)

type ReservationService interface {
	GetBySlot(ctx context.Context, courtID, scheduleID int64, date time.Time) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
