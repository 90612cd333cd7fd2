package update_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	"github.com/m04kA/SFC-ReservaService/internal/service/reservations/models"
)

// UpdateReservationRequest HTTP request model, все поля опциональны
type UpdateReservationRequest struct {
	TotalAmount     *decimal.Decimal `json:"totalAmount,omitempty"`
	ReservationDate *string          `json:"reservationDate,omitempty"` // "2025-10-15"
	Status          *string          `json:"status,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateReservationRequest) ToServiceRequest() (*models.UpdateReservationRequest, error) {
	req := &models.UpdateReservationRequest{
		TotalAmount: r.TotalAmount,
	}

	if r.ReservationDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.ReservationDate)
		if err != nil {
			return nil, err
		}
		req.ReservationDate = &date
	}

	if r.Status != nil {
		status, err := domain.ParseReservationStatus(*r.Status)
		if err != nil {
			return nil, err
		}
		req.Status = &status
	}

	return req, nil
}
