package create_reservation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	createReservation "github.com/m04kA/SFC-ReservaService/internal/usecase/create_reservation"
)

// ItemRequest позиция резервации в HTTP запросе.
// Дата задается на каждую позицию, резервация может покрывать разные дни
type ItemRequest struct {
	CourtID    int64  `json:"courtId"`
	ScheduleID int64  `json:"scheduleId"`
	Date       string `json:"date"` // "2025-10-15"
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CustomerID      int64         `json:"customerId"`
	PaymentMethodID int64         `json:"paymentMethodId"`
	Items           []ItemRequest `json:"items"`
}

// ItemResponse позиция резервации в HTTP ответе
type ItemResponse struct {
	ID         int64           `json:"id"`
	SlotID     int64           `json:"slotId"`
	CourtID    int64           `json:"courtId"`
	ScheduleID int64           `json:"scheduleId"`
	Date       string          `json:"date"`
	Price      decimal.Decimal `json:"price"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customerId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ReservationDate string          `json:"reservationDate"`
	Status          string          `json:"status"`
	Items           []ItemResponse  `json:"items"`
	PaymentID       int64           `json:"paymentId"`
	CreatedAt       string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	items := make([]createReservation.ItemRequest, 0, len(r.Items))
	for _, item := range r.Items {
		itemDate, err := time.Parse(domain.DateFormat, item.Date)
		if err != nil {
			return nil, err
		}
		items = append(items, createReservation.ItemRequest{
			CourtID:    item.CourtID,
			ScheduleID: item.ScheduleID,
			Date:       itemDate,
		})
	}

	return &createReservation.Request{
		CustomerID:      r.CustomerID,
		PaymentMethodID: r.PaymentMethodID,
		Items:           items,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	items := make([]ItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, ItemResponse{
			ID:         item.ID,
			SlotID:     item.SlotID,
			CourtID:    item.CourtID,
			ScheduleID: item.ScheduleID,
			Date:       item.Date.Format(domain.DateFormat),
			Price:      item.Price,
		})
	}

	return &ReservationResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		TotalAmount:     resp.TotalAmount,
		ReservationDate: resp.ReservationDate.Format(domain.DateFormat),
		Status:          resp.Status,
		Items:           items,
		PaymentID:       resp.PaymentID,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
