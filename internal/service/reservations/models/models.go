package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	"github.com/m04kA/SFC-ReservaService/internal/integrations/customerservice"
)

// Request модели

// UpdateReservationRequest частичное обновление резервации.
// nil-поле не трогается.
type UpdateReservationRequest struct {
	TotalAmount     *decimal.Decimal
	ReservationDate *time.Time
	Status          *domain.ReservationStatus
}

// IsEmpty проверяет, что запрос не содержит изменений
func (r *UpdateReservationRequest) IsEmpty() bool {
	return r.TotalAmount == nil && r.ReservationDate == nil && r.Status == nil
}

// Response модели

// LineItemResponse позиция резервации
type LineItemResponse struct {
	ID     int64           `json:"id"`
	SlotID int64           `json:"slotId"`
	Price  decimal.Decimal `json:"price"`
}

// CustomerSummary краткая сводка по клиенту для подтверждения брони
type CustomerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ReservationResponse резервация с позициями
type ReservationResponse struct {
	ID              int64              `json:"id"`
	CustomerID      int64              `json:"customerId"`
	TournamentID    *int64             `json:"tournamentId,omitempty"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	ReservationDate string             `json:"reservationDate"` // "2025-10-15"
	Status          string             `json:"status"`
	Items           []LineItemResponse `json:"items"`
	Customer        *CustomerSummary   `json:"customer,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation, items []*domain.LineItem, customer *customerservice.Customer) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		TournamentID:    r.TournamentID,
		TotalAmount:     r.TotalAmount,
		ReservationDate: r.ReservationDate.Format(domain.DateFormat),
		Status:          string(r.Status),
		Items:           make([]LineItemResponse, 0, len(items)),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	for _, item := range items {
		resp.Items = append(resp.Items, LineItemResponse{
			ID:     item.ID,
			SlotID: item.SlotID,
			Price:  item.Price,
		})
	}

	if customer != nil {
		resp.Customer = &CustomerSummary{
			Name:  customer.Name,
			Email: customer.Email,
			Phone: customer.Phone,
		}
	}

	return resp
}
