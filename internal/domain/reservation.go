package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pendiente"
	StatusPaid      ReservationStatus = "pagada"
	StatusFinalized ReservationStatus = "finalizada"
	StatusCancelled ReservationStatus = "cancelada"
)

// ReservationEvent is an event applied to the reservation state machine
type ReservationEvent string

const (
	// EventCancel явная отмена резервации пользователем или каскадом update
	EventCancel ReservationEvent = "cancel"
	// EventFinalize завершение оплаченной резервации после прохождения всех её слотов
	EventFinalize ReservationEvent = "finalize"
	// EventExpire обработка просроченной резервации sweep-ом:
	// pagada -> finalizada, pendiente -> cancelada (неоплаченная бронь не исполняется)
	EventExpire ReservationEvent = "expire"
)

// ErrReservationTransition возвращается при недопустимом переходе состояния резервации
var ErrReservationTransition = errors.New("domain: invalid reservation state transition")

// Reservation is a customer's booking owning one or more line items and one payment.
// TournamentID is set when the reservation is the bulk slot purchase of a tournament.
type Reservation struct {
	ID              int64
	CustomerID      int64
	TournamentID    *int64
	TotalAmount     decimal.Decimal
	ReservationDate time.Time
	Status          ReservationStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LineItem binds one reservation to one slot with the price charged at booking
// time. The price is a transaction-time value and is never recomputed.
type LineItem struct {
	ID            int64
	ReservationID int64
	SlotID        int64
	Price         decimal.Decimal
}

// IsTerminal returns true if no further transitions or edits are permitted
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusFinalized || r.Status == StatusCancelled
}

// CanEditAmount returns true if the total amount may still be changed
func (r *Reservation) CanEditAmount() bool {
	return r.Status == StatusPending
}

// CanBeCancelled returns true if an explicit cancel is permitted
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending
}

// CanBeDeleted returns true if a hard cascading delete is permitted
func (r *Reservation) CanBeDeleted() bool {
	return r.Status == StatusPending
}

// TransitionReservation применяет событие к состоянию резервации.
// Все правила переходов (см. правила мутабельности по статусам) централизованы здесь,
// вызывающий код не проверяет легальность перехода сам.
//
//	pendiente --cancel-->   cancelada
//	pendiente --expire-->   cancelada
//	pagada    --cancel-->   cancelada
//	pagada    --finalize--> finalizada
//	pagada    --expire-->   finalizada
//
// finalizada и cancelada терминальны.
func TransitionReservation(current ReservationStatus, event ReservationEvent) (ReservationStatus, error) {
	switch current {
	case StatusPending:
		switch event {
		case EventCancel, EventExpire:
			return StatusCancelled, nil
		}
	case StatusPaid:
		switch event {
		case EventCancel:
			return StatusCancelled, nil
		case EventFinalize, EventExpire:
			return StatusFinalized, nil
		}
	}
	return current, ErrReservationTransition
}

// ParseReservationStatus валидирует строковый статус
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	switch status {
	case StatusPending, StatusPaid, StatusFinalized, StatusCancelled:
		return status, nil
	}
	return "", ErrReservationTransition
}

// ReservationEventForStatus возвращает событие, переводящее резервацию в target.
// Используется при явном обновлении статуса через API.
func ReservationEventForStatus(target ReservationStatus) (ReservationEvent, error) {
	switch target {
	case StatusCancelled:
		return EventCancel, nil
	case StatusFinalized:
		return EventFinalize, nil
	}
	return "", ErrReservationTransition
}
