package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	reservationRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/reservation"
	"github.com/m04kA/SFC-ReservaService/internal/integrations/customerservice"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetBySlotID(ctx context.Context, slotID int64) (*domain.Reservation, error)
	ListByStatuses(ctx context.Context, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
	Update(ctx context.Context, id int64, fields reservationRepo.UpdateFields) error
	Delete(ctx context.Context, id int64) error
	GetLineItemsByReservation(ctx context.Context, reservationID int64) ([]*domain.LineItem, error)
	DeleteLineItemsByReservation(ctx context.Context, reservationID int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Slot, error)
	GetByCourtScheduleDate(ctx context.Context, courtID, scheduleID int64, date time.Time) (*domain.Slot, error)
	Release(ctx context.Context, ids []int64) error
	UpdateDate(ctx context.Context, id int64, newDate time.Time) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	DeleteByReservation(ctx context.Context, reservationID int64) error
}

// CustomerClient интерфейс клиента сервиса клиентов
type CustomerClient interface {
	GetCustomerWithGracefulDegradation(ctx context.Context, customerID int64) (*customerservice.Customer, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
