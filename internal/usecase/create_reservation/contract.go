package create_reservation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	"github.com/m04kA/SFC-ReservaService/internal/integrations/customerservice"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	CreateLineItem(ctx context.Context, item *domain.LineItem) (*domain.LineItem, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByCourtScheduleDate(ctx context.Context, courtID, scheduleID int64, date time.Time) (*domain.Slot, error)
	EnsureForDate(ctx context.Context, date time.Time, courtIDs, scheduleIDs []int64) error
	Claim(ctx context.Context, courtID, scheduleID int64, date time.Time) (int64, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetCourt(ctx context.Context, id int64) (*domain.Court, error)
	GetSchedule(ctx context.Context, id int64) (*domain.Schedule, error)
	GetPaymentMethod(ctx context.Context, id int64) (*domain.PaymentMethod, error)
}

// PricingService интерфейс сервиса ценообразования
type PricingService interface {
	Price(ctx context.Context, courtID int64) (decimal.Decimal, error)
}

// CustomerServiceClient интерфейс клиента сервиса клиентов
type CustomerServiceClient interface {
	GetCustomerWithGracefulDegradation(ctx context.Context, customerID int64) (*customerservice.Customer, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
