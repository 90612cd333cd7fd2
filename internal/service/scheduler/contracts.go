package scheduler

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	slotRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/slot"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	EnsureForDate(ctx context.Context, date time.Time, courtIDs, scheduleIDs []int64) error
	GetAvailableByDate(ctx context.Context, date time.Time, courtTypeIDs []int64) ([]*slotRepo.AvailableSlot, error)
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	ListCourts(ctx context.Context, courtTypeIDs []int64) ([]*domain.Court, error)
	ListSchedules(ctx context.Context) ([]*domain.Schedule, error)
}

// PricingService интерфейс сервиса ценообразования
type PricingService interface {
	Price(ctx context.Context, courtID int64) (decimal.Decimal, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
