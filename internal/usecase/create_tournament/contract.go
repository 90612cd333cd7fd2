package create_tournament

import (
	"context"
	"time"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	"github.com/m04kA/SFC-ReservaService/internal/integrations/customerservice"
	"github.com/m04kA/SFC-ReservaService/internal/service/scheduler"
)

// TournamentRepository интерфейс репозитория турниров
type TournamentRepository interface {
	Create(ctx context.Context, t *domain.Tournament) (*domain.Tournament, error)
	CreateTeam(ctx context.Context, team *domain.Team) (*domain.Team, error)
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	CreateLineItem(ctx context.Context, item *domain.LineItem) (*domain.LineItem, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ClaimByID(ctx context.Context, id int64) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetCourtType(ctx context.Context, id int64) (*domain.CourtType, error)
	GetPaymentMethod(ctx context.Context, id int64) (*domain.PaymentMethod, error)
}

// SchedulerService интерфейс планировщика слотов турнира
type SchedulerService interface {
	TotalMatches(teamCount int) int
	DaysNeeded(totalMatches, matchesPerDay int) int
	MaxMatchesPerDay(ctx context.Context, teamCount int, courtTypeIDs []int64) (int, error)
	SelectSlots(ctx context.Context, params scheduler.SelectParams) ([]*scheduler.SelectedSlot, error)
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
