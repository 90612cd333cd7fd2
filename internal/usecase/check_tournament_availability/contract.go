package check_tournament_availability

import (
	"context"
	"time"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	"github.com/m04kA/SFC-ReservaService/internal/service/scheduler"
)

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetCourtType(ctx context.Context, id int64) (*domain.CourtType, error)
}

// SchedulerService интерфейс планировщика слотов турнира
type SchedulerService interface {
	TotalMatches(teamCount int) int
	DaysNeeded(totalMatches, matchesPerDay int) int
	MaxMatchesPerDay(ctx context.Context, teamCount int, courtTypeIDs []int64) (int, error)
	ValidateAvailability(ctx context.Context, params scheduler.SelectParams) (*scheduler.Availability, error)
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
