package pricing

import (
	"context"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
)

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetCourt(ctx context.Context, id int64) (*domain.Court, error)
	GetCourtType(ctx context.Context, id int64) (*domain.CourtType, error)
	GetServiceIDsByCourt(ctx context.Context, courtID int64) ([]int64, error)
	GetService(ctx context.Context, id int64) (*domain.FacilityService, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
