package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	catalogRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/catalog"
)

// Service вычисляет цену часа на корте:
// базовая цена типа корта + стоимость привязанных услуг.
// Чистое чтение без побочных эффектов: при неизменных справочниках
// повторный вызов возвращает ту же сумму, на этом стоит двухфазный протокол
// бронирования (цены считаются до открытия транзакции записи).
type Service struct {
	catalog CatalogRepository
	logger  Logger
}

// NewService создает новый экземпляр сервиса ценообразования
func NewService(catalog CatalogRepository, logger Logger) *Service {
	return &Service{
		catalog: catalog,
		logger:  logger,
	}
}

// Price возвращает цену одного слота на корте
func (s *Service) Price(ctx context.Context, courtID int64) (decimal.Decimal, error) {
	court, err := s.catalog.GetCourt(ctx, courtID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCourtNotFound) {
			return decimal.Zero, ErrCourtNotFound
		}
		return decimal.Zero, fmt.Errorf("%w: Price - get court: %v", ErrInternal, err)
	}

	courtType, err := s.catalog.GetCourtType(ctx, court.CourtTypeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCourtTypeNotFound) {
			return decimal.Zero, ErrCourtTypeNotFound
		}
		return decimal.Zero, fmt.Errorf("%w: Price - get court type: %v", ErrInternal, err)
	}

	total := courtType.HourlyPrice

	serviceIDs, err := s.catalog.GetServiceIDsByCourt(ctx, courtID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: Price - get court services: %v", ErrInternal, err)
	}

	for _, serviceID := range serviceIDs {
		svc, err := s.catalog.GetService(ctx, serviceID)
		if err != nil {
			// Ссылка на несуществующую услугу не роняет расчет
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				s.logger.Warn("Price: court=%d references missing service=%d, skipped", courtID, serviceID)
				continue
			}
			return decimal.Zero, fmt.Errorf("%w: Price - get service: %v", ErrInternal, err)
		}
		total = total.Add(svc.Cost)
	}

	return total, nil
}
