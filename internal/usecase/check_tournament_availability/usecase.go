package check_tournament_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	catalogRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/catalog"
	"github.com/m04kA/SFC-ReservaService/internal/service/scheduler"
)

// UseCase use case проверки осуществимости турнира без бронирования.
// Отвечает на вопрос "поместится ли турнир в это окно" до того,
// как организатор решится на создание
type UseCase struct {
	catalogRepo  CatalogRepository
	scheduler    SchedulerService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalogRepo CatalogRepository, schedulerService SchedulerService, logger Logger) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		scheduler:    schedulerService,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проверку осуществимости турнира
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckTournamentAvailability: teams=%d, window=%s..%s, pace=%d",
		req.TeamCount, req.DateStart.Format(domain.DateFormat), req.DateEnd.Format(domain.DateFormat), req.MatchesPerDay)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CheckTournamentAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Типы кортов должны существовать
	for _, id := range req.CourtTypeIDs {
		if _, err := uc.catalogRepo.GetCourtType(ctx, id); err != nil {
			if errors.Is(err, catalogRepo.ErrCourtTypeNotFound) {
				uc.logger.Warn("CheckTournamentAvailability: court type id=%d not found", id)
				return nil, ErrCourtTypeNotFound
			}
			uc.logger.Error("CheckTournamentAvailability: failed to get court type id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get court type: %v", ErrInternal, err)
		}
	}

	totalMatches := uc.scheduler.TotalMatches(req.TeamCount)
	daysNeeded := uc.scheduler.DaysNeeded(totalMatches, req.MatchesPerDay)

	maxPerDay, err := uc.scheduler.MaxMatchesPerDay(ctx, req.TeamCount, req.CourtTypeIDs)
	if err != nil {
		uc.logger.Error("CheckTournamentAvailability: failed to compute capacity: %v", err)
		return nil, fmt.Errorf("%w: failed to compute capacity: %v", ErrInternal, err)
	}

	// 3. Прогон планировщика без записи брони
	availability, err := uc.scheduler.ValidateAvailability(ctx, scheduler.SelectParams{
		DateStart:     domain.DateOnly(req.DateStart),
		DateEnd:       domain.DateOnly(req.DateEnd),
		MatchesPerDay: req.MatchesPerDay,
		TotalMatches:  totalMatches,
		TeamCount:     req.TeamCount,
		CourtTypeIDs:  req.CourtTypeIDs,
	})
	if err != nil {
		uc.logger.Error("CheckTournamentAvailability: failed to validate availability: %v", err)
		return nil, fmt.Errorf("%w: failed to validate availability: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckTournamentAvailability: feasible=%t, available=%d/%d",
		availability.Feasible, availability.Available, availability.Needed)

	return &Response{
		Feasible:         availability.Feasible,
		TotalMatches:     totalMatches,
		AvailableSlots:   availability.Available,
		DaysNeeded:       daysNeeded,
		MaxMatchesPerDay: maxPerDay,
		EstimatedAmount:  availability.EstimatedAmount,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.TeamCount < 2 {
		return fmt.Errorf("%w: at least two teams are required", ErrInvalidInput)
	}

	if req.MatchesPerDay <= 0 {
		return fmt.Errorf("%w: matchesPerDay must be positive", ErrInvalidInput)
	}

	// Типы кортов опциональны: пустой список означает "все корты"

	if req.DateStart.IsZero() || req.DateEnd.IsZero() {
		return fmt.Errorf("%w: dateStart and dateEnd are required", ErrInvalidInput)
	}

	if domain.DateBefore(req.DateEnd, req.DateStart) {
		return ErrInvalidDate
	}
	if domain.DateBefore(req.DateStart, now) {
		return ErrInvalidDate
	}

	return nil
}
